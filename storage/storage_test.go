package storage

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/storage/database/inmem"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	for _, engine := range []string{"", EngineMemory} {
		conf := &core.Config{}
		conf.Docstore.Engine = engine
		store, err := Open(ctx, conf)
		if assert.NoError(t, err, engine) {
			assert.IsType(t, &inmemdb.DB{}, store)
			assert.NoError(t, store.Close())
		}
	}

	conf := &core.Config{}
	conf.Docstore.Engine = "mongo"
	_, err := Open(ctx, conf)
	assert.Equal(t, ErrUnknownEngine, errors.Cause(err))
}
