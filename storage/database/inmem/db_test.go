package inmemdb

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nossauesc/agenda/core"
)

func TestDB(t *testing.T) {
	ctx := context.Background()
	db := Open()

	data := map[string]interface{}{"uid": "u1", "banner": "b.png", "nested": map[string]interface{}{"hour": "10"}}
	assert.NoError(t, db.Create(ctx, "solidarity", "d1", data))
	assert.Equal(t, core.ErrDocExists, db.Create(ctx, "solidarity", "d1", data))
	assert.NoError(t, db.Create(ctx, "solidarity", "d2", map[string]interface{}{"uid": "u2"}))
	assert.NoError(t, db.Create(ctx, "solidarity", "d3", map[string]interface{}{"uid": "u1"}))

	t.Run("stored data is a copy", func(t *testing.T) {
		data["banner"] = "changed"
		doc, err := db.Get(ctx, "solidarity", "d1")
		if assert.NoError(t, err) {
			assert.Equal(t, "b.png", doc.Data["banner"])
			doc.Data["nested"].(map[string]interface{})["hour"] = "11"
		}
		doc, _ = db.Get(ctx, "solidarity", "d1")
		assert.Equal(t, map[string]interface{}{"hour": "10"}, doc.Data["nested"])
	})

	t.Run("Get", func(t *testing.T) {
		_, err := db.Get(ctx, "solidarity", "unknown")
		assert.Equal(t, core.ErrDocNotFound, err)
		_, err = db.Get(ctx, "unknown", "d1")
		assert.Equal(t, core.ErrDocNotFound, err)
	})

	t.Run("List", func(t *testing.T) {
		docs, err := db.List(ctx, "solidarity")
		if assert.NoError(t, err) && assert.Len(t, docs, 3) {
			assert.Equal(t, []string{"d1", "d2", "d3"}, ids(docs))
		}

		docs, err = db.List(ctx, "solidarity", core.Filter{Field: "uid", Value: "u1"})
		if assert.NoError(t, err) {
			assert.Equal(t, []string{"d1", "d3"}, ids(docs))
		}

		docs, err = db.List(ctx, "solidarity", core.Filter{Field: "uid", Value: "u1"}, core.Filter{Field: "banner", Value: "b.png"})
		if assert.NoError(t, err) {
			assert.Equal(t, []string{"d1"}, ids(docs))
		}

		docs, err = db.List(ctx, "unknown")
		if assert.NoError(t, err) {
			assert.NotNil(t, docs)
			assert.Empty(t, docs)
		}
	})

	t.Run("Set", func(t *testing.T) {
		assert.NoError(t, db.Set(ctx, "solidarity", "d2", map[string]interface{}{"uid": "u3"}))
		assert.NoError(t, db.Set(ctx, "solidarity", "d4", map[string]interface{}{"uid": "u3"}))

		docs, _ := db.List(ctx, "solidarity", core.Filter{Field: "uid", Value: "u3"})
		assert.Equal(t, []string{"d2", "d4"}, ids(docs), "overwrite keeps the creation order")
	})

	t.Run("Reset", func(t *testing.T) {
		db.Reset()
		docs, _ := db.List(ctx, "solidarity")
		assert.Empty(t, docs)
		assert.NoError(t, db.Close())
	})
}

func TestDB_concurrentCreate(t *testing.T) {
	ctx := context.Background()
	db := Open()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- db.Create(ctx, "solidarity", "same", map[string]interface{}{"n": 1})
		}()
	}
	wg.Wait()
	close(errs)

	var created int
	for err := range errs {
		if err == nil {
			created++
		} else {
			assert.Equal(t, core.ErrDocExists, err)
		}
	}
	assert.Equal(t, 1, created)
}

func ids(docs []core.Document) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.ID)
	}
	return out
}
