package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/storage/database"
	inmemdb "github.com/nossauesc/agenda/storage/database/inmem"
	sqlxdb "github.com/nossauesc/agenda/storage/database/sqlx"
	firestoredb "github.com/nossauesc/agenda/storage/firestore"
)

// Engines
const (
	EngineMemory    = "memory"
	EnginePostgres  = "postgres"
	EngineFirestore = "firestore"
)

var ErrUnknownEngine = errors.New("unknown document store engine")

// Open returns the document store selected by conf.Docstore.Engine.
// The postgres database is created and migrated when needed.
func Open(ctx context.Context, conf *core.Config) (core.DocumentStore, error) {
	switch conf.Docstore.Engine {
	case EngineMemory, "":
		return inmemdb.Open(), nil

	case EnginePostgres:
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db.DB, "up"); err != nil {
			_ = db.Close()
			return nil, err
		}
		return sqlxdb.NewDocumentStore(db), nil

	case EngineFirestore:
		return firestoredb.Open(ctx, conf)

	default:
		return nil, errors.Wrap(ErrUnknownEngine, conf.Docstore.Engine)
	}
}
