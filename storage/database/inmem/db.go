package inmemdb

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
)

type (
	// DB is a process local core.DocumentStore, used in DEV and tests.
	DB struct {
		collections map[string]*collection
		mutex       sync.RWMutex
	}

	collection struct {
		docs  map[string]map[string]interface{}
		order []string // IDs in creation order
	}
)

var _ core.DocumentStore = (*DB)(nil)

func Open() *DB {
	return &DB{collections: make(map[string]*collection)}
}

// coll returns the named collection, creating it if needed. The caller must hold the write lock.
func (db *DB) coll(name string) *collection {
	c, ok := db.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]map[string]interface{})}
		db.collections[name] = c
	}
	return c
}

func (db *DB) Create(_ context.Context, collection, id string, data map[string]interface{}) error {
	cp, err := core.EncodeDocument(data) // deep copy
	if err != nil {
		return err
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	c := db.coll(collection)
	if _, ok := c.docs[id]; ok {
		return core.ErrDocExists
	}
	c.docs[id] = cp
	c.order = append(c.order, id)
	return nil
}

func (db *DB) Set(_ context.Context, collection, id string, data map[string]interface{}) error {
	cp, err := core.EncodeDocument(data)
	if err != nil {
		return err
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	c := db.coll(collection)
	if _, ok := c.docs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.docs[id] = cp
	return nil
}

func (db *DB) Get(_ context.Context, collection, id string) (core.Document, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if c, ok := db.collections[collection]; ok {
		if data, ok := c.docs[id]; ok {
			return db.document(id, data)
		}
	}
	return core.Document{}, core.ErrDocNotFound
}

func (db *DB) List(_ context.Context, collection string, filters ...core.Filter) ([]core.Document, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	docs := make([]core.Document, 0)
	c, ok := db.collections[collection]
	if !ok {
		return docs, nil
	}
	for _, id := range c.order {
		doc, err := db.document(id, c.docs[id])
		if err != nil {
			return nil, err
		}
		if doc.Matches(filters...) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (db *DB) Close() error {
	return nil
}

// Reset drops all collections.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.collections = make(map[string]*collection)
}

// document returns a copy of data so that callers cannot change the stored document.
func (db *DB) document(id string, data map[string]interface{}) (core.Document, error) {
	cp, err := core.EncodeDocument(data)
	if err != nil {
		return core.Document{}, errors.Wrap(err, "copying document")
	}
	return core.Document{ID: id, Data: cp}, nil
}
