package core

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

type (
	// Document is a schemaless record stored in a collection.
	Document struct {
		ID   string
		Data map[string]interface{}
	}

	// Filter matches documents whose top-level Field equals Value.
	Filter struct {
		Field string
		Value string
	}

	// DocumentStore is a remote document database (Firestore-style): documents are grouped
	// in named collections and addressed by ID. Writes are "last write wins".
	DocumentStore interface {
		// Create stores a new document; ErrDocExists is returned if the ID is taken.
		Create(ctx context.Context, collection, id string, data map[string]interface{}) error
		// Set creates or overwrites a document.
		Set(ctx context.Context, collection, id string, data map[string]interface{}) error
		// Get returns ErrDocNotFound if no document matches.
		Get(ctx context.Context, collection, id string) (Document, error)
		// List applies AND operation on the provided filters. Documents are returned in creation order.
		List(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
		Close() error
	}
)

// Decode copies the document data into dst using its json tags.
func (doc Document) Decode(dst interface{}) error {
	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return errors.Wrap(err, "marshalling document")
	}
	return errors.Wrap(json.Unmarshal(raw, dst), "unmarshalling document")
}

// Matches reports whether the document satisfies all the filters.
func (doc Document) Matches(filters ...Filter) bool {
	for _, f := range filters {
		val, ok := doc.Data[f.Field]
		if !ok {
			return false
		}
		s, ok := val.(string)
		if !ok || s != f.Value {
			return false
		}
	}
	return true
}

// EncodeDocument converts v into document data using its json tags.
func EncodeDocument(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling document")
	}
	data := make(map[string]interface{})
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshalling document")
	}
	return data, nil
}
