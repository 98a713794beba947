package sqlxdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
)

const uniqueViolation = "23505"

// DocumentStore keeps all collections in the single JSONB "documents" table.
type DocumentStore struct {
	db *sqlx.DB
}

var _ core.DocumentStore = (*DocumentStore)(nil)

func NewDocumentStore(db *sqlx.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

type row struct {
	ID   string         `db:"id"`
	Data types.JSONText `db:"data"`
}

func (s *DocumentStore) Create(ctx context.Context, collection, id string, data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "marshalling document")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
		collection, id, types.JSONText(raw),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return core.ErrDocExists
		}
		return errors.Wrap(err, "inserting document")
	}
	return nil
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "marshalling document")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		collection, id, types.JSONText(raw),
	)
	return errors.Wrap(err, "upserting document")
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (core.Document, error) {
	var r row
	err := s.db.GetContext(ctx, &r, `SELECT id, data FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.Document{}, core.ErrDocNotFound
		}
		return core.Document{}, errors.Wrap(err, "selecting document")
	}
	return r.document()
}

func (s *DocumentStore) List(ctx context.Context, collection string, filters ...core.Filter) ([]core.Document, error) {
	q, args := listQuery(collection, filters)
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting documents")
	}
	docs := make([]core.Document, 0, len(rows))
	for _, r := range rows {
		doc, err := r.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *DocumentStore) Close() error {
	return s.db.Close()
}

func listQuery(collection string, filters []core.Filter) (string, []interface{}) {
	var q strings.Builder
	args := make([]interface{}, 0, 1+2*len(filters))
	q.WriteString(`SELECT id, data FROM documents WHERE collection = $1`)
	args = append(args, collection)
	for _, f := range filters {
		n := len(args)
		q.WriteString(" AND data ->> $" + strconv.Itoa(n+1) + " = $" + strconv.Itoa(n+2))
		args = append(args, f.Field, f.Value)
	}
	q.WriteString(` ORDER BY created_at, id`)
	return q.String(), args
}

func (r row) document() (core.Document, error) {
	data := make(map[string]interface{})
	if err := r.Data.Unmarshal(&data); err != nil {
		return core.Document{}, errors.Wrap(err, "unmarshalling document")
	}
	return core.Document{ID: r.ID, Data: data}, nil
}
