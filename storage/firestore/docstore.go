package firestoredb

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nossauesc/agenda/core"
)

// DocumentStore is the core.DocumentStore used in production, backed by Cloud Firestore.
type DocumentStore struct {
	client *firestore.Client
}

var _ core.DocumentStore = (*DocumentStore)(nil)

// Open connects to the Firestore database of the configured project.
// Without a credentials file, the application default credentials are used.
func Open(ctx context.Context, conf *core.Config) (*DocumentStore, error) {
	var opts []option.ClientOption
	if conf.Docstore.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.Docstore.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, conf.Docstore.ProjectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating firestore client")
	}
	return &DocumentStore{client: client}, nil
}

func (s *DocumentStore) Create(ctx context.Context, collection, id string, data map[string]interface{}) error {
	if _, err := s.client.Collection(collection).Doc(id).Create(ctx, data); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return core.ErrDocExists
		}
		return errors.Wrap(err, "creating document")
	}
	return nil
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, data)
	return errors.Wrap(err, "setting document")
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (core.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return core.Document{}, core.ErrDocNotFound
		}
		return core.Document{}, errors.Wrap(err, "getting document")
	}
	return core.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *DocumentStore) List(ctx context.Context, collection string, filters ...core.Filter) ([]core.Document, error) {
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, "==", f.Value)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	snaps := make([]*firestore.DocumentSnapshot, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterating documents")
		}
		snaps = append(snaps, snap)
	}

	// ordering by create time server side would need a composite index per filter
	sort.SliceStable(snaps, func(i, j int) bool { return snaps[i].CreateTime.Before(snaps[j].CreateTime) })

	docs := make([]core.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, core.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *DocumentStore) Close() error {
	return s.client.Close()
}
