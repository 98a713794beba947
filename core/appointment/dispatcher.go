package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
)

var NowFunc = time.Now // mockable

// Receipt is the outcome of a successful write.
type Receipt struct {
	ID         string                 `json:"id"`
	Collection string                 `json:"collection"`
	Document   map[string]interface{} `json:"document"`
}

// Dispatcher writes records to the collection of their category.
// Each Dispatch is exactly one write: there is no deduplication.
type Dispatcher struct {
	store core.DocumentStore
	newID func() string
}

func NewDispatcher(store core.DocumentStore) *Dispatcher {
	return &Dispatcher{
		store: store,
		newID: uuid.NewString,
	}
}

// Dispatch writes rec on behalf of owner and waits for the outcome.
// Failed writes are returned as *core.StoreError.
func (dsp *Dispatcher) Dispatch(ctx context.Context, owner account.Profile, rec Record) (Receipt, error) {
	switch rec.Category().Shape() {
	case ShapeAcademicResearch:
		return dsp.CreateAcademicResearch(ctx, owner, rec)
	case ShapeActivity:
		return dsp.CreateActivityStudent(ctx, owner, rec)
	case ShapeSolidarity:
		return dsp.CreateSolidarity(ctx, owner, rec)
	default:
		return Receipt{}, ErrInvalidCategory
	}
}

func (dsp *Dispatcher) CreateAcademicResearch(ctx context.Context, owner account.Profile, rec Record) (Receipt, error) {
	return dsp.create(ctx, CollectionAcademicResearch, owner, rec)
}

func (dsp *Dispatcher) CreateActivityStudent(ctx context.Context, owner account.Profile, rec Record) (Receipt, error) {
	return dsp.create(ctx, CollectionActivityStudent, owner, rec)
}

func (dsp *Dispatcher) CreateSolidarity(ctx context.Context, owner account.Profile, rec Record) (Receipt, error) {
	return dsp.create(ctx, CollectionSolidarity, owner, rec)
}

func (dsp *Dispatcher) create(ctx context.Context, collection string, owner account.Profile, rec Record) (Receipt, error) {
	doc := RemoveEmptyFields(rec.Document())

	// owner tagging
	doc["uid"] = owner.ID
	doc["providerId"] = owner.ProviderID
	doc["isActive"] = true
	doc["connection"] = owner.Connection()
	doc["createdAt"] = NowFunc().UTC().Format(time.RFC3339)

	id := dsp.newID()
	if err := dsp.store.Create(ctx, collection, id, doc); err != nil {
		retryable := errors.Cause(err) != core.ErrDocExists
		return Receipt{}, core.NewStoreError(errors.Wrapf(err, "creating %s document", collection), retryable)
	}
	return Receipt{ID: id, Collection: collection, Document: doc}, nil
}
