package appointment

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
	"github.com/nossauesc/agenda/core/course"
)

var (
	ErrNotFound      = errors.New("appointment not found")
	ErrUnknownCourse = errors.New("unknown course")
)

// CourseResolver replaces picked courses with their catalog entry.
type CourseResolver interface {
	Resolve(ctx context.Context, ref course.Course) (course.Course, error)
}

type Deps struct {
	Store    core.DocumentStore
	Courses  CourseResolver
	Validate *validator.Validate
	Logger   core.Logger
}

type Service struct {
	store      core.DocumentStore
	dispatcher *Dispatcher
	courses    CourseResolver
	validate   *validator.Validate
	policy     *bluemonday.Policy
	logger     core.Logger
}

func NewService(deps Deps) *Service {
	return &Service{
		store:      deps.Store,
		dispatcher: NewDispatcher(deps.Store),
		courses:    deps.Courses,
		validate:   deps.Validate,
		policy:     bluemonday.StrictPolicy(),
		logger:     deps.Logger,
	}
}

// NewDraft returns the initial draft of the owner.
func (svc *Service) NewDraft(owner account.Profile) Draft {
	return NewDraft(owner.Role)
}

// Submit validates the draft, builds its record and writes it.
// Validation failures are returned as validator.ValidationErrors or *core.ValidationError and never write;
// write failures are returned as *core.StoreError.
func (svc *Service) Submit(ctx context.Context, owner account.Profile, d Draft) (Receipt, error) {
	d.Clean(svc.policy)

	if d.Course.ID != "" {
		crs, err := svc.courses.Resolve(ctx, d.Course)
		if err != nil {
			if errors.Cause(err) == course.ErrNotFound {
				return Receipt{}, core.NewValidationError(ErrUnknownCourse, core.FieldError{Field: "course", Error: ErrUnknownCourse.Error()})
			}
			return Receipt{}, errors.Wrap(err, "resolving course")
		}
		d.Course = crs
	}

	if err := d.Validate(svc.validate); err != nil {
		return Receipt{}, err
	}

	rec, err := Build(d)
	if err != nil {
		return Receipt{}, core.NewValidationError(err)
	}

	rcpt, err := svc.dispatcher.Dispatch(ctx, owner, rec)
	if err != nil {
		return Receipt{}, err
	}
	svc.logger.Info(fmt.Sprintf("%s %s created", rcpt.Collection, rcpt.ID), owner)
	return rcpt, nil
}

// Get returns a record of the given shape.
func (svc *Service) Get(ctx context.Context, shape Shape, id string) (core.Document, error) {
	collection := shape.Collection()
	if collection == "" {
		return core.Document{}, ErrInvalidKind
	}
	doc, err := svc.store.Get(ctx, collection, id)
	if err != nil {
		if errors.Cause(err) == core.ErrDocNotFound {
			return core.Document{}, ErrNotFound
		}
		return core.Document{}, errors.Wrapf(err, "getting %s document", collection)
	}
	return doc, nil
}

// ListByOwner returns the records of the given shape created by uid, oldest first.
func (svc *Service) ListByOwner(ctx context.Context, shape Shape, uid string) ([]core.Document, error) {
	collection := shape.Collection()
	if collection == "" {
		return nil, ErrInvalidKind
	}
	docs, err := svc.store.List(ctx, collection, core.Filter{Field: "uid", Value: uid})
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s documents", collection)
	}
	return docs, nil
}

// List returns every record of the given shape, oldest first.
func (svc *Service) List(ctx context.Context, shape Shape) ([]core.Document, error) {
	collection := shape.Collection()
	if collection == "" {
		return nil, ErrInvalidKind
	}
	docs, err := svc.store.List(ctx, collection)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s documents", collection)
	}
	return docs, nil
}
