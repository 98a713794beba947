package course

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
)

const (
	Collection  = "courses"
	DefaultIcon = "default"
)

var ErrNotFound = errors.New("course not found")

// Course is an entry of the course catalog, as picked by users.
type Course struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Service struct {
	store core.DocumentStore
}

func NewService(store core.DocumentStore) *Service {
	return &Service{store: store}
}

// List returns the catalog ordered by name.
func (svc *Service) List(ctx context.Context) ([]Course, error) {
	docs, err := svc.store.List(ctx, Collection)
	if err != nil {
		return nil, errors.Wrap(err, "listing courses")
	}
	courses := make([]Course, 0, len(docs))
	for _, doc := range docs {
		crs, err := decode(doc)
		if err != nil {
			return nil, err
		}
		courses = append(courses, crs)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Name < courses[j].Name })
	return courses, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Course, error) {
	doc, err := svc.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Cause(err) == core.ErrDocNotFound {
			return Course{}, ErrNotFound
		}
		return Course{}, errors.Wrap(err, "getting course")
	}
	return decode(doc)
}

// Resolve replaces a picked course with its catalog entry.
// References without ID are returned as is.
func (svc *Service) Resolve(ctx context.Context, ref Course) (Course, error) {
	if ref.ID == "" {
		return ref, nil
	}
	return svc.Get(ctx, ref.ID)
}

// Save creates or overwrites catalog entries.
func (svc *Service) Save(ctx context.Context, courses ...Course) error {
	for _, crs := range courses {
		crs.Name = core.CleanString(crs.Name)
		if crs.Icon == "" {
			crs.Icon = DefaultIcon
		}
		data := map[string]interface{}{
			"id":   crs.ID,
			"name": crs.Name,
			"icon": crs.Icon,
		}
		if err := svc.store.Set(ctx, Collection, crs.ID, data); err != nil {
			return errors.Wrap(err, "saving course "+crs.ID)
		}
	}
	return nil
}

func decode(doc core.Document) (Course, error) {
	var crs Course
	if err := doc.Decode(&crs); err != nil {
		return Course{}, errors.Wrap(err, "decoding course")
	}
	if crs.ID == "" {
		crs.ID = doc.ID
	}
	return crs, nil
}
