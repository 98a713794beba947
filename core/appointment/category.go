package appointment

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Collections
const (
	CollectionAcademicResearch = "academic_research"
	CollectionActivityStudent  = "actitivity_student" // sic: existing clients read this collection
	CollectionSolidarity       = "solidarity"
)

// Category selects the shape of a record. Wire ids are "1".."5".
type Category int

const (
	CategoryAcademicResearch Category = iota + 1
	CategoryStudyGroup
	CategoryCulture
	CategorySports
	CategorySolidarity
)

// Shape is the kind of record a Category produces.
type Shape int

const (
	ShapeAcademicResearch Shape = iota + 1
	ShapeActivity
	ShapeSolidarity
)

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidKind     = errors.New("invalid record kind")

	Categories = []CategoryInfo{
		{ID: CategoryAcademicResearch, Title: "Pesquisa acadêmica"},
		{ID: CategoryStudyGroup, Title: "Grupo de estudos"},
		{ID: CategoryCulture, Title: "Cultura e lazer"},
		{ID: CategorySports, Title: "Esportes"},
		{ID: CategorySolidarity, Title: "Solidariedade"},
	}

	requirements = map[Shape]Requirements{
		ShapeAcademicResearch: {Fields: []string{"title", "search_area"}, Course: true},
		ShapeActivity:         {Fields: []string{"banner", "title", "phrase", "location"}, Schedule: true},
		ShapeSolidarity:       {Fields: []string{"banner", "description"}},
	}

	kinds = map[Shape]string{
		ShapeAcademicResearch: "research",
		ShapeActivity:         "activities",
		ShapeSolidarity:       "solidarity",
	}
)

type CategoryInfo struct {
	ID    Category `json:"id"`
	Title string   `json:"title"`
	Shape string   `json:"kind"`
}

// Requirements lists what a Draft must provide for its Category to be submitted.
type Requirements struct {
	Fields   []string // json names of the required Draft fields
	Course   bool     // course.name is required
	Schedule bool     // the schedule picked by the schedule-mode flag is required
}

func init() {
	for i := range Categories {
		Categories[i].Shape = Categories[i].ID.Shape().Kind()
	}
}

// ParseCategory parses a wire id ("1".."5").
func ParseCategory(s string) (Category, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidCategory
	}
	c := Category(n)
	if !c.IsValid() {
		return 0, ErrInvalidCategory
	}
	return c, nil
}

func (c Category) IsValid() bool {
	return c >= CategoryAcademicResearch && c <= CategorySolidarity
}

func (c Category) String() string {
	return strconv.Itoa(int(c))
}

func (c Category) Shape() Shape {
	switch c {
	case CategoryAcademicResearch:
		return ShapeAcademicResearch
	case CategoryStudyGroup, CategoryCulture, CategorySports:
		return ShapeActivity
	case CategorySolidarity:
		return ShapeSolidarity
	default:
		return 0
	}
}

func (c Category) Collection() string {
	return c.Shape().Collection()
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts both "2" and 2. Out of range values are left to validation.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int
		if err = json.Unmarshal(data, &n); err != nil {
			return ErrInvalidCategory
		}
		*c = Category(n)
		return nil
	}
	if s == "" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return ErrInvalidCategory
	}
	*c = Category(n)
	return nil
}

// RequirementsFor returns the validation rules of the given Category.
func RequirementsFor(c Category) Requirements {
	return requirements[c.Shape()]
}

func (s Shape) Collection() string {
	switch s {
	case ShapeAcademicResearch:
		return CollectionAcademicResearch
	case ShapeActivity:
		return CollectionActivityStudent
	case ShapeSolidarity:
		return CollectionSolidarity
	default:
		return ""
	}
}

// Kind is the name of the Shape in API paths.
func (s Shape) Kind() string {
	return kinds[s]
}

func ParseKind(kind string) (Shape, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	for shape, k := range kinds {
		if k == kind {
			return shape, nil
		}
	}
	return 0, ErrInvalidKind
}
