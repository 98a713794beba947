package appointment

import (
	"github.com/pkg/errors"
)

// Record is a submission ready to be written to its collection.
// Implementations: *AcademicResearch, *Activity, *Solidarity
type Record interface {
	Category() Category
	Collection() string
	// Document returns the fields to persist. Unfilled text fields are empty strings.
	Document() map[string]interface{}
}

var (
	_ Record = (*AcademicResearch)(nil)
	_ Record = (*Activity)(nil)
	_ Record = (*Solidarity)(nil)
)

type AcademicResearch struct {
	Title       string
	SearchArea  string
	Description string
	Course      string
}

func (r *AcademicResearch) Category() Category { return CategoryAcademicResearch }

func (r *AcademicResearch) Collection() string { return CollectionAcademicResearch }

func (r *AcademicResearch) Document() map[string]interface{} {
	return map[string]interface{}{
		"title":       r.Title,
		"searchArea":  r.SearchArea,
		"description": r.Description,
		"course":      r.Course,
	}
}

// Activity is a study group, culture or sports event.
// Exactly one of Schedule and WeekSchedule is set.
type Activity struct {
	Kind         Category
	Course       string
	Banner       string
	Title        string
	SearchArea   string
	Phrase       string
	Location     string
	Description  string
	Schedule     *Schedule
	WeekSchedule WeekSchedule
}

func (r *Activity) Category() Category { return r.Kind }

func (r *Activity) Collection() string { return CollectionActivityStudent }

func (r *Activity) Document() map[string]interface{} {
	var schedule, weekSchedule interface{}
	if r.Schedule != nil {
		schedule = r.Schedule.document()
	}
	if r.WeekSchedule != nil {
		weekSchedule = r.WeekSchedule.document()
	}
	return map[string]interface{}{
		"course":       r.Course,
		"banner":       r.Banner,
		"schedule":     schedule,
		"weekSchedule": weekSchedule,
		"categoryId":   r.Kind.String(),
		"members":      []interface{}{},
		"isActivity":   true,
		"title":        r.Title,
		"searchArea":   r.SearchArea,
		"phrase":       r.Phrase,
		"location":     r.Location,
		"description":  r.Description,
	}
}

// Solidarity is a help request.
type Solidarity struct {
	Banner      string
	Description string
}

func (r *Solidarity) Category() Category { return CategorySolidarity }

func (r *Solidarity) Collection() string { return CollectionSolidarity }

func (r *Solidarity) Document() map[string]interface{} {
	return map[string]interface{}{
		"description": r.Description,
		"banner":      r.Banner,
	}
}

// Build assembles the record of the draft category. The draft is expected to be valid;
// only the schedule selected by the schedule-mode flag is formatted.
func Build(d Draft) (Record, error) {
	switch d.Category.Shape() {
	case ShapeAcademicResearch:
		return buildAcademicResearch(d), nil
	case ShapeActivity:
		return buildActivity(d)
	case ShapeSolidarity:
		return buildSolidarity(d), nil
	default:
		return nil, ErrInvalidCategory
	}
}

func buildAcademicResearch(d Draft) *AcademicResearch {
	return &AcademicResearch{
		Title:       d.Title,
		SearchArea:  d.SearchArea,
		Description: d.Description,
		Course:      d.Course.Name,
	}
}

func buildActivity(d Draft) (*Activity, error) {
	act := &Activity{
		Kind:        d.Category,
		Course:      d.Course.Name,
		Banner:      d.Banner,
		Title:       d.Title,
		SearchArea:  d.SearchArea,
		Phrase:      d.Phrase,
		Location:    d.Location,
		Description: d.Description,
	}
	if d.IsSchedule {
		ws, err := FormatWeekSchedule(d.WeekSchedule)
		if err != nil {
			return nil, errors.Wrap(err, "formatting week schedule")
		}
		act.WeekSchedule = ws
	} else {
		s, err := FormatSchedule(d.Schedule)
		if err != nil {
			return nil, errors.Wrap(err, "formatting schedule")
		}
		act.Schedule = &s
	}
	return act, nil
}

func buildSolidarity(d Draft) *Solidarity {
	return &Solidarity{
		Banner:      d.Banner,
		Description: d.Description,
	}
}
