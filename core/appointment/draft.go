package appointment

import (
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core/account"
	"github.com/nossauesc/agenda/core/course"
)

var ErrUnknownField = errors.New("unknown draft field")

// Draft is the form state of an appointment being written.
// It is owned by a single editor and only changed through its methods.
type Draft struct {
	Category     Category         `json:"category"`
	Course       course.Course    `json:"course"`
	Banner       string           `json:"banner"`
	Title        string           `json:"title" validate:"max=80"`
	SearchArea   string           `json:"search_area" validate:"max=80"`
	Description  string           `json:"description" validate:"max=500"`
	Phrase       string           `json:"phrase" validate:"max=80"`
	Location     string           `json:"location" validate:"max=80"`
	IsSchedule   bool             `json:"is_schedule"` // true: WeekSchedule; false: Schedule
	Schedule     Timer            `json:"schedule"`
	WeekSchedule map[string]Timer `json:"week_schedule"`
}

// NewDraft returns an empty draft. Students start on the solidarity category, everybody else on research.
func NewDraft(role string) Draft {
	d := Draft{Category: CategoryAcademicResearch}
	if role == account.RoleStudent {
		d.Category = CategorySolidarity
	}
	return d
}

func (d *Draft) SetCategory(c Category) error {
	if !c.IsValid() {
		return ErrInvalidCategory
	}
	d.Category = c
	return nil
}

func (d *Draft) SelectCourse(c course.Course) {
	d.Course = c
}

// SetBanner stores the URI returned by the image picker.
func (d *Draft) SetBanner(uri string) {
	d.Banner = uri
}

func (d *Draft) RemoveBanner() {
	d.Banner = ""
}

// SetField sets a text field by its json name.
func (d *Draft) SetField(name, value string) error {
	fld := d.field(name)
	if fld == nil {
		return errors.Wrap(ErrUnknownField, name)
	}
	*fld = value
	return nil
}

func (d *Draft) ToggleScheduleMode() {
	d.IsSchedule = !d.IsSchedule
}

// UpdateTimer sets the parts of the single event schedule that are set in t.
func (d *Draft) UpdateTimer(t Timer) {
	d.Schedule = d.Schedule.merge(t)
}

// UpdateDayTimer sets the parts of the weekday schedule that are set in t, scheduling the day if needed.
func (d *Draft) UpdateDayTimer(day string, t Timer) error {
	canonical, err := CanonicalWeekday(day)
	if err != nil {
		return err
	}
	if d.WeekSchedule == nil {
		d.WeekSchedule = make(map[string]Timer)
	}
	d.WeekSchedule[canonical] = d.WeekSchedule[canonical].merge(t)
	return nil
}

// ToggleDay schedules or unschedules a weekday.
func (d *Draft) ToggleDay(day string) error {
	canonical, err := CanonicalWeekday(day)
	if err != nil {
		return err
	}
	if _, ok := d.WeekSchedule[canonical]; ok {
		delete(d.WeekSchedule, canonical)
		return nil
	}
	if d.WeekSchedule == nil {
		d.WeekSchedule = make(map[string]Timer)
	}
	d.WeekSchedule[canonical] = Timer{}
	return nil
}

// Reset discards everything, as after a successful submission.
func (d *Draft) Reset() {
	*d = Draft{Category: CategoryAcademicResearch}
}

// Clean trims the text fields and strips any markup from them.
// The banner is an opaque URI and is only trimmed.
func (d *Draft) Clean(policy *bluemonday.Policy) {
	d.Banner = strings.TrimSpace(d.Banner)
	d.Course.ID = strings.TrimSpace(d.Course.ID)
	d.Course.Name = strings.TrimSpace(d.Course.Name)
	for _, name := range textFields {
		fld := d.field(name)
		*fld = strings.TrimSpace(stripMarkup(policy, *fld))
	}
}

const maxStripPasses = 5

// stripMarkup returns s as plain text. Entity-encoded markup is decoded and stripped too,
// until a pass no longer changes the text. Text that is still not stable after
// maxStripPasses is returned escaped.
func stripMarkup(policy *bluemonday.Policy, s string) string {
	for i := 0; i < maxStripPasses; i++ {
		next := html.UnescapeString(policy.Sanitize(html.UnescapeString(s)))
		if next == s {
			return s
		}
		s = next
	}
	return policy.Sanitize(s)
}

func (d Draft) Validate(validate *validator.Validate) error {
	return validate.Struct(d)
}

var textFields = []string{"title", "search_area", "description", "phrase", "location"}

func (d *Draft) field(name string) *string {
	switch name {
	case "banner":
		return &d.Banner
	case "title":
		return &d.Title
	case "search_area":
		return &d.SearchArea
	case "description":
		return &d.Description
	case "phrase":
		return &d.Phrase
	case "location":
		return &d.Location
	default:
		return nil
	}
}

// value returns the text field named name, or the empty string.
func (d Draft) value(name string) string {
	if fld := d.field(name); fld != nil {
		return *fld
	}
	return ""
}
