package appointment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrIncompleteSchedule = errors.New("incomplete schedule")
	ErrEmptyWeekSchedule  = errors.New("no weekday scheduled")
	ErrUnknownWeekday     = errors.New("unknown weekday")

	// Weekdays are the canonical week schedule keys, in order.
	Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

	weekdayAliases = map[string]string{
		"sun": "Sun", "sunday": "Sun", "dom": "Sun", "domingo": "Sun",
		"mon": "Mon", "monday": "Mon", "seg": "Mon", "segunda": "Mon",
		"tue": "Tue", "tuesday": "Tue", "ter": "Tue", "terça": "Tue", "terca": "Tue",
		"wed": "Wed", "wednesday": "Wed", "qua": "Wed", "quarta": "Wed",
		"thu": "Thu", "thursday": "Thu", "qui": "Thu", "quinta": "Thu",
		"fri": "Fri", "friday": "Fri", "sex": "Fri", "sexta": "Fri",
		"sat": "Sat", "saturday": "Sat", "sab": "Sat", "sáb": "Sat", "sábado": "Sat", "sabado": "Sat",
	}
)

// Timer is the raw state of the date/time pickers. Any part may be empty while editing.
type Timer struct {
	Date   string `json:"date,omitempty"`
	Month  string `json:"month,omitempty"`
	Hours  string `json:"hours,omitempty"`
	Minute string `json:"minute,omitempty"`
}

// merge overrides the parts of t that are set in other.
func (t Timer) merge(other Timer) Timer {
	if other.Date != "" {
		t.Date = other.Date
	}
	if other.Month != "" {
		t.Month = other.Month
	}
	if other.Hours != "" {
		t.Hours = other.Hours
	}
	if other.Minute != "" {
		t.Minute = other.Minute
	}
	return t
}

// Schedule is the canonical event time. Date and Month are omitted in week schedules.
type Schedule struct {
	Date   string `json:"date,omitempty"`
	Month  string `json:"month,omitempty"`
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
}

// WeekSchedule maps canonical weekdays to the time of the event on that day.
type WeekSchedule map[string]Schedule

func (s Schedule) document() map[string]interface{} {
	doc := map[string]interface{}{
		"hour":   s.Hour,
		"minute": s.Minute,
	}
	if s.Date != "" {
		doc["date"] = s.Date
	}
	if s.Month != "" {
		doc["month"] = s.Month
	}
	return doc
}

func (ws WeekSchedule) document() map[string]interface{} {
	doc := make(map[string]interface{}, len(ws))
	for day, s := range ws {
		doc[day] = s.document()
	}
	return doc
}

// FormatSchedule converts single event picker state into a Schedule.
// All parts are required; numbers are zero-padded to two digits.
func FormatSchedule(t Timer) (Schedule, error) {
	date, err := formatPart(t.Date, 1, 31)
	if err != nil {
		return Schedule{}, errors.Wrap(err, "date")
	}
	month, err := formatPart(t.Month, 1, 12)
	if err != nil {
		return Schedule{}, errors.Wrap(err, "month")
	}
	hour, minute, err := formatTime(t)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{Date: date, Month: month, Hour: hour, Minute: minute}, nil
}

// FormatWeekSchedule converts the per-weekday picker state into a WeekSchedule.
// At least one weekday is required and every scheduled weekday needs hours and minutes.
func FormatWeekSchedule(week map[string]Timer) (WeekSchedule, error) {
	if len(week) == 0 {
		return nil, ErrEmptyWeekSchedule
	}
	ws := make(WeekSchedule, len(week))
	for day, t := range week {
		canonical, err := CanonicalWeekday(day)
		if err != nil {
			return nil, err
		}
		hour, minute, err := formatTime(t)
		if err != nil {
			return nil, errors.Wrap(err, canonical)
		}
		ws[canonical] = Schedule{Hour: hour, Minute: minute}
	}
	return ws, nil
}

// CanonicalWeekday maps english or portuguese weekday names to their Weekdays key.
func CanonicalWeekday(day string) (string, error) {
	if canonical, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(day))]; ok {
		return canonical, nil
	}
	return "", errors.Wrap(ErrUnknownWeekday, day)
}

func formatTime(t Timer) (string, string, error) {
	hour, err := formatPart(t.Hours, 0, 23)
	if err != nil {
		return "", "", errors.Wrap(err, "hours")
	}
	minute, err := formatPart(t.Minute, 0, 59)
	if err != nil {
		return "", "", errors.Wrap(err, "minute")
	}
	return hour, minute, nil
}

func formatPart(s string, min, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrIncompleteSchedule
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < min || n > max {
		return "", errors.Errorf("%q out of range [%d, %d]", s, min, max)
	}
	return fmt.Sprintf("%02d", n), nil
}
