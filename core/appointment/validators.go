package appointment

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/nossauesc/agenda/core"
)

var (
	requiredTag = "required"

	categoryTag  = "category"
	categoryText = "invalid category"

	scheduleTag  = "schedule"
	scheduleText = "a complete date and time is required"

	weekScheduleTag  = "week_schedule"
	weekScheduleText = "at least one weekday with hours and minutes is required"
)

// InitValidators registers the appointment validations. core.InitValidators must run first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(draftStructValidation, Draft{})
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)
	core.RegisterCustomTranslation(validate, translator, scheduleTag, scheduleText)
	core.RegisterCustomTranslation(validate, translator, weekScheduleTag, weekScheduleText)
}

// draftStructValidation checks the fields required by the category of the draft.
func draftStructValidation(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(Draft)
	if !ok {
		return
	}
	if !d.Category.IsValid() {
		sl.ReportError(d.Category, "category", "Category", categoryTag, "")
		return
	}

	req := RequirementsFor(d.Category)
	for _, name := range req.Fields {
		if d.value(name) == "" {
			sl.ReportError(d.value(name), name, name, requiredTag, "")
		}
	}
	if req.Course && d.Course.Name == "" {
		sl.ReportError(d.Course.Name, "course", "Course", requiredTag, "")
	}
	if req.Schedule {
		if d.IsSchedule {
			if _, err := FormatWeekSchedule(d.WeekSchedule); err != nil {
				sl.ReportError(d.WeekSchedule, "week_schedule", "WeekSchedule", weekScheduleTag, "")
			}
		} else if _, err := FormatSchedule(d.Schedule); err != nil {
			sl.ReportError(d.Schedule, "schedule", "Schedule", scheduleTag, "")
		}
	}
}
