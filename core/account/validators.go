package account

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var requiredTag = "required"

// InitValidators registers the account validations. core.InitValidators must run first.
func InitValidators(validate *validator.Validate, _ ut.Translator) {
	validate.RegisterStructValidation(newProfileStructValidation, NewProfile{})
}

// newProfileStructValidation checks the fields required by the kind of account:
// - teacher: department, registration, search area & course
// - student: registration & course
func newProfileStructValidation(sl validator.StructLevel) {
	np, ok := sl.Current().Interface().(NewProfile)
	if !ok {
		return
	}
	if np.Registration == "" {
		sl.ReportError(np.Registration, "registration", "Registration", requiredTag, "")
	}
	if np.Course.Name == "" {
		sl.ReportError(np.Course.Name, "course", "Course", requiredTag, "")
	}
	if np.IsTeacher {
		if np.Department == "" {
			sl.ReportError(np.Department, "department", "Department", requiredTag, "")
		}
		if np.SearchArea == "" {
			sl.ReportError(np.SearchArea, "search_area", "SearchArea", requiredTag, "")
		}
	}
}
