package account

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/course"
)

// Collection holds one Profile per user, keyed by the identity provider UID.
const Collection = "users"

// Roles
const (
	RoleStudent              = "student"
	RoleWaitingAuthorization = "waiting-authorization" // teacher account pending moderator approval
	RoleTeacher              = "teacher"
	RoleAdmin                = "admin"
)

var AllRoles = []string{RoleStudent, RoleWaitingAuthorization, RoleTeacher, RoleAdmin}

// Identity is what the identity provider tells us about an authenticated user.
type Identity struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
	ProviderID  string
}

// Profile is the registered account of a user. Unset optional fields are stored as null.
type Profile struct {
	ID           string      `json:"uid"`
	DisplayName  string      `json:"displayName"`
	Email        string      `json:"email"`
	PhoneNumber  null.String `json:"phoneNumber"`
	Course       null.String `json:"course"`
	Registration null.String `json:"registration"`
	Department   null.String `json:"departament"`
	SearchArea   null.String `json:"searchArea"`
	PhotoURL     null.String `json:"photoURL"`
	ProviderID   string      `json:"providerId"`
	XP           int         `json:"xp"`
	Role         string      `json:"role"`
	CreatedAt    time.Time   `json:"createdAt"` // UTC
	UpdatedAt    time.Time   `json:"updatedAt"` // UTC
}

func (p Profile) IsStudent() bool { return p.Role == RoleStudent }

func (p Profile) IsTeacher() bool { return p.Role == RoleTeacher }

func (p Profile) IsAdmin() bool { return p.Role == RoleAdmin }

func (p Profile) IsWaitingAuthorization() bool { return p.Role == RoleWaitingAuthorization }

// Connection is the snapshot of the user embedded in the records they create.
func (p Profile) Connection() map[string]interface{} {
	return map[string]interface{}{
		"id":     p.ID,
		"name":   p.DisplayName,
		"course": p.Course.String,
		"avatar": p.PhotoURL.String,
		"email":  p.Email,
		"xp":     p.XP,
	}
}

// NewProfile contains the information users fill in to register.
type NewProfile struct {
	IsTeacher    bool          `json:"is_teacher"`
	Course       course.Course `json:"course"`
	Registration string        `json:"registration" validate:"max=20"`
	Department   string        `json:"department" validate:"max=80"`
	SearchArea   string        `json:"search_area" validate:"max=80"`
	PhoneNumber  string        `json:"phone_number" validate:"max=20"`
}

func (np *NewProfile) Clean() {
	np.Course.ID = core.CleanString(np.Course.ID)
	np.Course.Name = core.CleanString(np.Course.Name)
	np.Registration = core.CleanString(np.Registration)
	np.Department = core.CleanString(np.Department)
	np.SearchArea = core.CleanString(np.SearchArea)
	np.PhoneNumber = core.CleanString(np.PhoneNumber)
}

func (np NewProfile) Validate(validate *validator.Validate) error {
	return validate.Struct(np)
}

// nullString maps "" to null.
func nullString(s string) null.String {
	return null.NewString(s, s != "")
}
