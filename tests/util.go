package testutil

import (
	"context"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
	"github.com/nossauesc/agenda/core/appointment"
	"github.com/nossauesc/agenda/core/course"
)

// NewValidator returns a validator with all the app validations registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	account.InitValidators(validate, translator)
	appointment.InitValidators(validate, translator)
	return validate, translator
}

func CreateProfile(
	t *testing.T,
	store core.DocumentStore,
	uid, name, role string,
	createdAt ...time.Time,
) account.Profile {
	tstamp := time.Now().UTC().Truncate(time.Second)
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	prof := account.Profile{
		ID:          uid,
		DisplayName: name,
		Email:       uid + "@uesc.br",
		ProviderID:  "google.com",
		Role:        role,
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	}
	data, err := core.EncodeDocument(prof)
	if err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}
	if err = store.Set(context.Background(), account.Collection, uid, data); err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}
	return prof
}

// SeedCourses saves a small course catalog.
func SeedCourses(t *testing.T, store core.DocumentStore) []course.Course {
	courses := []course.Course{
		{ID: "cic", Name: "Ciência da Computação", Icon: "laptop"},
		{ID: "med", Name: "Medicina", Icon: "heart"},
	}
	if err := course.NewService(store).Save(context.Background(), courses...); err != nil {
		t.Fatalf("SeedCourses() failed: %v", err)
	}
	return courses
}
