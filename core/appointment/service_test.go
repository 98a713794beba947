package appointment_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
	. "github.com/nossauesc/agenda/core/appointment"
	"github.com/nossauesc/agenda/core/course"
	logsvc "github.com/nossauesc/agenda/services/logger"
	"github.com/nossauesc/agenda/storage/database/inmem"
	"github.com/nossauesc/agenda/tests"
)

type failingStore struct {
	core.DocumentStore
	err error
}

func (s failingStore) Create(context.Context, string, string, map[string]interface{}) error {
	return s.err
}

func setup(t *testing.T, store core.DocumentStore) (*Service, account.Profile) {
	validate, _ := testutil.NewValidator()
	owner := account.Profile{ID: "u1", DisplayName: "Ana", Email: "ana@uesc.br", ProviderID: "google.com", Role: account.RoleStudent, XP: 3}
	svc := NewService(Deps{
		Store:    store,
		Courses:  course.NewService(store),
		Validate: validate,
		Logger:   logsvc.NewNopLogger(),
	})
	return svc, owner
}

func count(t *testing.T, store core.DocumentStore, collection string) int {
	docs, err := store.List(context.Background(), collection)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	return len(docs)
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return now }
	defer func() { NowFunc = time.Now }()

	t.Run("solidarity", func(t *testing.T) {
		store := inmemdb.Open()
		svc, owner := setup(t, store)

		d := svc.NewDraft(owner)
		assert.Equal(t, CategorySolidarity, d.Category)
		assert.NoError(t, d.SetField("description", "Preciso de ajuda"))
		d.SetBanner("file://img.png")

		rcpt, err := svc.Submit(ctx, owner, d)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, CollectionSolidarity, rcpt.Collection)
		assert.NotEmpty(t, rcpt.ID)

		doc, err := svc.Get(ctx, ShapeSolidarity, rcpt.ID)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "Preciso de ajuda", doc.Data["description"])
		assert.Equal(t, "file://img.png", doc.Data["banner"])
		assert.Equal(t, "u1", doc.Data["uid"])
		assert.Equal(t, "google.com", doc.Data["providerId"])
		assert.Equal(t, true, doc.Data["isActive"])
		assert.Equal(t, "2026-10-19T12:00:00Z", doc.Data["createdAt"])
		assert.Equal(t, map[string]interface{}{
			"id": "u1", "name": "Ana", "course": "", "avatar": "", "email": "ana@uesc.br", "xp": float64(3),
		}, doc.Data["connection"])
		for _, fld := range []string{"title", "schedule", "weekSchedule", "course"} {
			assert.NotContains(t, doc.Data, fld)
		}
	})

	t.Run("research with empty title is rejected", func(t *testing.T) {
		store := inmemdb.Open()
		svc, owner := setup(t, store)

		d := Draft{Category: CategoryAcademicResearch, SearchArea: "x", Course: course.Course{Name: "CS"}}
		_, err := svc.Submit(ctx, owner, d)
		vErrs, ok := errors.Cause(err).(validator.ValidationErrors)
		if assert.True(t, ok, "got %v", err) && assert.Len(t, vErrs, 1) {
			assert.Equal(t, "title", vErrs[0].Field())
		}
		assert.Zero(t, count(t, store, CollectionAcademicResearch))
	})

	t.Run("activity with week schedule", func(t *testing.T) {
		store := inmemdb.Open()
		svc, owner := setup(t, store)

		d := Draft{Category: CategoryStudyGroup}
		assert.NoError(t, d.SetField("title", "Estudo"))
		assert.NoError(t, d.SetField("phrase", "p"))
		assert.NoError(t, d.SetField("location", "L"))
		d.SetBanner("b.png")
		d.ToggleScheduleMode()
		assert.NoError(t, d.UpdateDayTimer("Mon", Timer{Hours: "10", Minute: "00"}))

		rcpt, err := svc.Submit(ctx, owner, d)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, CollectionActivityStudent, rcpt.Collection)

		docs, err := svc.ListByOwner(ctx, ShapeActivity, owner.ID)
		if !assert.NoError(t, err) || !assert.Len(t, docs, 1) {
			return
		}
		data := docs[0].Data
		assert.Nil(t, data["schedule"])
		assert.Contains(t, data, "schedule")
		assert.Equal(t, map[string]interface{}{"Mon": map[string]interface{}{"hour": "10", "minute": "00"}}, data["weekSchedule"])
		assert.Equal(t, "2", data["categoryId"])
		assert.Equal(t, true, data["isActivity"])
		assert.Equal(t, []interface{}{}, data["members"])
	})

	t.Run("course is resolved from the catalog", func(t *testing.T) {
		store := inmemdb.Open()
		courses := testutil.SeedCourses(t, store)
		svc, owner := setup(t, store)

		d := Draft{Category: CategoryAcademicResearch, Title: "IA", SearchArea: "ML", Course: course.Course{ID: courses[0].ID}}
		rcpt, err := svc.Submit(ctx, owner, d)
		if assert.NoError(t, err) {
			assert.Equal(t, courses[0].Name, rcpt.Document["course"])
		}

		d.Course = course.Course{ID: "lol"}
		_, err = svc.Submit(ctx, owner, d)
		vErr, ok := errors.Cause(err).(*core.ValidationError)
		if assert.True(t, ok, "got %v", err) {
			assert.Equal(t, "course", vErr.Fields[0].Field)
		}
		assert.Equal(t, 1, count(t, store, CollectionAcademicResearch))
	})

	t.Run("duplicate submissions are two records", func(t *testing.T) {
		store := inmemdb.Open()
		svc, owner := setup(t, store)
		d := Draft{Category: CategorySolidarity, Banner: "b", Description: "d"}

		r1, err1 := svc.Submit(ctx, owner, d)
		r2, err2 := svc.Submit(ctx, owner, d)
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.NotEqual(t, r1.ID, r2.ID)
		assert.Equal(t, 2, count(t, store, CollectionSolidarity))
	})

	t.Run("write failure is retryable", func(t *testing.T) {
		svc, owner := setup(t, failingStore{DocumentStore: inmemdb.Open(), err: errors.New("unavailable")})
		_, err := svc.Submit(ctx, owner, Draft{Category: CategorySolidarity, Banner: "b", Description: "d"})

		var sErr *core.StoreError
		if assert.True(t, errors.As(err, &sErr), "got %v", err) {
			assert.True(t, sErr.Retryable)
		}
	})

	t.Run("id conflict is not retryable", func(t *testing.T) {
		svc, owner := setup(t, failingStore{DocumentStore: inmemdb.Open(), err: core.ErrDocExists})
		_, err := svc.Submit(ctx, owner, Draft{Category: CategorySolidarity, Banner: "b", Description: "d"})

		var sErr *core.StoreError
		if assert.True(t, errors.As(err, &sErr), "got %v", err) {
			assert.False(t, sErr.Retryable)
		}
	})
}

func TestService_reads(t *testing.T) {
	ctx := context.Background()
	store := inmemdb.Open()
	svc, owner := setup(t, store)
	other := account.Profile{ID: "u2", Role: account.RoleTeacher}

	mine, err := svc.Submit(ctx, owner, Draft{Category: CategorySolidarity, Banner: "b", Description: "mine"})
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if _, err = svc.Submit(ctx, other, Draft{Category: CategorySolidarity, Banner: "b", Description: "theirs"}); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	docs, err := svc.ListByOwner(ctx, ShapeSolidarity, owner.ID)
	if assert.NoError(t, err) && assert.Len(t, docs, 1) {
		assert.Equal(t, mine.ID, docs[0].ID)
	}

	_, err = svc.Get(ctx, ShapeSolidarity, "unknown")
	assert.Equal(t, ErrNotFound, err)

	_, err = svc.Get(ctx, Shape(0), mine.ID)
	assert.Equal(t, ErrInvalidKind, err)

	_, err = svc.ListByOwner(ctx, Shape(0), owner.ID)
	assert.Equal(t, ErrInvalidKind, err)

	all, err := svc.List(ctx, ShapeSolidarity)
	if assert.NoError(t, err) {
		assert.Len(t, all, 2)
	}
	_, err = svc.List(ctx, Shape(0))
	assert.Equal(t, ErrInvalidKind, err)
}
