package account

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/course"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound                = errors.New("account not found")
	ErrNotWaitingAuthorization = errors.New("account is not waiting for authorization")
	ErrUnknownCourse           = errors.New("unknown course")
)

const authorizationRequestText = `{{.DisplayName}} <{{.Email}}> asked to be registered as a teacher.

Department: {{.Department.String}}
Registration: {{.Registration.String}}
Course: {{.Course.String}}
Search area: {{.SearchArea.String}}

Approve with: admin approve -uid {{.ID}}
`

type (
	// SessionCache keeps profile snapshots close to the API so that they survive app restarts
	// without hitting the document store.
	SessionCache interface {
		GetProfile(ctx context.Context, uid string) (Profile, bool)
		SetProfile(ctx context.Context, p Profile) error
		DeleteProfile(ctx context.Context, uid string) error
	}

	Deps struct {
		Store      core.DocumentStore
		Cache      SessionCache
		Courses    *course.Service
		MailSvc    core.EmailService
		Moderators []mail.Address
		Validate   *validator.Validate
		Logger     core.Logger
	}

	Service struct {
		store      core.DocumentStore
		cache      SessionCache
		courses    *course.Service
		mailSvc    core.EmailService
		moderators []mail.Address
		validate   *validator.Validate
		logger     core.Logger
	}
)

func NewService(deps Deps) *Service {
	return &Service{
		store:      deps.Store,
		cache:      deps.Cache,
		courses:    deps.Courses,
		mailSvc:    deps.MailSvc,
		moderators: deps.Moderators,
		validate:   deps.Validate,
		logger:     deps.Logger,
	}
}

// Register creates or updates the profile of an authenticated user.
// Teachers are registered as RoleWaitingAuthorization until a moderator approves them.
func (svc *Service) Register(ctx context.Context, id Identity, np NewProfile) (Profile, error) {
	np.Clean()
	crs, err := svc.courses.Resolve(ctx, np.Course)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return Profile{}, core.NewValidationError(ErrUnknownCourse, core.FieldError{Field: "course", Error: ErrUnknownCourse.Error()})
		}
		return Profile{}, errors.Wrap(err, "resolving course")
	}
	np.Course = crs
	if err = np.Validate(svc.validate); err != nil {
		return Profile{}, err
	}

	now := NowFunc().UTC()
	prof := Profile{
		ID:           id.UID,
		DisplayName:  core.CleanString(id.DisplayName),
		Email:        core.CleanString(id.Email, true /* lower */),
		PhoneNumber:  nullString(np.PhoneNumber),
		Course:       nullString(np.Course.Name),
		Registration: nullString(np.Registration),
		Department:   nullString(np.Department),
		SearchArea:   nullString(np.SearchArea),
		PhotoURL:     nullString(id.PhotoURL),
		ProviderID:   id.ProviderID,
		Role:         RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if np.IsTeacher {
		prof.Role = RoleWaitingAuthorization
	}

	// re-registering keeps xp & creation date and never demotes or self-promotes
	orig, err := svc.get(ctx, id.UID)
	wasWaiting := err == nil && orig.IsWaitingAuthorization()
	switch {
	case err == nil:
		prof.XP = orig.XP
		prof.CreatedAt = orig.CreatedAt
		if orig.IsTeacher() || orig.IsAdmin() {
			prof.Role = orig.Role
		}
	case errors.Cause(err) != ErrNotFound:
		return Profile{}, errors.Wrap(err, "getting profile")
	}

	if err = svc.save(ctx, prof); err != nil {
		return Profile{}, err
	}
	if prof.IsWaitingAuthorization() && !wasWaiting {
		svc.requestAuthorization(prof)
	}
	return prof, nil
}

// Get returns the profile of the user, from the session cache when possible.
func (svc *Service) Get(ctx context.Context, uid string) (Profile, error) {
	if prof, ok := svc.cache.GetProfile(ctx, uid); ok {
		return prof, nil
	}
	prof, err := svc.get(ctx, uid)
	if err != nil {
		return Profile{}, err
	}
	if err = svc.cache.SetProfile(ctx, prof); err != nil {
		svc.logger.Warn(fmt.Sprintf("caching profile %s: %v", uid, err), err)
	}
	return prof, nil
}

// Approve grants the teacher role to an account waiting for authorization.
func (svc *Service) Approve(ctx context.Context, uid string) (Profile, error) {
	prof, err := svc.get(ctx, uid)
	if err != nil {
		return Profile{}, err
	}
	if !prof.IsWaitingAuthorization() {
		return Profile{}, ErrNotWaitingAuthorization
	}
	prof.Role = RoleTeacher
	prof.UpdatedAt = NowFunc().UTC()
	if err = svc.save(ctx, prof); err != nil {
		return Profile{}, err
	}
	return prof, nil
}

func (svc *Service) get(ctx context.Context, uid string) (Profile, error) {
	doc, err := svc.store.Get(ctx, Collection, uid)
	if err != nil {
		if errors.Cause(err) == core.ErrDocNotFound {
			return Profile{}, ErrNotFound
		}
		return Profile{}, errors.Wrap(err, "getting profile document")
	}
	var prof Profile
	if err = doc.Decode(&prof); err != nil {
		return Profile{}, errors.Wrap(err, "decoding profile")
	}
	prof.ID = doc.ID
	return prof, nil
}

func (svc *Service) save(ctx context.Context, prof Profile) error {
	data, err := core.EncodeDocument(prof)
	if err != nil {
		return errors.Wrap(err, "encoding profile")
	}
	if err = svc.store.Set(ctx, Collection, prof.ID, data); err != nil {
		return core.NewStoreError(errors.Wrap(err, "saving profile"), true)
	}
	if err = svc.cache.SetProfile(ctx, prof); err != nil {
		// a stale snapshot would outlive the write; drop it instead
		_ = svc.cache.DeleteProfile(ctx, prof.ID)
		svc.logger.Warn(fmt.Sprintf("caching profile %s: %v", prof.ID, err), err)
	}
	return nil
}

func (svc *Service) requestAuthorization(prof Profile) {
	if len(svc.moderators) == 0 {
		svc.logger.Warn(fmt.Sprintf("no moderator to approve teacher %s", prof.ID), prof)
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           svc.moderators,
		Subject:      "Teacher authorization request",
		TextTemplate: authorizationRequestText,
		Data:         prof,
	})
}
