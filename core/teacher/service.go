package teacher

import (
	"context"
	"errors"

	"github.com/mergington/highschool/core"
)

var (
	// errors
	ErrNotFound               = errors.New("teacher not found")
	ErrAuthenticationRequired = errors.New("authentication required for this action")
	ErrUnknownTeacher         = errors.New("invalid teacher credentials")
	ErrInvalidCredentials     = errors.New("invalid username or password")
)

type (
	Repository interface {
		GetTeacherByUsername(ctx context.Context, username string) (Teacher, error)
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		CreateTeacher(ctx context.Context, t Teacher) (Teacher, error)
	}

	Service struct {
		repo Repository
	}
)

var _ core.Authorizer = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (Teacher, error) {
	return svc.repo.GetTeacherByUsername(ctx, core.CleanString(uname, true /* lower */))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx)
}

// Authenticate checks a username/password pair. Unknown usernames and wrong
// passwords fail with the same error so callers cannot probe for accounts.
func (svc *Service) Authenticate(ctx context.Context, uname, pwd string) (Teacher, error) {
	tchr, err := svc.GetByUsername(ctx, uname)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Teacher{}, ErrInvalidCredentials
		}
		return Teacher{}, err
	}
	if !tchr.CheckPassword(pwd) {
		return Teacher{}, ErrInvalidCredentials
	}
	return tchr, nil
}

// Authorize gates every mutating operation: the caller-supplied username must
// belong to a known teacher.
//
// This accepts a bare, unsigned username as proof of identity — no session
// token, no re-checked password. Kept for endpoint compatibility; see the
// auth section of the README before exposing this service publicly.
func (svc *Service) Authorize(ctx context.Context, uname string) error {
	uname = core.CleanString(uname, true /* lower */)
	if uname == "" {
		return ErrAuthenticationRequired
	}
	if _, err := svc.repo.GetTeacherByUsername(ctx, uname); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnknownTeacher
		}
		return err
	}
	return nil
}
