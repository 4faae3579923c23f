package activity

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mergington/highschool/core"
)

var (
	// errors
	ErrNotFound        = errors.New("activity not found")
	ErrAlreadySignedUp = errors.New("already signed up for this activity")
	ErrNotRegistered   = errors.New("not registered for this activity")
	// ErrNothingUpdated surfaces a store-level anomaly: the mutation matched
	// nothing even though the preconditions held. Never swallowed.
	ErrNothingUpdated = errors.New("failed to update activity")
)

type (
	Repository interface {
		// FilterActivities applies AND operation on available QueryFilter fields.
		FilterActivities(ctx context.Context, filter QueryFilter) ([]Activity, error)
		// ListDays returns the distinct weekday names across all activities,
		// sorted alphabetically.
		ListDays(ctx context.Context) ([]string, error)
		GetActivityByName(ctx context.Context, name string) (Activity, error)
		// AddParticipant appends email to the roster as a single atomic
		// set-membership mutation; it reports false when no document changed.
		AddParticipant(ctx context.Context, name, email string) (bool, error)
		// RemoveParticipant is the atomic counterpart of AddParticipant.
		RemoveParticipant(ctx context.Context, name, email string) (bool, error)
		CreateActivity(ctx context.Context, act Activity) (Activity, error)
	}

	Service struct {
		repo Repository
		auth core.Authorizer
	}
)

func NewService(repo Repository, auth core.Authorizer) *Service {
	return &Service{repo: repo, auth: auth}
}

// Filter returns matching activities keyed by name; no matches is an empty
// map, not an error.
func (svc *Service) Filter(ctx context.Context, qf QueryFilter) (map[string]Activity, error) {
	qf.Clean()
	acts, err := svc.repo.FilterActivities(ctx, qf)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]Activity, len(acts))
	for _, act := range acts {
		byName[act.Name] = act
	}
	return byName, nil
}

func (svc *Service) Days(ctx context.Context) ([]string, error) {
	days, err := svc.repo.ListDays(ctx)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []string{}
	}
	return days, nil
}

// Signup adds a student email to an activity roster.
// The failure ladder is fixed: email format, then caller identity, then
// activity existence, then duplicate membership.
func (svc *Service) Signup(ctx context.Context, name, email, caller string) (Activity, error) {
	if err := ValidateEmail(email); err != nil {
		return Activity{}, err
	}
	if err := svc.auth.Authorize(ctx, caller); err != nil {
		return Activity{}, err
	}

	act, err := svc.repo.GetActivityByName(ctx, name)
	if err != nil {
		return Activity{}, err
	}
	if act.HasParticipant(email) {
		return Activity{}, ErrAlreadySignedUp
	}

	changed, err := svc.repo.AddParticipant(ctx, act.Name, email)
	if err != nil {
		return Activity{}, errors.Wrap(err, "adding participant")
	}
	if !changed {
		return Activity{}, ErrNothingUpdated
	}
	return act, nil
}

// Unregister removes a student email from an activity roster. It backs both
// the signup cancellation and unregister endpoints.
func (svc *Service) Unregister(ctx context.Context, name, email, caller string) (Activity, error) {
	if err := ValidateEmail(email); err != nil {
		return Activity{}, err
	}
	if err := svc.auth.Authorize(ctx, caller); err != nil {
		return Activity{}, err
	}

	act, err := svc.repo.GetActivityByName(ctx, name)
	if err != nil {
		return Activity{}, err
	}
	if !act.HasParticipant(email) {
		return Activity{}, ErrNotRegistered
	}

	changed, err := svc.repo.RemoveParticipant(ctx, act.Name, email)
	if err != nil {
		return Activity{}, errors.Wrap(err, "removing participant")
	}
	if !changed {
		return Activity{}, ErrNothingUpdated
	}
	return act, nil
}
