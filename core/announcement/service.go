package announcement

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mergington/highschool/core"
)

var (
	// errors
	ErrNotFound    = errors.New("announcement not found")
	ErrEmptyUpdate = errors.New("at least one field (message, expiration_date, or start_date) must be provided")
)

type (
	Repository interface {
		// QueryAllAnnouncements returns every announcement in a stable order.
		QueryAllAnnouncements(ctx context.Context) ([]Announcement, error)
		GetAnnouncementByID(ctx context.Context, id string) (Announcement, error)
		// CreateAnnouncement persists the record and assigns its opaque id.
		CreateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		UpdateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		DeleteAnnouncement(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
		auth core.Authorizer
	}
)

func NewService(repo Repository, auth core.Authorizer) *Service {
	return &Service{repo: repo, auth: auth}
}

// List returns announcements; with activeOnly it keeps only those whose
// window covers the current date.
func (svc *Service) List(ctx context.Context, activeOnly bool) ([]Announcement, error) {
	anns, err := svc.repo.QueryAllAnnouncements(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		if anns == nil {
			anns = []Announcement{}
		}
		return anns, nil
	}

	today := core.Today()
	active := make([]Announcement, 0, len(anns))
	for _, ann := range anns {
		if ann.IsActive(today) {
			active = append(active, ann)
		}
	}
	return active, nil
}

func (svc *Service) Create(ctx context.Context, na NewAnnouncement, caller string) (Announcement, error) {
	if err := svc.auth.Authorize(ctx, caller); err != nil {
		return Announcement{}, err
	}
	if err := na.Validate(); err != nil {
		return Announcement{}, err
	}
	return svc.repo.CreateAnnouncement(ctx, Announcement{
		Message:        na.Message,
		ExpirationDate: na.ExpirationDate,
		StartDate:      na.StartDate,
	})
}

// Update applies a partial patch; fields absent from the patch are preserved
// exactly as stored.
func (svc *Service) Update(ctx context.Context, id string, ua UpdateAnnouncement, caller string) (Announcement, error) {
	if err := svc.auth.Authorize(ctx, caller); err != nil {
		return Announcement{}, err
	}
	if ua.IsEmpty() {
		return Announcement{}, ErrEmptyUpdate
	}

	orig, err := svc.repo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return Announcement{}, err
	}
	if err := ua.Validate(orig); err != nil {
		return Announcement{}, err
	}
	return svc.repo.UpdateAnnouncement(ctx, ua.Apply(orig))
}

func (svc *Service) Delete(ctx context.Context, id, caller string) error {
	if err := svc.auth.Authorize(ctx, caller); err != nil {
		return err
	}
	return svc.repo.DeleteAnnouncement(ctx, id)
}
