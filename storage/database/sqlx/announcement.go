package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mergington/highschool/core/announcement"
)

type announcementRepository struct {
	db *sqlx.DB
}

var _ announcement.Repository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *sqlx.DB) announcement.Repository {
	return &announcementRepository{db: db}
}

// start_date NULL means "always started"; it surfaces as an empty string.
const announcementColumns = `id::text AS id, message, expiration_date, COALESCE(start_date, '') AS start_date`

func (repo *announcementRepository) QueryAllAnnouncements(ctx context.Context) ([]announcement.Announcement, error) {
	anns := make([]announcement.Announcement, 0)
	err := repo.db.SelectContext(ctx, &anns,
		`SELECT `+announcementColumns+` FROM announcement ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}
	return anns, nil
}

func (repo *announcementRepository) GetAnnouncementByID(ctx context.Context, id string) (announcement.Announcement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return announcement.Announcement{}, announcement.ErrNotFound
	}

	var ann announcement.Announcement
	err := repo.db.GetContext(ctx, &ann,
		`SELECT `+announcementColumns+` FROM announcement WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return announcement.Announcement{}, announcement.ErrNotFound
		}
		return announcement.Announcement{}, errors.Wrap(err, "getting announcement")
	}
	return ann, nil
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	ann.ID = uuid.NewString()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO announcement (id, message, expiration_date, start_date)
		 VALUES ($1, $2, $3, NULLIF($4, ''))`,
		ann.ID, ann.Message, ann.ExpirationDate, ann.StartDate)
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "creating announcement")
	}
	return ann, nil
}

func (repo *announcementRepository) UpdateAnnouncement(ctx context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	if _, err := uuid.Parse(ann.ID); err != nil {
		return announcement.Announcement{}, announcement.ErrNotFound
	}

	res, err := repo.db.ExecContext(ctx,
		`UPDATE announcement
		    SET message = $2, expiration_date = $3, start_date = NULLIF($4, '')
		  WHERE id = $1`,
		ann.ID, ann.Message, ann.ExpirationDate, ann.StartDate)
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "updating announcement")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "updating announcement")
	}
	if n == 0 {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	return ann, nil
}

func (repo *announcementRepository) DeleteAnnouncement(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return announcement.ErrNotFound
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM announcement WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	if n == 0 {
		return announcement.ErrNotFound
	}
	return nil
}
