package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mergington/highschool/core/activity"
)

type activityRepository struct {
	db *sqlx.DB
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *sqlx.DB) activity.Repository {
	return &activityRepository{db: db}
}

const activityColumns = `name, description, schedule, days, start_time, end_time, max_participants, participants`

type activityRow struct {
	Name            string         `db:"name"`
	Description     string         `db:"description"`
	Schedule        string         `db:"schedule"`
	Days            pq.StringArray `db:"days"`
	StartTime       string         `db:"start_time"`
	EndTime         string         `db:"end_time"`
	MaxParticipants int            `db:"max_participants"`
	Participants    pq.StringArray `db:"participants"`
}

func (row activityRow) toActivity() activity.Activity {
	return activity.Activity{
		Name:        row.Name,
		Description: row.Description,
		Schedule:    row.Schedule,
		ScheduleDetails: activity.ScheduleDetails{
			Days:      []string(row.Days),
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		},
		MaxParticipants: row.MaxParticipants,
		Participants:    []string(row.Participants),
	}
}

func (repo *activityRepository) FilterActivities(ctx context.Context, filter activity.QueryFilter) ([]activity.Activity, error) {
	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Day != "" {
		conds = append(conds, arg(filter.Day)+" = ANY(days)")
	}
	if filter.StartTime != "" {
		// zero-padded HH:MM strings order chronologically as text
		conds = append(conds, "start_time >= "+arg(filter.StartTime))
	}
	if filter.EndTime != "" {
		conds = append(conds, "end_time <= "+arg(filter.EndTime))
	}

	query := `SELECT ` + activityColumns + ` FROM activity`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"

	rows := make([]activityRow, 0)
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering activities")
	}

	acts := make([]activity.Activity, 0, len(rows))
	for _, row := range rows {
		acts = append(acts, row.toActivity())
	}
	return acts, nil
}

func (repo *activityRepository) ListDays(ctx context.Context) ([]string, error) {
	days := make([]string, 0)
	err := repo.db.SelectContext(ctx, &days,
		`SELECT DISTINCT unnest(days) AS day FROM activity ORDER BY day`)
	if err != nil {
		return nil, errors.Wrap(err, "listing days")
	}
	return days, nil
}

func (repo *activityRepository) GetActivityByName(ctx context.Context, name string) (activity.Activity, error) {
	var row activityRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+activityColumns+` FROM activity WHERE name = $1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return activity.Activity{}, activity.ErrNotFound
		}
		return activity.Activity{}, errors.Wrap(err, "getting activity")
	}
	return row.toActivity(), nil
}

// AddParticipant is a single guarded UPDATE: the membership check lives in the
// WHERE clause so concurrent signups for the same activity cannot both append.
func (repo *activityRepository) AddParticipant(ctx context.Context, name, email string) (bool, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE activity
		    SET participants = array_append(participants, $2)
		  WHERE name = $1 AND NOT (participants @> ARRAY[$2]::text[])`,
		name, email)
	if err != nil {
		return false, errors.Wrap(err, "adding participant")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "adding participant")
	}
	return n > 0, nil
}

func (repo *activityRepository) RemoveParticipant(ctx context.Context, name, email string) (bool, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE activity
		    SET participants = array_remove(participants, $2)
		  WHERE name = $1 AND participants @> ARRAY[$2]::text[]`,
		name, email)
	if err != nil {
		return false, errors.Wrap(err, "removing participant")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "removing participant")
	}
	return n > 0, nil
}

func (repo *activityRepository) CreateActivity(ctx context.Context, act activity.Activity) (activity.Activity, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO activity (`+activityColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		act.Name, act.Description, act.Schedule,
		pq.Array(act.ScheduleDetails.Days), act.ScheduleDetails.StartTime, act.ScheduleDetails.EndTime,
		act.MaxParticipants, pq.Array(act.Participants))
	if err != nil {
		return activity.Activity{}, errors.Wrap(err, "creating activity")
	}
	return act, nil
}
