package dummydb

import (
	"context"
	"sort"

	"github.com/mergington/highschool/core/activity"
)

type activityRepository struct {
	db *activityTable
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *DB) activity.Repository {
	return &activityRepository{db: db.activity}
}

// clone detaches the stored document so callers cannot mutate the table.
func (repo *activityRepository) clone(act *activity.Activity) activity.Activity {
	cloned := *act
	cloned.ScheduleDetails.Days = append([]string(nil), act.ScheduleDetails.Days...)
	cloned.Participants = append([]string{}, act.Participants...)
	return cloned
}

func (repo *activityRepository) FilterActivities(ctx context.Context, filter activity.QueryFilter) ([]activity.Activity, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	acts := make([]activity.Activity, 0, len(repo.db.order))
	for _, name := range repo.db.order {
		act := repo.db.table[name]
		if act.Matches(filter) {
			acts = append(acts, repo.clone(act))
		}
	}
	return acts, nil
}

func (repo *activityRepository) ListDays(ctx context.Context) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	seen := make(map[string]bool)
	days := make([]string, 0)
	for _, act := range repo.db.table {
		for _, day := range act.ScheduleDetails.Days {
			if !seen[day] {
				seen[day] = true
				days = append(days, day)
			}
		}
	}
	sort.Strings(days)
	return days, nil
}

func (repo *activityRepository) GetActivityByName(ctx context.Context, name string) (activity.Activity, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if act, ok := repo.db.table[name]; ok {
		return repo.clone(act), nil
	}
	return activity.Activity{}, activity.ErrNotFound
}

func (repo *activityRepository) AddParticipant(ctx context.Context, name, email string) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	act, ok := repo.db.table[name]
	if !ok || act.HasParticipant(email) {
		return false, nil
	}
	act.Participants = append(act.Participants, email)
	return true, nil
}

func (repo *activityRepository) RemoveParticipant(ctx context.Context, name, email string) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	act, ok := repo.db.table[name]
	if !ok {
		return false, nil
	}
	for i, p := range act.Participants {
		if p == email {
			act.Participants = append(act.Participants[:i], act.Participants[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (repo *activityRepository) CreateActivity(ctx context.Context, act activity.Activity) (activity.Activity, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[act.Name]; !ok {
		repo.db.order = append(repo.db.order, act.Name)
	}
	cloned := repo.clone(&act)
	repo.db.table[act.Name] = &cloned
	return act, nil
}
