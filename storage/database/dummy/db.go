package dummydb

import (
	"sync"

	"github.com/mergington/highschool/core/activity"
	"github.com/mergington/highschool/core/announcement"
	"github.com/mergington/highschool/core/teacher"
)

type (
	DB struct {
		teacher      *teacherTable
		activity     *activityTable
		announcement *announcementTable
	}

	teacherTable struct {
		sync.RWMutex
		table map[string]*teacher.Teacher
	}

	activityTable struct {
		sync.RWMutex
		table map[string]*activity.Activity
		order []string // insertion order of keys
	}

	announcementTable struct {
		sync.RWMutex
		table map[string]*announcement.Announcement
		order []string
	}
)

func Open() (*DB, error) {
	db := &DB{
		teacher:      &teacherTable{table: make(map[string]*teacher.Teacher)},
		activity:     &activityTable{table: make(map[string]*activity.Activity)},
		announcement: &announcementTable{table: make(map[string]*announcement.Announcement)},
	}
	return db, nil
}
