// Package bootstrap populates the stores with the fixed initial dataset.
// Running it again on a populated deployment is a no-op.
package bootstrap

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/mergington/highschool/core"
	"github.com/mergington/highschool/core/activity"
	"github.com/mergington/highschool/core/announcement"
	"github.com/mergington/highschool/core/teacher"
)

type seedTeacher struct {
	username    string
	displayName string
	password    string // hashed before storage
}

var initialTeachers = []seedTeacher{
	{"ms_rodriguez", "Ms. Rodriguez", "SecurePass123"},
	{"mr_smith", "Mr. Smith", "TeacherPass456"},
}

var initialActivities = []activity.Activity{
	{
		Name:        "Chess Club",
		Description: "Learn strategies and compete in chess tournaments",
		Schedule:    "Mondays and Fridays, 3:15 PM - 4:45 PM",
		ScheduleDetails: activity.ScheduleDetails{
			Days: []string{"Monday", "Friday"}, StartTime: "15:15", EndTime: "16:45",
		},
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	},
	{
		Name:        "Programming Class",
		Description: "Learn programming fundamentals and build software projects",
		Schedule:    "Tuesdays and Thursdays, 7:00 AM - 8:00 AM",
		ScheduleDetails: activity.ScheduleDetails{
			Days: []string{"Tuesday", "Thursday"}, StartTime: "07:00", EndTime: "08:00",
		},
		MaxParticipants: 20,
		Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
	},
	{
		Name:        "Gym Class",
		Description: "Physical education and sports activities",
		Schedule:    "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
		ScheduleDetails: activity.ScheduleDetails{
			Days: []string{"Monday", "Wednesday", "Friday"}, StartTime: "14:00", EndTime: "15:00",
		},
		MaxParticipants: 30,
		Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
	},
	{
		Name:        "Soccer Team",
		Description: "Join the school soccer team and compete in matches",
		Schedule:    "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
		ScheduleDetails: activity.ScheduleDetails{
			Days: []string{"Tuesday", "Thursday"}, StartTime: "16:00", EndTime: "17:30",
		},
		MaxParticipants: 22,
		Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
	},
	{
		Name:        "Art Club",
		Description: "Explore various art techniques and create masterpieces",
		Schedule:    "Thursdays, 3:15 PM - 5:00 PM",
		ScheduleDetails: activity.ScheduleDetails{
			Days: []string{"Thursday"}, StartTime: "15:15", EndTime: "17:00",
		},
		MaxParticipants: 15,
		Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
	},
	{
		Name:        "Drama Club",
		Description: "Act, direct, and produce plays and performances",
		Schedule:    "Mondays and Wednesdays, 3:30 PM - 5:30 PM",
		ScheduleDetails: activity.ScheduleDetails{
			Days: []string{"Monday", "Wednesday"}, StartTime: "15:30", EndTime: "17:30",
		},
		MaxParticipants: 20,
		Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
	},
	{
		Name:        "Math Club",
		Description: "Solve challenging problems and prepare for math competitions",
		Schedule:    "Tuesdays, 7:15 AM - 8:00 AM",
		ScheduleDetails: activity.ScheduleDetails{
			Days: []string{"Tuesday"}, StartTime: "07:15", EndTime: "08:00",
		},
		MaxParticipants: 10,
		Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
	},
	{
		Name:        "Debate Team",
		Description: "Develop public speaking and argumentation skills",
		Schedule:    "Fridays, 3:30 PM - 5:30 PM",
		ScheduleDetails: activity.ScheduleDetails{
			Days: []string{"Friday"}, StartTime: "15:30", EndTime: "17:30",
		},
		MaxParticipants: 12,
		Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
	},
}

type Seeder struct {
	teachers      teacher.Repository
	activities    activity.Repository
	announcements announcement.Repository
	log           core.Logger
}

func NewSeeder(
	teachers teacher.Repository,
	activities activity.Repository,
	announcements announcement.Repository,
	log core.Logger,
) *Seeder {
	return &Seeder{
		teachers:      teachers,
		activities:    activities,
		announcements: announcements,
		log:           log,
	}
}

// Run seeds the three stores. Teachers and activities are inserted only where
// the key is still missing; announcements only when the store is empty.
func (s *Seeder) Run(ctx context.Context) error {
	var created int

	for _, st := range initialTeachers {
		if _, err := s.teachers.GetTeacherByUsername(ctx, st.username); err == nil {
			continue
		} else if !errors.Is(err, teacher.ErrNotFound) {
			return errors.Wrapf(err, "checking teacher %q", st.username)
		}

		tchr := teacher.Teacher{
			Username:    st.username,
			DisplayName: st.displayName,
			Role:        teacher.RoleTeacher,
		}
		if err := tchr.SetPassword(st.password); err != nil {
			return errors.Wrapf(err, "hashing password for %q", st.username)
		}
		if _, err := s.teachers.CreateTeacher(ctx, tchr); err != nil {
			return errors.Wrapf(err, "seeding teacher %q", st.username)
		}
		created++
	}

	for _, act := range initialActivities {
		if _, err := s.activities.GetActivityByName(ctx, act.Name); err == nil {
			continue
		} else if !errors.Is(err, activity.ErrNotFound) {
			return errors.Wrapf(err, "checking activity %q", act.Name)
		}
		if _, err := s.activities.CreateActivity(ctx, act); err != nil {
			return errors.Wrapf(err, "seeding activity %q", act.Name)
		}
		created++
	}

	anns, err := s.announcements.QueryAllAnnouncements(ctx)
	if err != nil {
		return errors.Wrap(err, "checking announcements")
	}
	if len(anns) == 0 {
		welcome := announcement.Announcement{
			Message:        "Welcome back! Activity signups for the new term are open.",
			ExpirationDate: time.Now().AddDate(0, 1, 0).Format(core.DateFormat),
		}
		if _, err := s.announcements.CreateAnnouncement(ctx, welcome); err != nil {
			return errors.Wrap(err, "seeding announcement")
		}
		created++
	}

	if s.log != nil {
		if created > 0 {
			s.log.Info("seeded initial data", map[string]interface{}{"created": created})
		} else {
			s.log.Debug("seed skipped, stores already populated")
		}
	}
	return nil
}
