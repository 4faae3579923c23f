package activity

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/mergington/highschool/core"
)

// simplified RFC 5322; zero-padded HH:MM times compare lexicographically
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var errInvalidEmail = errors.New("invalid email format")

type (
	ScheduleDetails struct {
		Days      []string `json:"days"`
		StartTime string   `json:"start_time" db:"start_time"`
		EndTime   string   `json:"end_time" db:"end_time"`
	}

	// Activity is keyed by its human-readable name; the name is serialized as
	// the map key in listings, never as a document field.
	Activity struct {
		Name            string          `json:"-" db:"name"`
		Description     string          `json:"description" db:"description"`
		Schedule        string          `json:"schedule" db:"schedule"`
		ScheduleDetails ScheduleDetails `json:"schedule_details"`
		// MaxParticipants is advisory metadata; it is not enforced as a
		// capacity ceiling anywhere.
		MaxParticipants int      `json:"max_participants" db:"max_participants"`
		Participants    []string `json:"participants"`
	}
)

func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

func (a Activity) OccursOn(day string) bool {
	for _, d := range a.ScheduleDetails.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Matches reports whether the activity satisfies every set filter field.
func (a Activity) Matches(qf QueryFilter) bool {
	if qf.Day != "" && !a.OccursOn(qf.Day) {
		return false
	}
	if qf.StartTime != "" && a.ScheduleDetails.StartTime < qf.StartTime {
		return false
	}
	if qf.EndTime != "" && a.ScheduleDetails.EndTime > qf.EndTime {
		return false
	}
	return true
}

// QueryFilter narrows activity listings; fields are ANDed together.
type QueryFilter struct {
	Day       string `query:"day"`
	StartTime string `query:"start_time"`
	EndTime   string `query:"end_time"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Day == "" && qf.StartTime == "" && qf.EndTime == ""
}

func (qf *QueryFilter) Clean() {
	qf.Day = core.CleanString(qf.Day)
	qf.StartTime = core.CleanString(qf.StartTime)
	qf.EndTime = core.CleanString(qf.EndTime)
}

// ValidateEmail rejects emails that could smuggle query operators into the
// store; rejected before the caller identity is even looked at.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return core.NewValidationError(errInvalidEmail, core.FieldError{Field: "email", Error: errInvalidEmail.Error()})
	}
	return nil
}
