package announcement

import (
	"github.com/pkg/errors"

	"github.com/mergington/highschool/core"
)

var errStartAfterExpiration = errors.New("start date cannot be after expiration date")

// Announcement dates are plain `YYYY-MM-DD` strings, stored and returned
// verbatim so they round-trip bit-for-bit through partial updates.
type Announcement struct {
	ID             string `json:"id" db:"id"`
	Message        string `json:"message" db:"message"`
	ExpirationDate string `json:"expiration_date" db:"expiration_date"`
	StartDate      string `json:"start_date,omitempty" db:"start_date"`
}

// IsActive reports whether the announcement is visible at the given date,
// boundary-inclusive on both ends. An absent start date means "always
// started".
func (a Announcement) IsActive(today string) bool {
	if a.StartDate != "" && a.StartDate > today {
		return false
	}
	if a.ExpirationDate != "" && a.ExpirationDate < today {
		return false
	}
	return true
}

// NewAnnouncement contains information needed to create an Announcement.
type NewAnnouncement struct {
	Message        string `json:"message" query:"message" validate:"required"`
	ExpirationDate string `json:"expiration_date" query:"expiration_date" validate:"required,date_ymd"`
	StartDate      string `json:"start_date" query:"start_date" validate:"omitempty,date_ymd"`
}

func (na *NewAnnouncement) Validate() error {
	na.Message = core.CleanString(na.Message)
	na.ExpirationDate = core.CleanString(na.ExpirationDate)
	na.StartDate = core.CleanString(na.StartDate)

	if err := core.Validate.Struct(na); err != nil {
		return err
	}
	if na.StartDate != "" && na.StartDate > na.ExpirationDate {
		return core.NewValidationError(errStartAfterExpiration,
			core.FieldError{Field: "start_date", Error: errStartAfterExpiration.Error()})
	}
	return nil
}

// UpdateAnnouncement defines a partial update: nil fields are left untouched.
type UpdateAnnouncement struct {
	Message        *string `json:"message" query:"message"`
	ExpirationDate *string `json:"expiration_date" query:"expiration_date" validate:"omitempty,date_ymd"`
	StartDate      *string `json:"start_date" query:"start_date" validate:"omitempty,date_ymd"`
}

func (ua *UpdateAnnouncement) IsEmpty() bool {
	return ua.Message == nil && ua.ExpirationDate == nil && ua.StartDate == nil
}

// Validate checks the patch against the record it will be merged over: the
// *resulting* date pair must be a valid window.
func (ua *UpdateAnnouncement) Validate(orig Announcement) error {
	ua.clean()

	if err := core.Validate.Struct(ua); err != nil {
		return err
	}

	merged := ua.Apply(orig)
	if merged.StartDate != "" && merged.StartDate > merged.ExpirationDate {
		return core.NewValidationError(errStartAfterExpiration,
			core.FieldError{Field: "start_date", Error: errStartAfterExpiration.Error()})
	}
	return nil
}

// Apply merges the set fields over `orig` and returns the resulting record.
func (ua *UpdateAnnouncement) Apply(orig Announcement) Announcement {
	merged := orig
	if ua.Message != nil {
		merged.Message = *ua.Message
	}
	if ua.ExpirationDate != nil {
		merged.ExpirationDate = *ua.ExpirationDate
	}
	if ua.StartDate != nil {
		merged.StartDate = *ua.StartDate
	}
	return merged
}

// clean trims set fields; a blank field is treated as not provided.
func (ua *UpdateAnnouncement) clean() {
	ua.Message = cleanPtr(ua.Message, false)
	ua.ExpirationDate = cleanPtr(ua.ExpirationDate, false)
	ua.StartDate = cleanPtr(ua.StartDate, false)
}

func cleanPtr(s *string, lower bool) *string {
	if s == nil {
		return nil
	}
	cleaned := core.CleanString(*s, lower)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
