// Package enrollment holds the student's enrolled-course model and the
// conflict engine that vets a candidate class against it. All checks are
// pure functions over immutable inputs; the package has zero external
// dependencies.
package enrollment

import (
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// EnrolledCourse is one course on the student's live enrollment list.
// The conflict engine treats it as read-only; it is produced by the
// enrollment store and the catalog picker.
type EnrolledCourse struct {
	// ID is the internal identifier (UUID in string form).
	ID string

	// Code is the short course code, e.g. "DAA".
	Code string

	// Section is the cohort identifier, e.g. "BCS-5B".
	Section string

	// Name is the resolved display name.
	Name string

	// Days are the weekdays the course meets on.
	Days []shared.Weekday

	// StartTime and EndTime bound the class meeting as clock strings
	// ("09:00", "9:00 AM"). The interval is half-open.
	StartTime string
	EndTime   string

	// CreditHours is the weekly session count from the catalog.
	CreditHours int

	// StartDate and EndDate bound the semester; they feed the
	// total-classes counter on the attendance side.
	StartDate time.Time
	EndDate   time.Time

	// InitialAbsences seeds the absence count for courses added
	// mid-semester.
	InitialAbsences int

	// AllowedAbsences is the per-course absence allowance. Zero means
	// "derive the default" (20% of adjusted total).
	AllowedAbsences int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Candidate is a class under consideration for enrollment, typically a
// catalog offering the student picked.
type Candidate struct {
	CourseCode  string
	Section     string
	Name        string
	Days        []shared.Weekday
	StartTime   string
	EndTime     string
	CreditHours int
}

// MeetsOn reports whether the course meets on the given weekday.
func (c EnrolledCourse) MeetsOn(day shared.Weekday) bool {
	for _, d := range c.Days {
		if d == day {
			return true
		}
	}
	return false
}

// TimeRange returns the course's meeting interval.
func (c EnrolledCourse) TimeRange() shared.TimeRange {
	return shared.TimeRange{Start: c.StartTime, End: c.EndTime}
}

// Validate checks the fields the engines rely on. Missing optional data
// (days, credit hours) is tolerated by the engines and not rejected here.
func (c EnrolledCourse) Validate() error {
	if c.Code == "" {
		return shared.NewDomainError("enrollment", "Validate", shared.ErrEmptyValue, "course code is required")
	}
	if c.Section == "" {
		return shared.NewDomainError("enrollment", "Validate", shared.ErrEmptyValue, "section is required")
	}
	for _, d := range c.Days {
		if !d.IsValid() {
			return shared.ErrInvalidWeekday
		}
	}
	if c.StartTime != "" && c.EndTime != "" && !c.TimeRange().IsOrdered() {
		return shared.ErrInvalidTimeRange
	}
	return nil
}
