// Package attendance computes absence accounting for enrolled courses:
// adjusted totals, percentages, remaining allowances and risk status,
// plus pure what-if simulation of planned absences. Everything here is a
// side-effect-free function over immutable inputs; the caller supplies a
// stable snapshot of the records list for the duration of one
// computation. The package has zero external dependencies.
package attendance

import (
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// Status is the outcome recorded for one course session on one date.
type Status string

const (
	// StatusPresent means the student attended.
	StatusPresent Status = "present"

	// StatusAbsent means the student missed the session.
	StatusAbsent Status = "absent"

	// StatusCancelled means the session did not happen; it counts
	// neither for nor against attendance.
	StatusCancelled Status = "cancelled"

	// StatusProxy means someone marked the student present on their
	// behalf. Tracked for honesty, treated as attended.
	StatusProxy Status = "proxy"
)

// IsValid checks that the status is one of the four recorded outcomes.
func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusCancelled, StatusProxy:
		return true
	default:
		return false
	}
}

// DateLayout is the ISO date format used on records ("2006-01-02").
const DateLayout = "2006-01-02"

// Record is one attendance event for one course on one date. At most one
// record per (CourseID, Date) is meaningful; avoiding duplicates is the
// writer's responsibility.
type Record struct {
	// ID is the internal identifier (UUID in string form).
	ID string `json:"id"`

	// CourseID references the enrolled course.
	CourseID string `json:"courseId"`

	// Date is the session date in ISO form.
	Date string `json:"date"`

	// Status is the recorded outcome.
	Status Status `json:"status"`

	// Planned marks synthetic records created by simulation; they are
	// never persisted.
	Planned bool `json:"planned,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Validate checks record invariants before persistence.
func (r Record) Validate() error {
	if r.CourseID == "" {
		return shared.NewDomainError("attendance", "Validate", shared.ErrEmptyValue, "course ID is required")
	}
	if !r.Status.IsValid() {
		return shared.ErrInvalidStatus
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return shared.ErrInvalidDate
	}
	return nil
}

// Course is the attendance engine's view of an enrolled course: identity,
// schedule shape for the total-classes counter, and the absence
// allowances.
type Course struct {
	ID   string
	Name string

	// Weekdays the course meets on; drives the scheduled-occurrence
	// count between StartDate and EndDate.
	Weekdays []shared.Weekday

	// StartDate and EndDate bound the semester, inclusive.
	StartDate time.Time
	EndDate   time.Time

	// InitialAbsences seeds the count for courses added mid-semester.
	InitialAbsences int

	// AllowedAbsences is the explicit per-course allowance; zero means
	// "derive the default" via Allowance.
	AllowedAbsences int
}

// DefaultAllowedAbsenceRate is the share of sessions a student may miss
// when a course sets no explicit allowance.
const DefaultAllowedAbsenceRate = 0.2

// Allowance returns the effective absence allowance for the course: the
// explicit value when set, otherwise 20% of the adjusted session total.
func (c Course) Allowance(adjustedTotal int) int {
	if c.AllowedAbsences > 0 {
		return c.AllowedAbsences
	}
	if adjustedTotal <= 0 {
		return 0
	}
	return int(DefaultAllowedAbsenceRate * float64(adjustedTotal))
}

// MeetsOn reports whether the course is scheduled on the given weekday.
func (c Course) MeetsOn(day time.Weekday) bool {
	for _, d := range c.Weekdays {
		if d.Number() == day {
			return true
		}
	}
	return false
}
