// Package service contains infrastructure adapters that satisfy
// application-layer dependencies.
package service

import (
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/attendance"
	"github.com/campus-hub/campus-schedule-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEMESTER CALENDAR
// ══════════════════════════════════════════════════════════════════════════════

// SemesterCalendar counts scheduled class occurrences on the academic
// calendar. It backs the attendance engine's total-classes dependency.
type SemesterCalendar struct {
	// DefaultStart and DefaultEnd bound the current semester for courses
	// enrolled without explicit dates.
	DefaultStart time.Time
	DefaultEnd   time.Time
}

// NewSemesterCalendar creates a calendar with the given semester bounds.
func NewSemesterCalendar(start, end time.Time) *SemesterCalendar {
	return &SemesterCalendar{DefaultStart: start, DefaultEnd: end}
}

// TotalClasses counts how many sessions the course holds over its
// semester window: one per scheduled weekday occurrence, both endpoint
// days included. Courses without dates fall back to the calendar's
// defaults; a course with no weekdays has no countable sessions.
func (c *SemesterCalendar) TotalClasses(course attendance.Course) int {
	start, end := course.StartDate, course.EndDate
	if start.IsZero() {
		start = c.DefaultStart
	}
	if end.IsZero() {
		end = c.DefaultEnd
	}

	weekdays := make([]time.Weekday, 0, len(course.Weekdays))
	for _, d := range course.Weekdays {
		weekdays = append(weekdays, d.Number())
	}

	return timeutil.CountWeekdayOccurrences(start, end, weekdays)
}

// Calculator builds an attendance calculator backed by this calendar.
func (c *SemesterCalendar) Calculator() *attendance.Calculator {
	return attendance.NewCalculator(c.TotalClasses)
}
