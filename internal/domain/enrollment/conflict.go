package enrollment

import (
	"fmt"
	"strings"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ConflictType classifies the outcome of a conflict check.
type ConflictType string

const (
	// ConflictNone means the candidate is clear to add.
	ConflictNone ConflictType = "none"

	// ConflictDuplicate means the same course is enrolled under a
	// different section (a switch-section prompt, not a hard block).
	ConflictDuplicate ConflictType = "duplicate"

	// ConflictExactDuplicate means the identical (code, section) pair is
	// already enrolled.
	ConflictExactDuplicate ConflictType = "exact_duplicate"

	// ConflictTime means the candidate's meeting interval overlaps an
	// enrolled course on at least one shared weekday.
	ConflictTime ConflictType = "time_conflict"
)

// Conflict names one enrolled course the candidate clashes with.
type Conflict struct {
	Course  EnrolledCourse `json:"course"`
	Message string         `json:"message"`
}

// ConflictResult is produced fresh per check and never persisted.
// Type reflects the last classification set; Conflicts accumulates every
// matching reason across all enrolled courses, so callers needing the
// most severe reason must inspect the list rather than Type alone.
type ConflictResult struct {
	HasConflict bool         `json:"hasConflict"`
	Type        ConflictType `json:"type"`
	Conflicts   []Conflict   `json:"conflicts"`
}

// DetectConflicts classifies a candidate class against the enrollment
// list. Identity and time-overlap rules run independently, so one check
// may record both a duplicate and a time conflict against different
// courses.
func DetectConflicts(candidate Candidate, enrolled []EnrolledCourse) ConflictResult {
	result := ConflictResult{Type: ConflictNone, Conflicts: []Conflict{}}
	if len(enrolled) == 0 {
		return result
	}

	for _, course := range enrolled {
		if course.Code == candidate.CourseCode {
			if course.Section != candidate.Section {
				result.HasConflict = true
				result.Type = ConflictDuplicate
				result.Conflicts = append(result.Conflicts, Conflict{
					Course: course,
					Message: fmt.Sprintf(
						"You're already enrolled in %s Section %s. Adding Section %s will create a duplicate.",
						candidate.CourseCode, course.Section, candidate.Section),
				})
			} else {
				result.HasConflict = true
				result.Type = ConflictExactDuplicate
				result.Conflicts = append(result.Conflicts, Conflict{
					Course: course,
					Message: fmt.Sprintf(
						"You're already enrolled in %s Section %s.",
						candidate.CourseCode, candidate.Section),
				})
			}
		}

		if overlapping := overlappingDays(candidate.Days, course.Days); len(overlapping) > 0 &&
			timeRangesOverlap(candidate.StartTime, candidate.EndTime, course.StartTime, course.EndTime) {
			result.HasConflict = true
			result.Type = ConflictTime
			result.Conflicts = append(result.Conflicts, Conflict{
				Course: course,
				Message: fmt.Sprintf("Time conflict with %s (%s) on %s",
					course.Name, course.Code, joinDays(overlapping)),
			})
		}
	}

	return result
}

// overlappingDays returns the weekdays shared by both lists. A class with
// no days overlaps with nothing.
func overlappingDays(a, b []shared.Weekday) []shared.Weekday {
	return shared.IntersectWeekdays(a, b)
}

// timeRangesOverlap applies the half-open interval test on
// minutes-since-midnight: back-to-back classes with an equal boundary do
// not overlap.
func timeRangesOverlap(start1, end1, start2, end2 string) bool {
	s1, e1 := shared.ClockMinutes(start1), shared.ClockMinutes(end1)
	s2, e2 := shared.ClockMinutes(start2), shared.ClockMinutes(end2)
	return s1 < e2 && s2 < e1
}

func joinDays(days []shared.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}

// FormatConflictMessage renders a user-facing prompt for a conflict
// result, matching the wording the presentation layer expects.
func FormatConflictMessage(result ConflictResult) string {
	if !result.HasConflict {
		return ""
	}

	switch result.Type {
	case ConflictExactDuplicate:
		return "This class is already in your courses."
	case ConflictDuplicate:
		if len(result.Conflicts) > 0 {
			c := result.Conflicts[0].Course
			return fmt.Sprintf(
				"You're already enrolled in %s Section %s. Do you want to switch sections?",
				c.Code, c.Section)
		}
	case ConflictTime:
		names := make([]string, 0, len(result.Conflicts))
		for _, c := range result.Conflicts {
			names = append(names, c.Course.Name)
		}
		return fmt.Sprintf("This class conflicts with: %s. Do you still want to add it?",
			strings.Join(names, ", "))
	}

	return "Conflict detected. Do you want to proceed?"
}
