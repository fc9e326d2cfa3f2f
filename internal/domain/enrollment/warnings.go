package enrollment

import (
	"fmt"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// Soft-warning thresholds. Warnings never block an add; they are
// advisory text only.
const (
	// MaxComfortableCredits is the credit-hour load above which an
	// overload warning fires.
	MaxComfortableCredits = 20

	// BackToBackGapMinutes is the minimum break between two classes on a
	// shared day before a back-to-back warning fires.
	BackToBackGapMinutes = 30
)

// Warnings collects advisory messages for a candidate add.
type Warnings struct {
	HasWarning bool     `json:"hasWarning"`
	Messages   []string `json:"messages"`
}

// CheckWarnings runs the soft checks, independent of DetectConflicts:
// total credit-hour overload and back-to-back classes with under 30
// minutes of break.
func CheckWarnings(candidate Candidate, enrolled []EnrolledCourse) Warnings {
	warnings := Warnings{Messages: []string{}}

	totalCredits := 0
	for _, c := range enrolled {
		totalCredits += c.CreditHours
	}
	newTotal := totalCredits + candidate.CreditHours

	if newTotal > MaxComfortableCredits {
		warnings.HasWarning = true
		warnings.Messages = append(warnings.Messages, fmt.Sprintf(
			"Adding this course will bring your total to %d credit hours. That's a heavy load!", newTotal))
	}

	for _, course := range enrolled {
		if isBackToBack(candidate, course) {
			warnings.HasWarning = true
			warnings.Messages = append(warnings.Messages, fmt.Sprintf(
				"Back-to-back class with %s. You'll have minimal break time.", course.Name))
		}
	}

	return warnings
}

// isBackToBack reports whether either ordering of the two classes leaves
// less than BackToBackGapMinutes between one's end and the other's start
// on a shared weekday.
func isBackToBack(candidate Candidate, course EnrolledCourse) bool {
	if len(overlappingDays(candidate.Days, course.Days)) == 0 {
		return false
	}

	end1 := shared.ClockMinutes(candidate.EndTime)
	start2 := shared.ClockMinutes(course.StartTime)
	end2 := shared.ClockMinutes(course.EndTime)
	start1 := shared.ClockMinutes(candidate.StartTime)

	return absInt(end1-start2) < BackToBackGapMinutes ||
		absInt(end2-start1) < BackToBackGapMinutes
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
