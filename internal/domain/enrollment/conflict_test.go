package enrollment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

func enrolled(code, section string, days []shared.Weekday, start, end string) EnrolledCourse {
	return EnrolledCourse{
		ID:          "id-" + code + "-" + section,
		Code:        code,
		Section:     section,
		Name:        code,
		Days:        days,
		StartTime:   start,
		EndTime:     end,
		CreditHours: 3,
	}
}

func TestDetectConflicts_EmptyEnrollment(t *testing.T) {
	result := DetectConflicts(Candidate{CourseCode: "DAA", Section: "BCS-5B"}, nil)

	assert.False(t, result.HasConflict)
	assert.Equal(t, ConflictNone, result.Type)
	assert.Empty(t, result.Conflicts)
}

func TestDetectConflicts_ExactDuplicate(t *testing.T) {
	courses := []EnrolledCourse{enrolled("DAA", "BCS-5B", nil, "", "")}

	result := DetectConflicts(Candidate{CourseCode: "DAA", Section: "BCS-5B"}, courses)

	assert.True(t, result.HasConflict)
	assert.Equal(t, ConflictExactDuplicate, result.Type)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0].Message, "already enrolled in DAA Section BCS-5B")
}

func TestDetectConflicts_DuplicateDifferentSection(t *testing.T) {
	courses := []EnrolledCourse{enrolled("DAA", "BCS-5B", nil, "", "")}

	result := DetectConflicts(Candidate{CourseCode: "DAA", Section: "BCS-5F"}, courses)

	assert.True(t, result.HasConflict)
	assert.Equal(t, ConflictDuplicate, result.Type)
	assert.Contains(t, result.Conflicts[0].Message, "will create a duplicate")
}

func TestDetectConflicts_TimeOverlap(t *testing.T) {
	courses := []EnrolledCourse{
		enrolled("DBS", "BCS-5B", []shared.Weekday{shared.Monday}, "09:30", "10:30"),
	}
	candidate := Candidate{
		CourseCode: "DAA",
		Section:    "BCS-5B",
		Days:       []shared.Weekday{shared.Monday},
		StartTime:  "09:00",
		EndTime:    "10:00",
	}

	result := DetectConflicts(candidate, courses)

	assert.True(t, result.HasConflict)
	assert.Equal(t, ConflictTime, result.Type)
	assert.Contains(t, result.Conflicts[0].Message, "Monday")
}

func TestDetectConflicts_TouchingIntervalsDoNotOverlap(t *testing.T) {
	courses := []EnrolledCourse{
		enrolled("DBS", "BCS-5B", []shared.Weekday{shared.Monday}, "09:30", "10:30"),
	}
	candidate := Candidate{
		CourseCode: "DAA",
		Section:    "BCS-5B",
		Days:       []shared.Weekday{shared.Monday},
		StartTime:  "10:30",
		EndTime:    "11:30",
	}

	result := DetectConflicts(candidate, courses)

	assert.False(t, result.HasConflict)
	assert.Equal(t, ConflictNone, result.Type)
}

func TestDetectConflicts_NoSharedDaysNoOverlap(t *testing.T) {
	courses := []EnrolledCourse{
		enrolled("DBS", "BCS-5B", []shared.Weekday{shared.Tuesday}, "09:00", "10:00"),
	}
	candidate := Candidate{
		CourseCode: "DAA",
		Section:    "BCS-5B",
		Days:       []shared.Weekday{shared.Monday},
		StartTime:  "09:00",
		EndTime:    "10:00",
	}

	assert.False(t, DetectConflicts(candidate, courses).HasConflict)
}

func TestDetectConflicts_MissingDaysOverlapsWithNothing(t *testing.T) {
	courses := []EnrolledCourse{
		enrolled("DBS", "BCS-5B", []shared.Weekday{shared.Monday}, "09:00", "10:00"),
	}
	candidate := Candidate{
		CourseCode: "DAA",
		Section:    "BCS-5B",
		StartTime:  "09:00",
		EndTime:    "10:00",
	}

	assert.False(t, DetectConflicts(candidate, courses).HasConflict)
}

func TestDetectConflicts_AccumulatesAcrossCourses(t *testing.T) {
	courses := []EnrolledCourse{
		enrolled("DAA", "BCS-5F", nil, "", ""),
		enrolled("DBS", "BCS-5B", []shared.Weekday{shared.Monday}, "09:00", "10:00"),
	}
	candidate := Candidate{
		CourseCode: "DAA",
		Section:    "BCS-5B",
		Days:       []shared.Weekday{shared.Monday},
		StartTime:  "09:30",
		EndTime:    "10:30",
	}

	result := DetectConflicts(candidate, courses)

	assert.True(t, result.HasConflict)
	// Type holds the last classification; the list carries both reasons.
	assert.Equal(t, ConflictTime, result.Type)
	assert.Len(t, result.Conflicts, 2)
}

func TestDetectConflicts_TwelveHourClockForms(t *testing.T) {
	courses := []EnrolledCourse{
		enrolled("DBS", "BCS-5B", []shared.Weekday{shared.Monday}, "1:00 PM", "2:00 PM"),
	}
	candidate := Candidate{
		CourseCode: "DAA",
		Section:    "BCS-5B",
		Days:       []shared.Weekday{shared.Monday},
		StartTime:  "13:30",
		EndTime:    "14:15",
	}

	result := DetectConflicts(candidate, courses)
	assert.Equal(t, ConflictTime, result.Type)
}

func TestFormatConflictMessage(t *testing.T) {
	tests := []struct {
		name   string
		result ConflictResult
		want   string
	}{
		{
			name:   "no conflict",
			result: ConflictResult{},
			want:   "",
		},
		{
			name: "exact duplicate",
			result: ConflictResult{
				HasConflict: true,
				Type:        ConflictExactDuplicate,
			},
			want: "This class is already in your courses.",
		},
		{
			name: "duplicate",
			result: ConflictResult{
				HasConflict: true,
				Type:        ConflictDuplicate,
				Conflicts: []Conflict{
					{Course: enrolled("DAA", "BCS-5F", nil, "", "")},
				},
			},
			want: "You're already enrolled in DAA Section BCS-5F. Do you want to switch sections?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatConflictMessage(tt.result))
		})
	}
}

func TestCheckWarnings_Overload(t *testing.T) {
	courses := []EnrolledCourse{
		enrolled("DAA", "BCS-5B", nil, "", ""),
		enrolled("DBS", "BCS-5B", nil, "", ""),
		enrolled("TOA", "BCS-5B", nil, "", ""),
		enrolled("SDA", "BCS-5B", nil, "", ""),
		enrolled("CN", "BCS-5B", nil, "", ""),
		enrolled("TBW", "BCS-5B", nil, "", ""),
	}
	candidate := Candidate{CourseCode: "OS", Section: "BCS-5B", CreditHours: 3}

	warnings := CheckWarnings(candidate, courses)

	assert.True(t, warnings.HasWarning)
	require.Len(t, warnings.Messages, 1)
	assert.Contains(t, warnings.Messages[0], "21 credit hours")
}

func TestCheckWarnings_ExactlyTwentyIsFine(t *testing.T) {
	courses := []EnrolledCourse{
		{Code: "DAA", Section: "BCS-5B", CreditHours: 17},
	}
	candidate := Candidate{CourseCode: "OS", Section: "BCS-5B", CreditHours: 3}

	assert.False(t, CheckWarnings(candidate, courses).HasWarning)
}

func TestCheckWarnings_BackToBack(t *testing.T) {
	courses := []EnrolledCourse{
		enrolled("DBS", "BCS-5B", []shared.Weekday{shared.Monday}, "10:30", "11:15"),
	}
	candidate := Candidate{
		CourseCode: "DAA",
		Section:    "BCS-5B",
		Days:       []shared.Weekday{shared.Monday},
		StartTime:  "09:45",
		EndTime:    "10:30",
	}

	warnings := CheckWarnings(candidate, courses)

	assert.True(t, warnings.HasWarning)
	assert.Contains(t, warnings.Messages[0], "Back-to-back class with DBS")
}

func TestCheckWarnings_WideGapNoWarning(t *testing.T) {
	courses := []EnrolledCourse{
		enrolled("DBS", "BCS-5B", []shared.Weekday{shared.Monday}, "13:30", "14:15"),
	}
	candidate := Candidate{
		CourseCode: "DAA",
		Section:    "BCS-5B",
		Days:       []shared.Weekday{shared.Monday},
		StartTime:  "09:00",
		EndTime:    "09:45",
	}

	assert.False(t, CheckWarnings(candidate, courses).HasWarning)
}
