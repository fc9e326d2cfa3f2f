package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// fixedTotal returns a TotalClassesFunc that ignores the course and
// reports a constant.
func fixedTotal(n int) TotalClassesFunc {
	return func(Course) int { return n }
}

func absences(courseID string, dates ...string) []Record {
	records := make([]Record, 0, len(dates))
	for _, d := range dates {
		records = append(records, Record{CourseID: courseID, Date: d, Status: StatusAbsent})
	}
	return records
}

func TestStats_Basic(t *testing.T) {
	course := Course{ID: "c1", InitialAbsences: 1, AllowedAbsences: 8}
	records := append(
		absences("c1", "2026-02-02", "2026-02-09", "2026-02-16"),
		Record{CourseID: "c1", Date: "2026-02-23", Status: StatusCancelled},
		Record{CourseID: "c1", Date: "2026-03-02", Status: StatusCancelled},
		Record{CourseID: "c1", Date: "2026-03-09", Status: StatusPresent},
	)

	stats := NewCalculator(fixedTotal(30)).Stats(course, records)

	assert.Equal(t, 30, stats.TotalClasses)
	assert.Equal(t, 28, stats.AdjustedTotal)
	assert.Equal(t, 4, stats.Absences)
	assert.Equal(t, 24, stats.Attended)
	assert.Equal(t, 2, stats.Cancelled)
	assert.InDelta(t, 85.71, stats.Percentage, 0.001)
	assert.Equal(t, RiskSafe, stats.Status)
	assert.True(t, stats.IsSafe)
	assert.False(t, stats.IsAtRisk)
	assert.Equal(t, 4, stats.RemainingAbsences)
	assert.False(t, stats.OverAbsent)
}

func TestStats_IgnoresOtherCourses(t *testing.T) {
	course := Course{ID: "c1", AllowedAbsences: 5}
	records := absences("c2", "2026-02-02", "2026-02-09")

	stats := NewCalculator(fixedTotal(10)).Stats(course, records)

	assert.Equal(t, 0, stats.Absences)
	assert.InDelta(t, 100.0, stats.Percentage, 0.001)
}

func TestStats_ProxyCountsAsAttended(t *testing.T) {
	course := Course{ID: "c1", AllowedAbsences: 5}
	records := []Record{{CourseID: "c1", Date: "2026-02-02", Status: StatusProxy}}

	stats := NewCalculator(fixedTotal(10)).Stats(course, records)

	assert.Equal(t, 0, stats.Absences)
	assert.Equal(t, 10, stats.Attended)
}

func TestStats_ZeroAdjustedTotalIsVacuouslyFull(t *testing.T) {
	course := Course{ID: "c1"}

	stats := NewCalculator(fixedTotal(0)).Stats(course, nil)

	assert.Equal(t, 0, stats.AdjustedTotal)
	assert.InDelta(t, 100.0, stats.Percentage, 0.001)
	assert.Equal(t, RiskSafe, stats.Status)
}

func TestStats_OverAbsenceKeepsNegativeSignal(t *testing.T) {
	course := Course{ID: "c1", InitialAbsences: 4, AllowedAbsences: 2}
	records := absences("c1", "2026-02-02", "2026-02-09")

	stats := NewCalculator(fixedTotal(4)).Stats(course, records)

	assert.Equal(t, -2, stats.Attended)
	assert.True(t, stats.OverAbsent)
	assert.True(t, stats.IsAtRisk)
	assert.Equal(t, RiskDanger, stats.Status)
	assert.Equal(t, 0, stats.RemainingAbsences)
	assert.Less(t, stats.Percentage, 0.0)
}

func TestStats_WarningBand(t *testing.T) {
	// 33 attended out of 40 = 82.5%: warning but not at-risk.
	course := Course{ID: "c1", InitialAbsences: 7, AllowedAbsences: 10}

	stats := NewCalculator(fixedTotal(40)).Stats(course, nil)

	assert.InDelta(t, 82.5, stats.Percentage, 0.001)
	assert.Equal(t, RiskWarning, stats.Status)
	assert.False(t, stats.IsSafe)
	assert.False(t, stats.IsAtRisk)
}

func TestStats_DefaultAllowanceIsTwentyPercent(t *testing.T) {
	course := Course{ID: "c1"} // no explicit allowance
	records := absences("c1", "2026-02-02", "2026-02-09")

	stats := NewCalculator(fixedTotal(30)).Stats(course, records)

	// 20% of 30 = 6 allowed, 2 used.
	assert.Equal(t, 4, stats.RemainingAbsences)
}

func TestStats_Idempotent(t *testing.T) {
	course := Course{ID: "c1", InitialAbsences: 1, AllowedAbsences: 8}
	records := absences("c1", "2026-02-02", "2026-02-09")
	calc := NewCalculator(fixedTotal(30))

	first := calc.Stats(course, records)
	second := calc.Stats(course, records)

	assert.Equal(t, first, second)
}

func TestSimulate_DoesNotMutateRecords(t *testing.T) {
	course := Course{ID: "c1", AllowedAbsences: 8}
	records := absences("c1", "2026-02-02")
	snapshot := make([]Record, len(records))
	copy(snapshot, records)

	calc := NewCalculator(fixedTotal(30))
	simulated := calc.Simulate(course, records, []string{"2026-03-02", "2026-03-09"})

	assert.Equal(t, 3, simulated.Absences)
	assert.Len(t, records, 1)
	assert.Equal(t, snapshot, records)
}

func TestSimulate_MatchesStatsWithSyntheticAbsences(t *testing.T) {
	course := Course{ID: "c1", AllowedAbsences: 8}
	calc := NewCalculator(fixedTotal(30))

	simulated := calc.Simulate(course, nil, []string{"2026-03-02"})
	direct := calc.Stats(course, absences("c1", "2026-03-02"))

	assert.Equal(t, direct.Percentage, simulated.Percentage)
	assert.Equal(t, direct.Absences, simulated.Absences)
}

func TestSummaryStats(t *testing.T) {
	courses := []Course{
		{ID: "c1", AllowedAbsences: 8},                     // 100%, safe
		{ID: "c2", InitialAbsences: 7, AllowedAbsences: 8}, // 76.67%, danger
	}

	summary := NewCalculator(fixedTotal(30)).SummaryStats(courses, nil)

	assert.Equal(t, 2, summary.TotalCourses)
	assert.Equal(t, 1, summary.SafeCourses)
	assert.Equal(t, 1, summary.AtRiskCourses)
	assert.Equal(t, 7, summary.TotalAbsences)
	assert.InDelta(t, 88.34, summary.AvgAttendance, 0.01)
}

func TestSummaryStats_EmptyCourseList(t *testing.T) {
	summary := NewCalculator(fixedTotal(30)).SummaryStats(nil, nil)
	assert.Equal(t, Summary{}, summary)
}

func TestGetDayStatus(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := []shared.Weekday{shared.Monday}
	courses := []Course{
		{ID: "c1", Weekdays: monday},
		{ID: "c2", Weekdays: monday},
		{ID: "c3", Weekdays: []shared.Weekday{shared.Tuesday}},
	}

	tests := []struct {
		name    string
		records []Record
		want    DayStatus
	}{
		{
			name: "all absent",
			records: []Record{
				{CourseID: "c1", Date: "2026-03-02", Status: StatusAbsent},
				{CourseID: "c2", Date: "2026-03-02", Status: StatusAbsent},
			},
			want: DayAbsent,
		},
		{
			name: "unrecorded counts as present",
			records: []Record{
				{CourseID: "c1", Date: "2026-03-02", Status: StatusPresent},
			},
			want: DayPresent,
		},
		{
			name: "mixed",
			records: []Record{
				{CourseID: "c1", Date: "2026-03-02", Status: StatusAbsent},
			},
			want: DayMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := GetDayStatus("2026-03-02", courses, tt.records)
			require.True(t, ok)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestGetDayStatus_NothingScheduled(t *testing.T) {
	courses := []Course{{ID: "c1", Weekdays: []shared.Weekday{shared.Monday}}}

	// 2026-03-01 is a Sunday.
	_, ok := GetDayStatus("2026-03-01", courses, nil)
	assert.False(t, ok)
}

func TestGetDayStatus_BadDate(t *testing.T) {
	_, ok := GetDayStatus("not-a-date", []Course{{ID: "c1"}}, nil)
	assert.False(t, ok)
}

func TestRecordValidate(t *testing.T) {
	valid := Record{CourseID: "c1", Date: "2026-03-02", Status: StatusPresent}
	assert.NoError(t, valid.Validate())

	assert.Error(t, Record{Date: "2026-03-02", Status: StatusPresent}.Validate())
	assert.Error(t, Record{CourseID: "c1", Date: "03/02/2026", Status: StatusPresent}.Validate())
	assert.Error(t, Record{CourseID: "c1", Date: "2026-03-02", Status: "late"}.Validate())
}

func TestCourseMeetsOn(t *testing.T) {
	course := Course{Weekdays: []shared.Weekday{shared.Monday, shared.Wednesday}}

	assert.True(t, course.MeetsOn(time.Monday))
	assert.False(t, course.MeetsOn(time.Friday))
}
