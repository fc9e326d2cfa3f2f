package attendance

import (
	"math"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// Risk thresholds
// ═══════════════════════════════════════════════════════════════════════════

// RiskLevel is the tri-state attendance status.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "safe"
	RiskWarning RiskLevel = "warning"
	RiskDanger  RiskLevel = "danger"
)

// Attendance thresholds in percent. Danger has no constant of its own:
// it is derived as "below warning", so the two boundaries cannot drift
// apart.
const (
	ThresholdSafe    = 85.0
	ThresholdWarning = 80.0
)

// RiskFor maps a raw (unrounded) percentage to a risk level.
func RiskFor(percentage float64) RiskLevel {
	switch {
	case percentage >= ThresholdSafe:
		return RiskSafe
	case percentage >= ThresholdWarning:
		return RiskWarning
	default:
		return RiskDanger
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Stats
// ═══════════════════════════════════════════════════════════════════════════

// Stats is the derived attendance picture for one course. It is
// recomputed on every query and never cached inside the engine.
type Stats struct {
	// TotalClasses is the scheduled occurrence count for the semester.
	TotalClasses int `json:"totalClasses"`

	// AdjustedTotal excludes cancelled sessions; it is the true
	// denominator for the percentage.
	AdjustedTotal int `json:"adjustedTotal"`

	// Attended is AdjustedTotal minus Absences. It goes negative when
	// absences exceed the adjusted total; the negative signal is
	// preserved (not clamped) and surfaced through OverAbsent.
	Attended int `json:"attended"`

	// Absences is initial plus tracked absences.
	Absences int `json:"absences"`

	// Cancelled is the number of cancelled sessions on record.
	Cancelled int `json:"cancelled"`

	// Percentage is Attended/AdjustedTotal*100, rounded to two decimals.
	// A course with zero effective sessions is vacuously 100% attended.
	Percentage float64 `json:"percentage"`

	// RemainingAbsences is how many more absences the allowance covers.
	RemainingAbsences int `json:"remainingAbsences"`

	// Status is the tri-state risk level.
	Status RiskLevel `json:"status"`

	IsAtRisk bool `json:"isAtRisk"`
	IsSafe   bool `json:"isSafe"`

	// OverAbsent flags the underflow case where absences exceed the
	// adjusted total.
	OverAbsent bool `json:"overAbsent"`
}

// TotalClassesFunc counts the scheduled occurrences of a course's weekday
// set between its start and end dates, inclusive. It must be
// deterministic and pure; the standard implementation lives in
// pkg/timeutil and is wired in by the application layer.
type TotalClassesFunc func(c Course) int

// Calculator computes attendance statistics. It holds only the
// total-classes collaborator and is safe for concurrent use.
type Calculator struct {
	total TotalClassesFunc
}

// NewCalculator creates a Calculator with the given total-classes
// collaborator.
func NewCalculator(total TotalClassesFunc) *Calculator {
	return &Calculator{total: total}
}

// Stats computes the full attendance picture for one course from its
// record history. Records for other courses are ignored. Calling it
// twice with identical inputs yields identical output.
func (c *Calculator) Stats(course Course, records []Record) Stats {
	totalClasses := c.total(course)

	trackedAbsences := 0
	cancelled := 0
	for _, r := range records {
		if r.CourseID != course.ID {
			continue
		}
		switch r.Status {
		case StatusAbsent:
			trackedAbsences++
		case StatusCancelled:
			cancelled++
		}
	}

	totalAbsences := course.InitialAbsences + trackedAbsences
	adjustedTotal := totalClasses - cancelled
	attended := adjustedTotal - totalAbsences

	percentage := 100.0
	if adjustedTotal > 0 {
		percentage = float64(attended) / float64(adjustedTotal) * 100
	}

	remaining := course.Allowance(adjustedTotal) - totalAbsences
	if remaining < 0 {
		remaining = 0
	}

	return Stats{
		TotalClasses:      totalClasses,
		AdjustedTotal:     adjustedTotal,
		Attended:          attended,
		Absences:          totalAbsences,
		Cancelled:         cancelled,
		Percentage:        roundTo2(percentage),
		RemainingAbsences: remaining,
		Status:            RiskFor(percentage),
		IsAtRisk:          percentage < ThresholdWarning,
		IsSafe:            percentage >= ThresholdSafe,
		OverAbsent:        attended < 0,
	}
}

// Simulate projects the stats as if the student skips every planned
// date. It builds a throwaway record list and delegates to Stats; the
// caller's records slice is never touched.
func (c *Calculator) Simulate(course Course, records []Record, plannedDates []string) Stats {
	simulated := make([]Record, 0, len(records)+len(plannedDates))
	simulated = append(simulated, records...)
	for _, date := range plannedDates {
		simulated = append(simulated, Record{
			CourseID: course.ID,
			Date:     date,
			Status:   StatusAbsent,
			Planned:  true,
		})
	}
	return c.Stats(course, simulated)
}

// CourseStats pairs a course with its computed stats.
type CourseStats struct {
	Course Course `json:"course"`
	Stats  Stats  `json:"stats"`
}

// AllStats computes per-course stats for every course.
func (c *Calculator) AllStats(courses []Course, records []Record) []CourseStats {
	all := make([]CourseStats, 0, len(courses))
	for _, course := range courses {
		all = append(all, CourseStats{Course: course, Stats: c.Stats(course, records)})
	}
	return all
}

// Summary aggregates per-course stats across the whole enrollment.
type Summary struct {
	TotalCourses int `json:"totalCourses"`

	// AvgAttendance is the arithmetic mean of per-course percentages,
	// not weighted by class count.
	AvgAttendance float64 `json:"avgAttendance"`

	SafeCourses   int `json:"safeCourses"`
	AtRiskCourses int `json:"atRiskCourses"`
	TotalAbsences int `json:"totalAbsences"`
}

// SummaryStats aggregates stats across all courses. An empty course list
// yields a zero summary.
func (c *Calculator) SummaryStats(courses []Course, records []Record) Summary {
	if len(courses) == 0 {
		return Summary{}
	}

	all := c.AllStats(courses, records)

	summary := Summary{TotalCourses: len(courses)}
	sum := 0.0
	for _, cs := range all {
		sum += cs.Stats.Percentage
		if cs.Stats.IsSafe {
			summary.SafeCourses++
		}
		if cs.Stats.IsAtRisk {
			summary.AtRiskCourses++
		}
		summary.TotalAbsences += cs.Stats.Absences
	}
	summary.AvgAttendance = roundTo2(sum / float64(len(courses)))

	return summary
}

// ═══════════════════════════════════════════════════════════════════════════
// Per-day status
// ═══════════════════════════════════════════════════════════════════════════

// DayStatus summarizes one calendar day across all scheduled courses.
type DayStatus string

const (
	// DayAbsent means every scheduled course was marked absent.
	DayAbsent DayStatus = "absent"

	// DayPresent means every scheduled course was present or unrecorded.
	DayPresent DayStatus = "present"

	// DayMixed means the day had both outcomes (or proxy/cancelled
	// entries that are neither).
	DayMixed DayStatus = "mixed"
)

// RecordStatus looks up the recorded status for one course on one date.
func RecordStatus(records []Record, courseID, date string) (Status, bool) {
	for _, r := range records {
		if r.CourseID == courseID && r.Date == date {
			return r.Status, true
		}
	}
	return "", false
}

// GetDayStatus classifies a calendar day. It restricts to courses
// scheduled on that date's weekday; unrecorded sessions count as
// present. The second return is false when no course is scheduled that
// day (or the date does not parse).
func GetDayStatus(date string, courses []Course, records []Record) (DayStatus, bool) {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", false
	}
	weekday := parsed.Weekday()

	var scheduled []Course
	for _, course := range courses {
		if course.MeetsOn(weekday) {
			scheduled = append(scheduled, course)
		}
	}
	if len(scheduled) == 0 {
		return "", false
	}

	absent := 0
	present := 0
	for _, course := range scheduled {
		status, ok := RecordStatus(records, course.ID, date)
		switch {
		case ok && status == StatusAbsent:
			absent++
		case !ok || status == StatusPresent:
			present++
		}
	}

	switch {
	case absent == len(scheduled):
		return DayAbsent, true
	case present == len(scheduled):
		return DayPresent, true
	default:
		return DayMixed, true
	}
}

// roundTo2 rounds half away from zero on the scaled value.
func roundTo2(x float64) float64 {
	return math.Round(x*100) / 100
}
