package query

import (
	"context"
	"sort"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SCHEDULE QUERY
// Serves the student's live enrollment list, whole or filtered to one
// weekday, ordered by meeting time. The week view drives the timetable
// screen; the day view drives the "today" strip.
// ══════════════════════════════════════════════════════════════════════════════

// GetScheduleQuery contains the optional filters.
type GetScheduleQuery struct {
	// Day filters the schedule to one weekday when set. Matching is
	// case-insensitive.
	Day string
}

// Validate validates the query parameters.
func (q GetScheduleQuery) Validate() error {
	if q.Day != "" {
		if _, ok := shared.ParseWeekday(q.Day); !ok {
			return shared.NewDomainError("query", "GetSchedule", shared.ErrInvalidInput, "unknown weekday")
		}
	}
	return nil
}

// DaySchedule is one weekday's classes in meeting-time order.
type DaySchedule struct {
	Day     shared.Weekday              `json:"day"`
	Courses []enrollment.EnrolledCourse `json:"courses"`
}

// GetScheduleResult contains the enrollment list and its week layout.
type GetScheduleResult struct {
	// Courses is the full enrollment list in creation order.
	Courses []enrollment.EnrolledCourse `json:"courses"`

	// Week lays the courses out per weekday, Monday first. Days without
	// classes are omitted. Filtered to one day when the query asked for
	// one.
	Week []DaySchedule `json:"week"`

	// TotalCreditHours sums the weekly session count across the list.
	TotalCreditHours int `json:"totalCreditHours"`
}

// GetScheduleHandler handles schedule queries.
type GetScheduleHandler struct {
	repo enrollment.Repository
}

// NewGetScheduleHandler creates a new GetScheduleHandler.
func NewGetScheduleHandler(repo enrollment.Repository) *GetScheduleHandler {
	return &GetScheduleHandler{repo: repo}
}

// Handle executes the schedule query.
func (h *GetScheduleHandler) Handle(ctx context.Context, query GetScheduleQuery) (*GetScheduleResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	enrolled, err := h.repo.List(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetSchedule", shared.ErrInvalidState, "failed to list enrollment", err)
	}

	days := []shared.Weekday{
		shared.Monday, shared.Tuesday, shared.Wednesday,
		shared.Thursday, shared.Friday, shared.Saturday, shared.Sunday,
	}
	if query.Day != "" {
		day, _ := shared.ParseWeekday(query.Day)
		days = []shared.Weekday{day}
	}

	result := &GetScheduleResult{Courses: enrolled}
	for _, c := range enrolled {
		result.TotalCreditHours += c.CreditHours
	}

	for _, day := range days {
		var classes []enrollment.EnrolledCourse
		for _, c := range enrolled {
			if c.MeetsOn(day) {
				classes = append(classes, c)
			}
		}
		if len(classes) == 0 {
			continue
		}
		sort.SliceStable(classes, func(i, j int) bool {
			return shared.ClockMinutes(classes[i].StartTime) < shared.ClockMinutes(classes[j].StartTime)
		})
		result.Week = append(result.Week, DaySchedule{Day: day, Courses: classes})
	}

	return result, nil
}
