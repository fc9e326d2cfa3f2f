package query

import (
	"context"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/attendance"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ATTENDANCE SUMMARY QUERY
// Aggregates per-course stats across the whole enrollment for the
// dashboard header: average attendance, safe/at-risk counts, total
// absences.
// ══════════════════════════════════════════════════════════════════════════════

// GetAttendanceSummaryResult carries the aggregate and per-course stats.
type GetAttendanceSummaryResult struct {
	Summary attendance.Summary       `json:"summary"`
	Courses []attendance.CourseStats `json:"courses"`
}

// GetAttendanceSummaryHandler handles summary queries.
type GetAttendanceSummaryHandler struct {
	enrollRepo enrollment.Repository
	attendRepo attendance.Repository
	calc       *attendance.Calculator
}

// NewGetAttendanceSummaryHandler creates a new GetAttendanceSummaryHandler.
func NewGetAttendanceSummaryHandler(
	enrollRepo enrollment.Repository,
	attendRepo attendance.Repository,
	calc *attendance.Calculator,
) *GetAttendanceSummaryHandler {
	return &GetAttendanceSummaryHandler{
		enrollRepo: enrollRepo,
		attendRepo: attendRepo,
		calc:       calc,
	}
}

// Handle executes the summary query.
func (h *GetAttendanceSummaryHandler) Handle(ctx context.Context) (*GetAttendanceSummaryResult, error) {
	courses, records, err := h.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &GetAttendanceSummaryResult{
		Summary: h.calc.SummaryStats(courses, records),
		Courses: h.calc.AllStats(courses, records),
	}, nil
}

// snapshot loads one consistent view of the enrollment and its records.
func (h *GetAttendanceSummaryHandler) snapshot(ctx context.Context) ([]attendance.Course, []attendance.Record, error) {
	enrolled, err := h.enrollRepo.List(ctx)
	if err != nil {
		return nil, nil, shared.WrapError("query", "GetAttendanceSummary", shared.ErrInvalidState, "failed to list enrollment", err)
	}

	records, err := h.attendRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, shared.WrapError("query", "GetAttendanceSummary", shared.ErrInvalidState, "failed to list records", err)
	}

	courses := make([]attendance.Course, 0, len(enrolled))
	for _, c := range enrolled {
		courses = append(courses, attendanceView(c))
	}
	return courses, records, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GET DAY STATUS QUERY
// Classifies one calendar day across all courses scheduled on it, for the
// calendar heat map: absent, present or mixed.
// ══════════════════════════════════════════════════════════════════════════════

// GetDayStatusQuery identifies the calendar day.
type GetDayStatusQuery struct {
	// Date is the day in ISO form.
	Date string
}

// Validate validates the query parameters.
func (q GetDayStatusQuery) Validate() error {
	if _, err := time.Parse(attendance.DateLayout, q.Date); err != nil {
		return shared.ErrInvalidDate
	}
	return nil
}

// GetDayStatusResult classifies the day.
type GetDayStatusResult struct {
	Date string `json:"date"`

	// Scheduled indicates whether any course meets that day.
	Scheduled bool `json:"scheduled"`

	// Status is absent/present/mixed; empty when nothing is scheduled.
	Status attendance.DayStatus `json:"status,omitempty"`
}

// GetDayStatusHandler handles day status queries.
type GetDayStatusHandler struct {
	enrollRepo enrollment.Repository
	attendRepo attendance.Repository
}

// NewGetDayStatusHandler creates a new GetDayStatusHandler.
func NewGetDayStatusHandler(enrollRepo enrollment.Repository, attendRepo attendance.Repository) *GetDayStatusHandler {
	return &GetDayStatusHandler{enrollRepo: enrollRepo, attendRepo: attendRepo}
}

// Handle executes the day status query.
func (h *GetDayStatusHandler) Handle(ctx context.Context, query GetDayStatusQuery) (*GetDayStatusResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	enrolled, err := h.enrollRepo.List(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetDayStatus", shared.ErrInvalidState, "failed to list enrollment", err)
	}

	records, err := h.attendRepo.ListAll(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetDayStatus", shared.ErrInvalidState, "failed to list records", err)
	}

	courses := make([]attendance.Course, 0, len(enrolled))
	for _, c := range enrolled {
		courses = append(courses, attendanceView(c))
	}

	status, scheduled := attendance.GetDayStatus(query.Date, courses, records)
	return &GetDayStatusResult{
		Date:      query.Date,
		Scheduled: scheduled,
		Status:    status,
	}, nil
}
