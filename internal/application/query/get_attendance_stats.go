package query

import (
	"context"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/attendance"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ATTENDANCE STATS QUERY
// Computes the attendance picture for one enrolled course: adjusted totals,
// percentage, remaining allowance and risk status. Everything is derived on
// read; nothing is cached in the engine.
// ══════════════════════════════════════════════════════════════════════════════

// GetAttendanceStatsQuery identifies the course.
type GetAttendanceStatsQuery struct {
	// CourseID is the internal ID of the enrolled course.
	CourseID string
}

// Validate validates the query parameters.
func (q GetAttendanceStatsQuery) Validate() error {
	if q.CourseID == "" {
		return shared.NewDomainError("query", "GetAttendanceStats", shared.ErrEmptyValue, "course ID is required")
	}
	return nil
}

// GetAttendanceStatsResult carries the stats and the record history.
type GetAttendanceStatsResult struct {
	CourseID   string              `json:"courseId"`
	CourseName string              `json:"courseName"`
	Stats      attendance.Stats    `json:"stats"`
	Records    []attendance.Record `json:"records"`
}

// GetAttendanceStatsHandler handles per-course stats queries.
type GetAttendanceStatsHandler struct {
	enrollRepo enrollment.Repository
	attendRepo attendance.Repository
	calc       *attendance.Calculator
}

// NewGetAttendanceStatsHandler creates a new GetAttendanceStatsHandler.
func NewGetAttendanceStatsHandler(
	enrollRepo enrollment.Repository,
	attendRepo attendance.Repository,
	calc *attendance.Calculator,
) *GetAttendanceStatsHandler {
	return &GetAttendanceStatsHandler{
		enrollRepo: enrollRepo,
		attendRepo: attendRepo,
		calc:       calc,
	}
}

// Handle executes the stats query.
func (h *GetAttendanceStatsHandler) Handle(ctx context.Context, query GetAttendanceStatsQuery) (*GetAttendanceStatsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	enrolled, err := h.enrollRepo.GetByID(ctx, query.CourseID)
	if err != nil {
		return nil, shared.WrapError("query", "GetAttendanceStats", shared.ErrNotFound, "failed to get course", err)
	}

	records, err := h.attendRepo.ListByCourse(ctx, query.CourseID)
	if err != nil {
		return nil, shared.WrapError("query", "GetAttendanceStats", shared.ErrInvalidState, "failed to list records", err)
	}

	course := attendanceView(*enrolled)
	return &GetAttendanceStatsResult{
		CourseID:   course.ID,
		CourseName: course.Name,
		Stats:      h.calc.Stats(course, records),
		Records:    records,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SIMULATE ATTENDANCE QUERY
// What-if planning: projects the stats as if the student skips every listed
// date. Nothing is written; repeated calls with the same input agree.
// ══════════════════════════════════════════════════════════════════════════════

// SimulateAttendanceQuery identifies the course and the planned skips.
type SimulateAttendanceQuery struct {
	// CourseID is the internal ID of the enrolled course.
	CourseID string

	// Dates are the planned absence dates in ISO form.
	Dates []string
}

// Validate validates the query parameters.
func (q SimulateAttendanceQuery) Validate() error {
	if q.CourseID == "" {
		return shared.NewDomainError("query", "SimulateAttendance", shared.ErrEmptyValue, "course ID is required")
	}
	for _, d := range q.Dates {
		if _, err := time.Parse(attendance.DateLayout, d); err != nil {
			return shared.ErrInvalidDate
		}
	}
	return nil
}

// SimulateAttendanceResult pairs current and projected stats so the UI can
// render the delta.
type SimulateAttendanceResult struct {
	CourseID  string           `json:"courseId"`
	Current   attendance.Stats `json:"current"`
	Projected attendance.Stats `json:"projected"`
}

// SimulateAttendanceHandler handles what-if queries.
type SimulateAttendanceHandler struct {
	enrollRepo enrollment.Repository
	attendRepo attendance.Repository
	calc       *attendance.Calculator
}

// NewSimulateAttendanceHandler creates a new SimulateAttendanceHandler.
func NewSimulateAttendanceHandler(
	enrollRepo enrollment.Repository,
	attendRepo attendance.Repository,
	calc *attendance.Calculator,
) *SimulateAttendanceHandler {
	return &SimulateAttendanceHandler{
		enrollRepo: enrollRepo,
		attendRepo: attendRepo,
		calc:       calc,
	}
}

// Handle executes the simulation.
func (h *SimulateAttendanceHandler) Handle(ctx context.Context, query SimulateAttendanceQuery) (*SimulateAttendanceResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	enrolled, err := h.enrollRepo.GetByID(ctx, query.CourseID)
	if err != nil {
		return nil, shared.WrapError("query", "SimulateAttendance", shared.ErrNotFound, "failed to get course", err)
	}

	records, err := h.attendRepo.ListByCourse(ctx, query.CourseID)
	if err != nil {
		return nil, shared.WrapError("query", "SimulateAttendance", shared.ErrInvalidState, "failed to list records", err)
	}

	course := attendanceView(*enrolled)
	return &SimulateAttendanceResult{
		CourseID:  course.ID,
		Current:   h.calc.Stats(course, records),
		Projected: h.calc.Simulate(course, records, query.Dates),
	}, nil
}

// attendanceView maps an enrolled course to the attendance engine's view.
func attendanceView(c enrollment.EnrolledCourse) attendance.Course {
	return attendance.Course{
		ID:              c.ID,
		Name:            c.Name,
		Weekdays:        c.Days,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		InitialAbsences: c.InitialAbsences,
		AllowedAbsences: c.AllowedAbsences,
	}
}
