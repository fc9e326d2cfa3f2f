package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/attendance"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD ATTENDANCE COMMAND
// Writes one class outcome and reports the updated attendance picture.
// Crossing a risk threshold additionally publishes a risk-changed event so
// subscribers (notifiers, the risk scan job) can react.
// ══════════════════════════════════════════════════════════════════════════════

// RecordAttendanceCommand contains the data to record a class outcome.
type RecordAttendanceCommand struct {
	// CourseID is the internal ID of the enrolled course.
	CourseID string

	// Date is the session date in ISO form.
	Date string

	// Status is the recorded outcome: present, absent, cancelled, proxy.
	Status attendance.Status

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c RecordAttendanceCommand) Validate() error {
	if c.CourseID == "" {
		return errors.New("record_attendance: course_id is required")
	}
	if !c.Status.IsValid() {
		return fmt.Errorf("record_attendance: unknown status: %s", c.Status)
	}
	if _, err := time.Parse(attendance.DateLayout, c.Date); err != nil {
		return fmt.Errorf("record_attendance: invalid date %q", c.Date)
	}
	return nil
}

// RecordAttendanceResult contains the result of recording attendance.
type RecordAttendanceResult struct {
	// RecordID is the ID of the new record.
	RecordID string

	// Stats is the attendance picture after the record.
	Stats attendance.Stats

	// RiskChanged indicates the record moved the course across a
	// threshold.
	RiskChanged bool

	// PreviousRisk is the risk level before the record.
	PreviousRisk attendance.RiskLevel
}

// RecordAttendanceHandler handles the RecordAttendanceCommand.
type RecordAttendanceHandler struct {
	enrollRepo enrollment.Repository
	attendRepo attendance.Repository
	calc       *attendance.Calculator
	publisher  shared.EventPublisher
}

// NewRecordAttendanceHandler creates a new RecordAttendanceHandler.
func NewRecordAttendanceHandler(
	enrollRepo enrollment.Repository,
	attendRepo attendance.Repository,
	calc *attendance.Calculator,
	publisher shared.EventPublisher,
) *RecordAttendanceHandler {
	return &RecordAttendanceHandler{
		enrollRepo: enrollRepo,
		attendRepo: attendRepo,
		calc:       calc,
		publisher:  publisher,
	}
}

// Handle executes the record attendance command.
func (h *RecordAttendanceHandler) Handle(ctx context.Context, cmd RecordAttendanceCommand) (*RecordAttendanceResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("record_attendance: validation failed: %w", err)
	}

	enrolled, err := h.enrollRepo.GetByID(ctx, cmd.CourseID)
	if err != nil {
		return nil, fmt.Errorf("record_attendance: failed to get course: %w", err)
	}
	course := attendanceCourse(*enrolled)

	records, err := h.attendRepo.ListByCourse(ctx, cmd.CourseID)
	if err != nil {
		return nil, fmt.Errorf("record_attendance: failed to list records: %w", err)
	}

	if _, exists := attendance.RecordStatus(records, cmd.CourseID, cmd.Date); exists {
		return nil, shared.ErrDuplicateRecord
	}

	before := h.calc.Stats(course, records)

	record := attendance.Record{
		ID:        uuid.NewString(),
		CourseID:  cmd.CourseID,
		Date:      cmd.Date,
		Status:    cmd.Status,
		CreatedAt: time.Now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := h.attendRepo.Create(ctx, &record); err != nil {
		return nil, fmt.Errorf("record_attendance: failed to create record: %w", err)
	}

	after := h.calc.Stats(course, append(records, record))

	result := &RecordAttendanceResult{
		RecordID:     record.ID,
		Stats:        after,
		RiskChanged:  after.Status != before.Status,
		PreviousRisk: before.Status,
	}

	h.publishEvents(cmd, result, after)

	return result, nil
}

// publishEvents emits the recorded event and, on a threshold crossing,
// the risk-changed event.
func (h *RecordAttendanceHandler) publishEvents(
	cmd RecordAttendanceCommand,
	result *RecordAttendanceResult,
	after attendance.Stats,
) {
	if h.publisher == nil {
		return
	}

	recorded := shared.NewAttendanceRecordedEvent(cmd.CourseID, cmd.Date, string(cmd.Status))
	if cmd.CorrelationID != "" {
		recorded.BaseEvent = recorded.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.publisher.Publish(recorded)

	if result.RiskChanged {
		risk := shared.NewAttendanceRiskChangedEvent(
			cmd.CourseID,
			string(result.PreviousRisk),
			string(after.Status),
			after.Percentage,
		)
		if cmd.CorrelationID != "" {
			risk.BaseEvent = risk.BaseEvent.WithCorrelationID(cmd.CorrelationID)
		}
		_ = h.publisher.Publish(risk)
	}
}

// attendanceCourse maps an enrolled course to the attendance engine's view.
func attendanceCourse(c enrollment.EnrolledCourse) attendance.Course {
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
