package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/attendance"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DROP COURSE COMMAND
// Removes a course from the schedule together with its attendance history.
// ══════════════════════════════════════════════════════════════════════════════

// DropCourseCommand contains the data to drop an enrolled course.
type DropCourseCommand struct {
	// CourseID is the internal ID of the enrolled course.
	CourseID string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c DropCourseCommand) Validate() error {
	if c.CourseID == "" {
		return errors.New("drop_course: course_id is required")
	}
	return nil
}

// DropCourseResult contains the result of dropping a course.
type DropCourseResult struct {
	CourseID   string
	CourseCode string
	Section    string
}

// DropCourseHandler handles the DropCourseCommand.
type DropCourseHandler struct {
	enrollRepo enrollment.Repository
	attendRepo attendance.Repository
	publisher  shared.EventPublisher
}

// NewDropCourseHandler creates a new DropCourseHandler.
func NewDropCourseHandler(
	enrollRepo enrollment.Repository,
	attendRepo attendance.Repository,
	publisher shared.EventPublisher,
) *DropCourseHandler {
	return &DropCourseHandler{
		enrollRepo: enrollRepo,
		attendRepo: attendRepo,
		publisher:  publisher,
	}
}

// Handle executes the drop course command.
func (h *DropCourseHandler) Handle(ctx context.Context, cmd DropCourseCommand) (*DropCourseResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("drop_course: validation failed: %w", err)
	}

	course, err := h.enrollRepo.GetByID(ctx, cmd.CourseID)
	if err != nil {
		return nil, fmt.Errorf("drop_course: failed to get course: %w", err)
	}

	if err := h.enrollRepo.Delete(ctx, cmd.CourseID); err != nil {
		return nil, fmt.Errorf("drop_course: failed to delete course: %w", err)
	}

	// Attendance history goes with the course. A failure here leaves
	// orphaned records, which the cleanup job sweeps later.
	if err := h.attendRepo.DeleteByCourse(ctx, cmd.CourseID); err != nil {
		return nil, fmt.Errorf("drop_course: failed to delete attendance records: %w", err)
	}

	if h.publisher != nil {
		event := shared.NewCourseDroppedEvent(course.ID, course.Code, course.Section)
		if cmd.CorrelationID != "" {
			event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
		}
		_ = h.publisher.Publish(event)
	}

	return &DropCourseResult{
		CourseID:   course.ID,
		CourseCode: course.Code,
		Section:    course.Section,
	}, nil
}
