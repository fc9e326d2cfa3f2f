package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLL COURSE COMMAND
// Adds a catalog offering to the student's schedule. Conflicts are checked
// first: a hard conflict blocks the add unless Force is set, soft warnings
// never block and are returned verbatim for the UI to show.
// ══════════════════════════════════════════════════════════════════════════════

// EnrollCourseCommand contains the data to enroll in a course.
type EnrollCourseCommand struct {
	// CourseCode is the short course code, e.g. "DAA".
	CourseCode string

	// Section is the cohort identifier, e.g. "BCS-5B".
	Section string

	// Name is the display name; falls back to the code when empty.
	Name string

	// Days are weekday names the course meets on.
	Days []string

	// StartTime and EndTime bound the class meeting as clock strings.
	StartTime string
	EndTime   string

	// CreditHours is the weekly session count.
	CreditHours int

	// StartDate and EndDate bound the semester in ISO form (optional).
	StartDate string
	EndDate   string

	// InitialAbsences seeds the absence count for mid-semester adds.
	InitialAbsences int

	// AllowedAbsences is the explicit allowance; zero derives the default.
	AllowedAbsences int

	// Force adds the course even when a conflict was detected.
	Force bool

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c EnrollCourseCommand) Validate() error {
	if c.CourseCode == "" {
		return errors.New("enroll_course: course_code is required")
	}
	if c.Section == "" {
		return errors.New("enroll_course: section is required")
	}
	for _, name := range c.Days {
		if _, ok := shared.ParseWeekday(name); !ok {
			return fmt.Errorf("enroll_course: unknown weekday %q", name)
		}
	}
	if c.StartTime != "" && c.EndTime != "" {
		tr := shared.TimeRange{Start: c.StartTime, End: c.EndTime}
		if !tr.IsOrdered() {
			return errors.New("enroll_course: start time must precede end time")
		}
	}
	if c.InitialAbsences < 0 || c.AllowedAbsences < 0 || c.CreditHours < 0 {
		return errors.New("enroll_course: counts cannot be negative")
	}
	return nil
}

// EnrollCourseResult contains the result of an enrollment attempt.
type EnrollCourseResult struct {
	// Enrolled indicates whether the course was added.
	Enrolled bool

	// CourseID is the ID of the new enrollment (when Enrolled).
	CourseID string

	// Conflicts is the full conflict classification for the candidate.
	Conflicts enrollment.ConflictResult

	// ConflictMessage is the user-facing prompt for the conflict, empty
	// when the candidate was clear.
	ConflictMessage string

	// Warnings are advisory messages (overload, back-to-back).
	Warnings enrollment.Warnings
}

// EnrollCourseHandler handles the EnrollCourseCommand.
type EnrollCourseHandler struct {
	repo      enrollment.Repository
	publisher shared.EventPublisher
}

// NewEnrollCourseHandler creates a new EnrollCourseHandler.
func NewEnrollCourseHandler(repo enrollment.Repository, publisher shared.EventPublisher) *EnrollCourseHandler {
	return &EnrollCourseHandler{repo: repo, publisher: publisher}
}

// Handle executes the enroll course command.
func (h *EnrollCourseHandler) Handle(ctx context.Context, cmd EnrollCourseCommand) (*EnrollCourseResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("enroll_course: validation failed: %w", err)
	}

	enrolled, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("enroll_course: failed to list enrollment: %w", err)
	}

	candidate := toCandidate(cmd)
	result := &EnrollCourseResult{
		Conflicts: enrollment.DetectConflicts(candidate, enrolled),
		Warnings:  enrollment.CheckWarnings(candidate, enrolled),
	}
	result.ConflictMessage = enrollment.FormatConflictMessage(result.Conflicts)

	// An exact duplicate is never forced past: adding the same
	// (code, section) twice is always a mistake.
	if result.Conflicts.Type == enrollment.ConflictExactDuplicate {
		return result, nil
	}
	if result.Conflicts.HasConflict && !cmd.Force {
		return result, nil
	}

	course := newEnrolledCourse(cmd, candidate)
	if err := h.repo.Create(ctx, &course); err != nil {
		return nil, fmt.Errorf("enroll_course: failed to create enrollment: %w", err)
	}

	result.Enrolled = true
	result.CourseID = course.ID

	if h.publisher != nil {
		event := shared.NewCourseEnrolledEvent(course.ID, course.Code, course.Section, cmd.Force && result.Conflicts.HasConflict)
		if cmd.CorrelationID != "" {
			event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
		}
		_ = h.publisher.Publish(event)
	}

	return result, nil
}

// toCandidate maps the command to the conflict engine's input.
func toCandidate(cmd EnrollCourseCommand) enrollment.Candidate {
	days := make([]shared.Weekday, 0, len(cmd.Days))
	for _, name := range cmd.Days {
		day, _ := shared.ParseWeekday(name)
		days = append(days, day)
	}

	name := cmd.Name
	if name == "" {
		name = cmd.CourseCode
	}

	return enrollment.Candidate{
		CourseCode:  cmd.CourseCode,
		Section:     cmd.Section,
		Name:        name,
		Days:        days,
		StartTime:   cmd.StartTime,
		EndTime:     cmd.EndTime,
		CreditHours: cmd.CreditHours,
	}
}

// newEnrolledCourse builds the persistent entity for a cleared candidate.
func newEnrolledCourse(cmd EnrollCourseCommand, candidate enrollment.Candidate) enrollment.EnrolledCourse {
	now := time.Now().UTC()
	course := enrollment.EnrolledCourse{
		ID:              uuid.NewString(),
		Code:            candidate.CourseCode,
		Section:         candidate.Section,
		Name:            candidate.Name,
		Days:            candidate.Days,
		StartTime:       candidate.StartTime,
		EndTime:         candidate.EndTime,
		CreditHours:     candidate.CreditHours,
		InitialAbsences: cmd.InitialAbsences,
		AllowedAbsences: cmd.AllowedAbsences,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if t, err := time.Parse(shared.DateLayout, cmd.StartDate); err == nil {
		course.StartDate = t
	}
	if t, err := time.Parse(shared.DateLayout, cmd.EndDate); err == nil {
		course.EndDate = t
	}

	return course
}
