package query

import (
	"context"
	"fmt"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHECK CONFLICTS QUERY
// Dry-run conflict check: classifies a candidate class against the current
// enrollment without adding anything. The add dialog calls this on every
// selection to render the confirm/switch prompt.
// ══════════════════════════════════════════════════════════════════════════════

// CheckConflictsQuery describes the candidate class.
type CheckConflictsQuery struct {
	CourseCode  string
	Section     string
	Name        string
	Days        []string
	StartTime   string
	EndTime     string
	CreditHours int
}

// Validate validates the query parameters.
func (q CheckConflictsQuery) Validate() error {
	if q.CourseCode == "" {
		return shared.NewDomainError("query", "CheckConflicts", shared.ErrEmptyValue, "course code is required")
	}
	if q.Section == "" {
		return shared.NewDomainError("query", "CheckConflicts", shared.ErrEmptyValue, "section is required")
	}
	for _, name := range q.Days {
		if _, ok := shared.ParseWeekday(name); !ok {
			return shared.NewDomainError("query", "CheckConflicts", shared.ErrInvalidInput,
				fmt.Sprintf("unknown weekday %q", name))
		}
	}
	return nil
}

// CheckConflictsResult carries the full classification for the UI.
type CheckConflictsResult struct {
	// Conflicts is the hard-conflict classification.
	Conflicts enrollment.ConflictResult `json:"conflicts"`

	// Message is the user-facing prompt, empty when clear.
	Message string `json:"message,omitempty"`

	// Warnings are advisory only and never block.
	Warnings enrollment.Warnings `json:"warnings"`
}

// CheckConflictsHandler handles dry-run conflict checks.
type CheckConflictsHandler struct {
	repo enrollment.Repository
}

// NewCheckConflictsHandler creates a new CheckConflictsHandler.
func NewCheckConflictsHandler(repo enrollment.Repository) *CheckConflictsHandler {
	return &CheckConflictsHandler{repo: repo}
}

// Handle executes the conflict check.
func (h *CheckConflictsHandler) Handle(ctx context.Context, query CheckConflictsQuery) (*CheckConflictsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	enrolled, err := h.repo.List(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "CheckConflicts", shared.ErrInvalidState, "failed to list enrollment", err)
	}

	candidate := h.toCandidate(query)
	conflicts := enrollment.DetectConflicts(candidate, enrolled)

	return &CheckConflictsResult{
		Conflicts: conflicts,
		Message:   enrollment.FormatConflictMessage(conflicts),
		Warnings:  enrollment.CheckWarnings(candidate, enrolled),
	}, nil
}

// toCandidate maps the query to the conflict engine's input.
func (h *CheckConflictsHandler) toCandidate(query CheckConflictsQuery) enrollment.Candidate {
	days := make([]shared.Weekday, 0, len(query.Days))
	for _, name := range query.Days {
		day, _ := shared.ParseWeekday(name)
		days = append(days, day)
	}

	name := query.Name
	if name == "" {
		name = query.CourseCode
	}

	return enrollment.Candidate{
		CourseCode:  query.CourseCode,
		Section:     query.Section,
		Name:        name,
		Days:        days,
		StartTime:   query.StartTime,
		EndTime:     query.EndTime,
		CreditHours: query.CreditHours,
	}
}
