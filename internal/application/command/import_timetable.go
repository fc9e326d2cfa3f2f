// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/timetable"
	"github.com/campus-hub/campus-schedule-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// IMPORT TIMETABLE COMMAND
// Turns the published room-by-slot grids into a section-keyed course catalog
// and stores it for the query side. This is the single write path for the
// catalog: enrollments pick from what an import produced.
// ══════════════════════════════════════════════════════════════════════════════

// ImportTimetableCommand contains the data for a timetable import.
type ImportTimetableCommand struct {
	// Grids maps a weekday name to its raw grid text. When empty, the
	// handler downloads every day the configured source provides.
	Grids map[string]string

	// Source labels where the grids came from (e.g. "sheets", "upload").
	Source string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c ImportTimetableCommand) Validate() error {
	for name := range c.Grids {
		if _, ok := shared.ParseWeekday(name); !ok {
			return fmt.Errorf("import_timetable: unknown weekday %q", name)
		}
	}
	return nil
}

// ImportTimetableResult contains the result of a timetable import.
type ImportTimetableResult struct {
	// EntryCount is the number of session entries parsed across all days.
	EntryCount int

	// SectionCount is the number of distinct sections in the new catalog.
	SectionCount int

	// DaysImported lists the days that contributed entries, Monday first.
	DaysImported []shared.Weekday

	// BuiltAt is when the catalog was built.
	BuiltAt time.Time
}

// ImportTimetableHandler handles the ImportTimetableCommand.
type ImportTimetableHandler struct {
	source    timetable.GridSource
	store     timetable.CatalogStore
	parser    *timetable.Parser
	publisher shared.EventPublisher
	log       *logger.Logger
}

// NewImportTimetableHandler creates a new ImportTimetableHandler.
func NewImportTimetableHandler(
	source timetable.GridSource,
	store timetable.CatalogStore,
	parser *timetable.Parser,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *ImportTimetableHandler {
	if log == nil {
		log = logger.Default()
	}
	return &ImportTimetableHandler{
		source:    source,
		store:     store,
		parser:    parser,
		publisher: publisher,
		log:       log.With(logger.Component("import_timetable")),
	}
}

// Handle executes the import timetable command.
func (h *ImportTimetableHandler) Handle(ctx context.Context, cmd ImportTimetableCommand) (*ImportTimetableResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("import_timetable: validation failed: %w", err)
	}

	grids, err := h.collectGrids(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if len(grids) == 0 {
		return nil, shared.ErrEmptyGrid
	}

	entries := h.parser.ParseWeek(grids)
	catalog := timetable.BuildCatalog(entries)

	builtAt := time.Now().UTC()
	if err := h.store.Save(ctx, catalog, builtAt); err != nil {
		return nil, fmt.Errorf("import_timetable: failed to store catalog: %w", err)
	}

	result := &ImportTimetableResult{
		EntryCount:   len(entries),
		SectionCount: len(catalog.Sections()),
		DaysImported: daysWithEntries(entries),
		BuiltAt:      builtAt,
	}

	h.log.Info("catalog imported",
		logger.EntryCount(result.EntryCount),
		logger.Int("section_count", result.SectionCount),
		logger.String("source", cmd.Source),
	)

	if h.publisher != nil {
		event := shared.NewCatalogImportedEvent(result.EntryCount, result.SectionCount, cmd.Source)
		if cmd.CorrelationID != "" {
			event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
		}
		_ = h.publisher.Publish(event)
	}

	return result, nil
}

// collectGrids resolves the raw grids: inline text from the command when
// provided, otherwise one download per configured day.
func (h *ImportTimetableHandler) collectGrids(ctx context.Context, cmd ImportTimetableCommand) (map[shared.Weekday]string, error) {
	grids := make(map[shared.Weekday]string)

	if len(cmd.Grids) > 0 {
		for name, raw := range cmd.Grids {
			day, _ := shared.ParseWeekday(name)
			grids[day] = raw
		}
		return grids, nil
	}

	if h.source == nil {
		return nil, errors.New("import_timetable: no grids given and no source configured")
	}

	for _, day := range h.source.Days() {
		raw, err := h.source.FetchDay(ctx, day)
		if err != nil {
			// A day that fails to download is skipped, not fatal: the
			// remaining days still produce a usable catalog.
			h.log.Warn("failed to fetch day grid",
				logger.Day(day.String()), logger.Err(err))
			continue
		}
		grids[day] = raw
	}

	return grids, nil
}

// daysWithEntries lists the weekdays that produced at least one entry,
// in the order the entries were emitted (Monday first).
func daysWithEntries(entries []timetable.SessionEntry) []shared.Weekday {
	seen := make(map[shared.Weekday]bool)
	days := make([]shared.Weekday, 0, 5)
	for _, e := range entries {
		if !seen[e.Day] {
			seen[e.Day] = true
			days = append(days, e.Day)
		}
	}
	return days
}
