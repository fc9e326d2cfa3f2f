// Package jobs contains implementations of scheduled jobs for Campus Schedule Hub.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/application/command"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REFRESH TIMETABLE JOB
// ══════════════════════════════════════════════════════════════════════════════

// RefreshTimetableJob re-imports the published timetable grids and
// rebuilds the catalog. A failed refresh leaves the previous catalog in
// place; the read side flags it stale past the TTL instead.
type RefreshTimetableJob struct {
	importer  *command.ImportTimetableHandler
	publisher shared.EventPublisher
	logger    *slog.Logger
	config    RefreshTimetableConfig

	lastRefresh atomic.Value // *RefreshStats
}

// RefreshLock guards a refresh against concurrent runs on other
// instances. A nil lock means single-instance deployment, no guard.
type RefreshLock interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// RefreshTimetableConfig contains configuration for the refresh job.
type RefreshTimetableConfig struct {
	// Timeout is the maximum duration for one refresh run.
	Timeout time.Duration

	// Lock, when set, makes concurrent refreshes across instances
	// single-flight: the loser skips its run.
	Lock RefreshLock
}

// DefaultRefreshTimetableConfig returns sensible defaults.
func DefaultRefreshTimetableConfig() RefreshTimetableConfig {
	return RefreshTimetableConfig{
		Timeout: 5 * time.Minute,
	}
}

// RefreshStats contains statistics from one refresh run.
type RefreshStats struct {
	StartedAt    time.Time
	CompletedAt  time.Time
	Duration     time.Duration
	EntryCount   int
	SectionCount int
	DaysImported int
	Err          error
}

// NewRefreshTimetableJob creates a new refresh timetable job.
func NewRefreshTimetableJob(
	importer *command.ImportTimetableHandler,
	publisher shared.EventPublisher,
	logger *slog.Logger,
	config RefreshTimetableConfig,
) *RefreshTimetableJob {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultRefreshTimetableConfig().Timeout
	}

	return &RefreshTimetableJob{
		importer:  importer,
		publisher: publisher,
		logger:    logger,
		config:    config,
	}
}

// Name returns the job name.
func (j *RefreshTimetableJob) Name() string {
	return "refresh_timetable"
}

// Description returns a human-readable description.
func (j *RefreshTimetableJob) Description() string {
	return "Downloads the published timetable grids and rebuilds the course catalog"
}

// Run executes the refresh.
func (j *RefreshTimetableJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	if j.config.Lock != nil {
		acquired, err := j.config.Lock.TryAcquire(ctx)
		if err != nil {
			return fmt.Errorf("refresh timetable: lock: %w", err)
		}
		if !acquired {
			j.logger.Info("refresh already running elsewhere, skipping")
			return nil
		}
		defer func() {
			if err := j.config.Lock.Release(context.WithoutCancel(ctx)); err != nil {
				j.logger.Warn("failed to release refresh lock", "error", err)
			}
		}()
	}

	startedAt := time.Now()
	stats := &RefreshStats{StartedAt: startedAt}
	defer func() {
		stats.CompletedAt = time.Now()
		stats.Duration = stats.CompletedAt.Sub(startedAt)
		j.lastRefresh.Store(stats)
	}()

	result, err := j.importer.Handle(ctx, command.ImportTimetableCommand{
		Source: "scheduled_refresh",
	})
	if err != nil {
		stats.Err = err
		j.publishFailure(err)
		return fmt.Errorf("refresh timetable: %w", err)
	}

	stats.EntryCount = result.EntryCount
	stats.SectionCount = result.SectionCount
	stats.DaysImported = len(result.DaysImported)

	j.logger.Info("timetable refreshed",
		"entries", result.EntryCount,
		"sections", result.SectionCount,
		"days", len(result.DaysImported),
	)

	return nil
}

// publishFailure emits the refresh-failed event so subscribers can react.
func (j *RefreshTimetableJob) publishFailure(err error) {
	if j.publisher == nil {
		return
	}
	if pubErr := j.publisher.Publish(shared.NewCatalogRefreshFailedEvent(err.Error())); pubErr != nil {
		j.logger.Error("failed to publish refresh failure", "error", pubErr)
	}
}

// LastRefresh returns stats from the most recent run, or nil.
func (j *RefreshTimetableJob) LastRefresh() *RefreshStats {
	stats, _ := j.lastRefresh.Load().(*RefreshStats)
	return stats
}
