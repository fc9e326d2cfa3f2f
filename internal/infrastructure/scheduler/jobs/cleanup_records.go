package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/attendance"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLEANUP RECORDS JOB
// ══════════════════════════════════════════════════════════════════════════════

// CleanupRecordsJob sweeps attendance records whose course no longer
// exists. Dropping a course deletes its records inline, but if that
// second delete fails the orphans stay behind; this job is the backstop.
type CleanupRecordsJob struct {
	enrollRepo enrollment.Repository
	attendRepo attendance.Repository
	logger     *slog.Logger
	config     CleanupRecordsConfig
}

// CleanupRecordsConfig contains configuration for the cleanup job.
type CleanupRecordsConfig struct {
	// Timeout is the maximum duration for one sweep.
	Timeout time.Duration
}

// DefaultCleanupRecordsConfig returns sensible defaults.
func DefaultCleanupRecordsConfig() CleanupRecordsConfig {
	return CleanupRecordsConfig{
		Timeout: time.Minute,
	}
}

// NewCleanupRecordsJob creates a new cleanup job.
func NewCleanupRecordsJob(
	enrollRepo enrollment.Repository,
	attendRepo attendance.Repository,
	logger *slog.Logger,
	config CleanupRecordsConfig,
) *CleanupRecordsJob {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultCleanupRecordsConfig().Timeout
	}

	return &CleanupRecordsJob{
		enrollRepo: enrollRepo,
		attendRepo: attendRepo,
		logger:     logger,
		config:     config,
	}
}

// Name returns the job name.
func (j *CleanupRecordsJob) Name() string {
	return "cleanup_records"
}

// Description returns a human-readable description.
func (j *CleanupRecordsJob) Description() string {
	return "Removes attendance records orphaned by dropped courses"
}

// Run executes one sweep.
func (j *CleanupRecordsJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	enrolled, err := j.enrollRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("cleanup records: list enrollment: %w", err)
	}

	alive := make(map[string]struct{}, len(enrolled))
	for _, c := range enrolled {
		alive[c.ID] = struct{}{}
	}

	records, err := j.attendRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("cleanup records: list records: %w", err)
	}

	orphaned := make(map[string]struct{})
	for _, rec := range records {
		if _, ok := alive[rec.CourseID]; !ok {
			orphaned[rec.CourseID] = struct{}{}
		}
	}

	for courseID := range orphaned {
		if err := j.attendRepo.DeleteByCourse(ctx, courseID); err != nil {
			return fmt.Errorf("cleanup records: delete for course %s: %w", courseID, err)
		}
		j.logger.Info("orphaned records removed", "course_id", courseID)
	}

	if len(orphaned) == 0 {
		j.logger.Debug("cleanup found no orphaned records")
	}

	return nil
}
