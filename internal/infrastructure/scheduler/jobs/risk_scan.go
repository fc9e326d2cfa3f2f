package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/attendance"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RISK SCAN JOB
// ══════════════════════════════════════════════════════════════════════════════

// RiskScanJob recomputes attendance risk for every enrolled course and
// publishes a risk-changed event when a course moved across a threshold
// since the previous scan. It catches crossings that happen without a new
// record, e.g. when the semester advances and the adjusted total grows.
type RiskScanJob struct {
	enrollRepo enrollment.Repository
	attendRepo attendance.Repository
	calc       *attendance.Calculator
	publisher  shared.EventPublisher
	logger     *slog.Logger
	config     RiskScanConfig

	mu       sync.Mutex
	lastRisk map[string]attendance.RiskLevel
}

// RiskScanConfig contains configuration for the risk scan job.
type RiskScanConfig struct {
	// Timeout is the maximum duration for one scan.
	Timeout time.Duration
}

// DefaultRiskScanConfig returns sensible defaults.
func DefaultRiskScanConfig() RiskScanConfig {
	return RiskScanConfig{
		Timeout: time.Minute,
	}
}

// NewRiskScanJob creates a new risk scan job.
func NewRiskScanJob(
	enrollRepo enrollment.Repository,
	attendRepo attendance.Repository,
	calc *attendance.Calculator,
	publisher shared.EventPublisher,
	logger *slog.Logger,
	config RiskScanConfig,
) *RiskScanJob {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultRiskScanConfig().Timeout
	}

	return &RiskScanJob{
		enrollRepo: enrollRepo,
		attendRepo: attendRepo,
		calc:       calc,
		publisher:  publisher,
		logger:     logger,
		config:     config,
		lastRisk:   make(map[string]attendance.RiskLevel),
	}
}

// Name returns the job name.
func (j *RiskScanJob) Name() string {
	return "risk_scan"
}

// Description returns a human-readable description.
func (j *RiskScanJob) Description() string {
	return "Recomputes attendance risk for all courses and reports threshold crossings"
}

// Run executes one scan.
func (j *RiskScanJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	enrolled, err := j.enrollRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("risk scan: list enrollment: %w", err)
	}

	records, err := j.attendRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("risk scan: list records: %w", err)
	}

	changed := 0
	for _, c := range enrolled {
		course := attendance.Course{
			ID:              c.ID,
			Name:            c.Name,
			Weekdays:        c.Days,
			StartDate:       c.StartDate,
			EndDate:         c.EndDate,
			InitialAbsences: c.InitialAbsences,
			AllowedAbsences: c.AllowedAbsences,
		}
		stats := j.calc.Stats(course, records)

		if prev, moved := j.recordRisk(course.ID, stats.Status); moved {
			changed++
			j.publishChange(course.ID, prev, stats)
		}
	}

	j.logger.Info("risk scan completed",
		"courses", len(enrolled),
		"changes", changed,
	)

	return nil
}

// recordRisk stores the new risk level and reports the previous one and
// whether it changed since the last scan. The first sighting of a course
// never counts as a change.
func (j *RiskScanJob) recordRisk(courseID string, level attendance.RiskLevel) (attendance.RiskLevel, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	prev, seen := j.lastRisk[courseID]
	j.lastRisk[courseID] = level
	return prev, seen && prev != level
}

// publishChange emits the risk-changed event.
func (j *RiskScanJob) publishChange(courseID string, prev attendance.RiskLevel, stats attendance.Stats) {
	if j.publisher == nil {
		return
	}

	event := shared.NewAttendanceRiskChangedEvent(courseID, string(prev), string(stats.Status), stats.Percentage)
	if err := j.publisher.Publish(event); err != nil {
		j.logger.Error("failed to publish risk change", "course_id", courseID, "error", err)
	}
}
