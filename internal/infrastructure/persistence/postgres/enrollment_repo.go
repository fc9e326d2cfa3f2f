// Package postgres implements PostgreSQL persistence layer for Campus Schedule Hub.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLLMENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// EnrollmentRepository implements enrollment.Repository for PostgreSQL.
type EnrollmentRepository struct {
	conn *Connection
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(conn *Connection) *EnrollmentRepository {
	return &EnrollmentRepository{conn: conn}
}

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Create persists a new enrolled course.
func (r *EnrollmentRepository) Create(ctx context.Context, c *enrollment.EnrolledCourse) error {
	query := `
		INSERT INTO enrolled_courses (
			id, code, section, name, days, start_time, end_time, credit_hours,
			start_date, end_date, initial_absences, allowed_absences,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.conn.Exec(ctx, query,
		c.ID,
		c.Code,
		c.Section,
		c.Name,
		daysToStrings(c.Days),
		c.StartTime,
		c.EndTime,
		c.CreditHours,
		nullableDate(c.StartDate),
		nullableDate(c.EndDate),
		c.InitialAbsences,
		c.AllowedAbsences,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to create enrolled course: %w", err)
	}

	return nil
}

// GetByID returns one enrolled course by internal ID.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id string) (*enrollment.EnrolledCourse, error) {
	query := `
		SELECT id, code, section, name, days, start_time, end_time, credit_hours,
			   start_date, end_date, initial_absences, allowed_absences,
			   created_at, updated_at
		FROM enrolled_courses
		WHERE id = $1
	`

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanCourse(row)
}

// List returns the full enrollment list, oldest first.
func (r *EnrollmentRepository) List(ctx context.Context) ([]enrollment.EnrolledCourse, error) {
	query := `
		SELECT id, code, section, name, days, start_time, end_time, credit_hours,
			   start_date, end_date, initial_absences, allowed_absences,
			   created_at, updated_at
		FROM enrolled_courses
		ORDER BY created_at ASC
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled courses: %w", err)
	}
	defer rows.Close()

	var courses []enrollment.EnrolledCourse
	for rows.Next() {
		c, err := r.scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}

	return courses, rows.Err()
}

// Update persists changes to an enrolled course.
func (r *EnrollmentRepository) Update(ctx context.Context, c *enrollment.EnrolledCourse) error {
	query := `
		UPDATE enrolled_courses SET
			code = $1,
			section = $2,
			name = $3,
			days = $4,
			start_time = $5,
			end_time = $6,
			credit_hours = $7,
			start_date = $8,
			end_date = $9,
			initial_absences = $10,
			allowed_absences = $11,
			updated_at = $12
		WHERE id = $13
	`

	result, err := r.conn.Exec(ctx, query,
		c.Code,
		c.Section,
		c.Name,
		daysToStrings(c.Days),
		c.StartTime,
		c.EndTime,
		c.CreditHours,
		nullableDate(c.StartDate),
		nullableDate(c.EndDate),
		c.InitialAbsences,
		c.AllowedAbsences,
		time.Now().UTC(),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update enrolled course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrEnrollmentNotFound
	}

	return nil
}

// Delete removes an enrolled course. Attendance records go with it via
// the ON DELETE CASCADE on attendance_records.
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM enrolled_courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete enrolled course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrEnrollmentNotFound
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scanning Helpers
// ─────────────────────────────────────────────────────────────────────────────

// scanCourse scans a course from a row.
func (r *EnrollmentRepository) scanCourse(row pgx.Row) (*enrollment.EnrolledCourse, error) {
	var (
		c         enrollment.EnrolledCourse
		days      []string
		startDate *time.Time
		endDate   *time.Time
	)

	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Section,
		&c.Name,
		&days,
		&c.StartTime,
		&c.EndTime,
		&c.CreditHours,
		&startDate,
		&endDate,
		&c.InitialAbsences,
		&c.AllowedAbsences,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to scan enrolled course: %w", err)
	}

	c.Days = stringsToDays(days)
	if startDate != nil {
		c.StartDate = *startDate
	}
	if endDate != nil {
		c.EndDate = *endDate
	}

	return &c, nil
}

// daysToStrings converts weekdays to their stored names.
func daysToStrings(days []shared.Weekday) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, string(d))
	}
	return out
}

// stringsToDays converts stored names back to weekdays. Unknown names are
// dropped rather than failing the whole row.
func stringsToDays(names []string) []shared.Weekday {
	out := make([]shared.Weekday, 0, len(names))
	for _, name := range names {
		if day, ok := shared.ParseWeekday(name); ok {
			out = append(out, day)
		}
	}
	return out
}

// nullableDate maps the zero time to NULL.
func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
