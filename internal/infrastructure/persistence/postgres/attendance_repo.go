// Package postgres implements PostgreSQL persistence layer for Campus Schedule Hub.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/attendance"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AttendanceRepository implements attendance.Repository for PostgreSQL.
type AttendanceRepository struct {
	conn *Connection
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(conn *Connection) *AttendanceRepository {
	return &AttendanceRepository{conn: conn}
}

// Create persists a new attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, rec *attendance.Record) error {
	date, err := time.Parse(attendance.DateLayout, rec.Date)
	if err != nil {
		return shared.ErrInvalidDate
	}

	query := `
		INSERT INTO attendance_records (id, course_id, date, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.conn.Exec(ctx, query,
		rec.ID,
		rec.CourseID,
		date,
		string(rec.Status),
		rec.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrDuplicateRecord
		}
		if IsForeignKeyViolation(err) {
			return shared.ErrEnrollmentNotFound
		}
		return fmt.Errorf("failed to create attendance record: %w", err)
	}

	return nil
}

// ListByCourse returns all records for one course, oldest first.
func (r *AttendanceRepository) ListByCourse(ctx context.Context, courseID string) ([]attendance.Record, error) {
	query := `
		SELECT id, course_id, date, status, created_at
		FROM attendance_records
		WHERE course_id = $1
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.conn.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return r.collectRecords(rows)
}

// ListAll returns every record, oldest first.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]attendance.Record, error) {
	query := `
		SELECT id, course_id, date, status, created_at
		FROM attendance_records
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return r.collectRecords(rows)
}

// DeleteByCourse removes all records for one course.
func (r *AttendanceRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM attendance_records WHERE course_id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance records: %w", err)
	}
	return nil
}

// collectRecords drains the rows into domain records.
func (r *AttendanceRepository) collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		var (
			rec    attendance.Record
			date   time.Time
			status string
		)

		if err := rows.Scan(&rec.ID, &rec.CourseID, &date, &status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}

		rec.Date = date.Format(attendance.DateLayout)
		rec.Status = attendance.Status(status)
		records = append(records, rec)
	}

	return records, rows.Err()
}
