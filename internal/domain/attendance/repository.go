package attendance

import "context"

// Repository abstracts the attendance-record store. Implementations live
// in the infrastructure layer.
type Repository interface {
	// Create persists a new attendance record.
	Create(ctx context.Context, record *Record) error

	// ListByCourse returns all records for one course, oldest first.
	ListByCourse(ctx context.Context, courseID string) ([]Record, error)

	// ListAll returns every record, oldest first. The engines filter by
	// course themselves; one snapshot serves a whole summary.
	ListAll(ctx context.Context) ([]Record, error)

	// DeleteByCourse removes all records for one course (used when the
	// course itself is dropped).
	DeleteByCourse(ctx context.Context, courseID string) error
}
