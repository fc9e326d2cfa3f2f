package enrollment

import "context"

// Repository abstracts the enrollment store. Implementations live in the
// infrastructure layer (PostgreSQL in production, in-memory in tests).
type Repository interface {
	// Create persists a new enrolled course.
	Create(ctx context.Context, course *EnrolledCourse) error

	// GetByID returns one enrolled course.
	GetByID(ctx context.Context, id string) (*EnrolledCourse, error)

	// List returns the full enrollment list, oldest first.
	List(ctx context.Context) ([]EnrolledCourse, error)

	// Update persists changes to an enrolled course.
	Update(ctx context.Context, course *EnrolledCourse) error

	// Delete removes an enrolled course.
	Delete(ctx context.Context, id string) error
}
