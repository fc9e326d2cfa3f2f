package timetable

import (
	"context"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// GridSource provides the raw published grid for each teaching day.
// The production implementation downloads CSV exports; tests feed
// literal strings.
type GridSource interface {
	// FetchDay returns the raw grid text for one teaching day.
	FetchDay(ctx context.Context, day shared.Weekday) (string, error)

	// Days lists the teaching days this source can provide.
	Days() []shared.Weekday
}

// CatalogStore persists a built catalog together with its build time so
// callers can judge staleness.
type CatalogStore interface {
	// Save stores the catalog, replacing any previous one.
	Save(ctx context.Context, catalog Catalog, builtAt time.Time) error

	// Load returns the stored catalog and when it was built.
	// Returns shared.ErrCatalogNotBuilt when nothing has been imported yet.
	Load(ctx context.Context) (Catalog, time.Time, error)
}
