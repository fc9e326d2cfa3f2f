// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/timetable"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET CATALOG QUERY
// Serves one section's course offerings from the last imported catalog.
// A catalog older than the TTL is still served but flagged stale, so the
// UI can show it while a refresh runs in the background.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultCatalogTTL is how long an imported catalog counts as fresh.
const DefaultCatalogTTL = 24 * time.Hour

// GetCatalogQuery contains the parameters for a catalog lookup.
type GetCatalogQuery struct {
	// Section is the cohort identifier, e.g. "BCS-5B". Matching is
	// case-insensitive.
	Section string
}

// Validate validates the query parameters.
func (q GetCatalogQuery) Validate() error {
	if q.Section == "" {
		return shared.NewDomainError("query", "GetCatalog", shared.ErrEmptyValue, "section is required")
	}
	return nil
}

// GetCatalogResult contains one section's offerings.
type GetCatalogResult struct {
	// Section is the requested section.
	Section string `json:"section"`

	// Offerings are the section's courses in first-seen grid order.
	Offerings []timetable.CourseOffering `json:"offerings"`

	// BuiltAt is when the catalog was imported.
	BuiltAt time.Time `json:"builtAt"`

	// Stale indicates the catalog is older than the TTL.
	Stale bool `json:"stale"`
}

// GetCatalogHandler handles catalog lookups.
type GetCatalogHandler struct {
	store timetable.CatalogStore
	ttl   time.Duration
	now   func() time.Time
}

// NewGetCatalogHandler creates a new GetCatalogHandler. A zero ttl uses
// DefaultCatalogTTL.
func NewGetCatalogHandler(store timetable.CatalogStore, ttl time.Duration) *GetCatalogHandler {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &GetCatalogHandler{store: store, ttl: ttl, now: time.Now}
}

// Handle executes the catalog lookup.
func (h *GetCatalogHandler) Handle(ctx context.Context, query GetCatalogQuery) (*GetCatalogResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	catalog, builtAt, err := h.store.Load(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetCatalog", shared.ErrInvalidState, "failed to load catalog", err)
	}

	return &GetCatalogResult{
		Section:   query.Section,
		Offerings: catalog.BySection(query.Section),
		BuiltAt:   builtAt,
		Stale:     h.now().Sub(builtAt) > h.ttl,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GET SECTIONS QUERY
// Lists every section the imported catalog knows about.
// ══════════════════════════════════════════════════════════════════════════════

// GetSectionsResult lists the catalog's sections.
type GetSectionsResult struct {
	// Sections are sorted lexicographically.
	Sections []string `json:"sections"`

	// BuiltAt is when the catalog was imported.
	BuiltAt time.Time `json:"builtAt"`

	// Stale indicates the catalog is older than the TTL.
	Stale bool `json:"stale"`
}

// GetSectionsHandler handles section listing.
type GetSectionsHandler struct {
	store timetable.CatalogStore
	ttl   time.Duration
	now   func() time.Time
}

// NewGetSectionsHandler creates a new GetSectionsHandler.
func NewGetSectionsHandler(store timetable.CatalogStore, ttl time.Duration) *GetSectionsHandler {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &GetSectionsHandler{store: store, ttl: ttl, now: time.Now}
}

// Handle executes the section listing.
func (h *GetSectionsHandler) Handle(ctx context.Context) (*GetSectionsResult, error) {
	catalog, builtAt, err := h.store.Load(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetSections", shared.ErrInvalidState, "failed to load catalog", err)
	}

	return &GetSectionsResult{
		Sections: catalog.Sections(),
		BuiltAt:  builtAt,
		Stale:    h.now().Sub(builtAt) > h.ttl,
	}, nil
}
