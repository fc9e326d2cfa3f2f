package eventhandler

import (
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
	"github.com/campus-hub/campus-schedule-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ON CATALOG IMPORTED HANDLER
// Records each catalog import and refresh failure. Failures don't clear
// the previous catalog, so the log trail is how operators notice a dead
// export URL before students do.
// ══════════════════════════════════════════════════════════════════════════════

// OnCatalogImportedHandler handles catalog import lifecycle events.
type OnCatalogImportedHandler struct {
	log *logger.Logger
}

// NewOnCatalogImportedHandler creates a new OnCatalogImportedHandler.
func NewOnCatalogImportedHandler(log *logger.Logger) *OnCatalogImportedHandler {
	if log == nil {
		log = logger.Default()
	}
	return &OnCatalogImportedHandler{
		log: log.With(logger.Component("on_catalog_imported")),
	}
}

// Handle implements shared.EventHandler.
func (h *OnCatalogImportedHandler) Handle(event shared.Event) error {
	switch e := event.(type) {
	case shared.CatalogImportedEvent:
		h.log.Info("catalog imported",
			logger.EntryCount(e.EntryCount),
			logger.Int("section_count", e.SectionCount),
			logger.String("source", e.Source),
		)
	case shared.CatalogRefreshFailedEvent:
		h.log.Warn("catalog refresh failed, serving previous catalog",
			logger.String("reason", e.Reason),
		)
	default:
		h.log.Warn("received unexpected event", logger.String("event_type", string(event.EventType())))
	}
	return nil
}
