package shared

import (
	"encoding/json"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - these drive the event-driven architecture.
// Each event represents something significant that happened in the domain.
const (
	// Catalog events
	EventCatalogImported      EventType = "catalog.imported"
	EventCatalogRefreshFailed EventType = "catalog.refresh_failed"

	// Enrollment events
	EventCourseEnrolled EventType = "enrollment.course_added"
	EventCourseDropped  EventType = "enrollment.course_dropped"

	// Attendance events
	EventAttendanceRecorded    EventType = "attendance.recorded"
	EventAttendanceRiskChanged EventType = "attendance.risk_changed"

	// System events
	EventRefreshCompleted EventType = "system.refresh_completed"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	Version       int       `json:"version"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// WithCorrelationID sets the correlation ID for tracing.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// ═══════════════════════════════════════════════════════════════════════════
// Catalog Events
// ═══════════════════════════════════════════════════════════════════════════

// CatalogImportedEvent is emitted when a timetable import produces a fresh catalog.
type CatalogImportedEvent struct {
	BaseEvent
	EntryCount   int    `json:"entry_count"`
	SectionCount int    `json:"section_count"`
	Source       string `json:"source"` // e.g., "sheets", "upload"
}

// Payload implements Event interface.
func (e CatalogImportedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"entry_count":   e.EntryCount,
		"section_count": e.SectionCount,
		"source":        e.Source,
	}
}

// NewCatalogImportedEvent creates a new CatalogImportedEvent.
func NewCatalogImportedEvent(entryCount, sectionCount int, source string) CatalogImportedEvent {
	return CatalogImportedEvent{
		BaseEvent:    NewBaseEvent(EventCatalogImported, "catalog"),
		EntryCount:   entryCount,
		SectionCount: sectionCount,
		Source:       source,
	}
}

// CatalogRefreshFailedEvent is emitted when a scheduled refresh cannot
// produce a catalog. Consumers keep serving the stale one.
type CatalogRefreshFailedEvent struct {
	BaseEvent
	Reason string `json:"reason"`
}

// Payload implements Event interface.
func (e CatalogRefreshFailedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"reason": e.Reason,
	}
}

// NewCatalogRefreshFailedEvent creates a new CatalogRefreshFailedEvent.
func NewCatalogRefreshFailedEvent(reason string) CatalogRefreshFailedEvent {
	return CatalogRefreshFailedEvent{
		BaseEvent: NewBaseEvent(EventCatalogRefreshFailed, "catalog"),
		Reason:    reason,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Enrollment Events
// ═══════════════════════════════════════════════════════════════════════════

// CourseEnrolledEvent is emitted when a course is added to the student's schedule.
type CourseEnrolledEvent struct {
	BaseEvent
	CourseID   string `json:"course_id"`
	CourseCode string `json:"course_code"`
	Section    string `json:"section"`
	Forced     bool   `json:"forced"` // added despite a detected conflict
}

// Payload implements Event interface.
func (e CourseEnrolledEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_id":   e.CourseID,
		"course_code": e.CourseCode,
		"section":     e.Section,
		"forced":      e.Forced,
	}
}

// NewCourseEnrolledEvent creates a new CourseEnrolledEvent.
func NewCourseEnrolledEvent(courseID, courseCode, section string, forced bool) CourseEnrolledEvent {
	return CourseEnrolledEvent{
		BaseEvent:  NewBaseEvent(EventCourseEnrolled, courseID),
		CourseID:   courseID,
		CourseCode: courseCode,
		Section:    section,
		Forced:     forced,
	}
}

// CourseDroppedEvent is emitted when a course is removed from the schedule.
type CourseDroppedEvent struct {
	BaseEvent
	CourseID   string `json:"course_id"`
	CourseCode string `json:"course_code"`
	Section    string `json:"section"`
}

// Payload implements Event interface.
func (e CourseDroppedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_id":   e.CourseID,
		"course_code": e.CourseCode,
		"section":     e.Section,
	}
}

// NewCourseDroppedEvent creates a new CourseDroppedEvent.
func NewCourseDroppedEvent(courseID, courseCode, section string) CourseDroppedEvent {
	return CourseDroppedEvent{
		BaseEvent:  NewBaseEvent(EventCourseDropped, courseID),
		CourseID:   courseID,
		CourseCode: courseCode,
		Section:    section,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Attendance Events
// ═══════════════════════════════════════════════════════════════════════════

// AttendanceRecordedEvent is emitted for every recorded class status.
type AttendanceRecordedEvent struct {
	BaseEvent
	CourseID string `json:"course_id"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}

// Payload implements Event interface.
func (e AttendanceRecordedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_id": e.CourseID,
		"date":      e.Date,
		"status":    e.Status,
	}
}

// NewAttendanceRecordedEvent creates a new AttendanceRecordedEvent.
func NewAttendanceRecordedEvent(courseID, date, status string) AttendanceRecordedEvent {
	return AttendanceRecordedEvent{
		BaseEvent: NewBaseEvent(EventAttendanceRecorded, courseID),
		CourseID:  courseID,
		Date:      date,
		Status:    status,
	}
}

// AttendanceRiskChangedEvent is emitted when a course crosses a risk threshold.
type AttendanceRiskChangedEvent struct {
	BaseEvent
	CourseID   string  `json:"course_id"`
	OldStatus  string  `json:"old_status"`
	NewStatus  string  `json:"new_status"`
	Percentage float64 `json:"percentage"`
}

// Payload implements Event interface.
func (e AttendanceRiskChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_id":  e.CourseID,
		"old_status": e.OldStatus,
		"new_status": e.NewStatus,
		"percentage": e.Percentage,
	}
}

// Worsened returns true if the risk moved toward danger.
func (e AttendanceRiskChangedEvent) Worsened() bool {
	rank := map[string]int{"safe": 0, "warning": 1, "danger": 2}
	return rank[e.NewStatus] > rank[e.OldStatus]
}

// NewAttendanceRiskChangedEvent creates a new AttendanceRiskChangedEvent.
func NewAttendanceRiskChangedEvent(courseID, oldStatus, newStatus string, percentage float64) AttendanceRiskChangedEvent {
	return AttendanceRiskChangedEvent{
		BaseEvent:  NewBaseEvent(EventAttendanceRiskChanged, courseID),
		CourseID:   courseID,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		Percentage: percentage,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Envelope (for serialization and transport)
// ═══════════════════════════════════════════════════════════════════════════

// EventEnvelope wraps an event for transport/storage.
type EventEnvelope struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	AggregateID   string          `json:"aggregate_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
