// Package timetable turns raw room-by-slot grid exports into a normalized
// catalog of course offerings. It is the ingestion core of the service:
// a fail-soft cell parser, a lab multi-slot merge heuristic, and a
// section-keyed aggregation step. The package has zero external
// dependencies and every operation is a pure function over its inputs.
package timetable

import "github.com/campus-hub/campus-schedule-hub/internal/domain/shared"

// SessionEntry is one occurrence of a course on one day, produced from a
// single grid cell. Immutable once produced.
type SessionEntry struct {
	CourseCode string         `json:"courseCode"`
	CourseName string         `json:"courseName"`
	Section    string         `json:"section"`
	Instructor string         `json:"instructor"`
	Room       string         `json:"room"`
	Day        shared.Weekday `json:"day"`
	TimeSlot   string         `json:"timeSlot"`
	SlotNumber int            `json:"slotNumber"`
	SlotCount  int            `json:"slotCount"`
}

// Session is one weekly occurrence of an offering, kept on the offering's
// sessions list.
type Session struct {
	Day        shared.Weekday `json:"day"`
	TimeSlot   string         `json:"timeSlot"`
	Room       string         `json:"room"`
	SlotNumber int            `json:"slotNumber"`
	SlotCount  int            `json:"slotCount"`
}

// CourseOffering is the canonical catalog unit, identified by
// (CourseCode, Section). CreditHours always equals len(Sessions) after
// aggregation: one distinct weekly session counts as one credit hour
// regardless of how many table slots it occupies.
type CourseOffering struct {
	CourseCode  string    `json:"courseCode"`
	CourseName  string    `json:"courseName"`
	Section     string    `json:"section"`
	Instructor  string    `json:"instructor"`
	CreditHours int       `json:"creditHours"`
	Sessions    []Session `json:"sessions"`

	// Mirror fields of Sessions[0], kept for callers that predate the
	// sessions list.
	Day        shared.Weekday `json:"day"`
	TimeSlot   string         `json:"timeSlot"`
	Room       string         `json:"room"`
	SlotNumber int            `json:"slotNumber"`
	SlotCount  int            `json:"slotCount"`
}
