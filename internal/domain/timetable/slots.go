package timetable

import (
	"fmt"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// Slot Table
// ═══════════════════════════════════════════════════════════════════════════

// SlotTable maps 1-based slot numbers to fixed clock ranges. The grid
// publishes one column per slot; the table is static configuration loaded
// at startup, and schema drift in the source (slot count, times) is
// handled by swapping the table, not the parser.
type SlotTable struct {
	ranges []shared.TimeRange
}

// NewSlotTable builds a table from ordered "HH:MM-HH:MM" range strings.
func NewSlotTable(ranges ...string) SlotTable {
	t := SlotTable{ranges: make([]shared.TimeRange, 0, len(ranges))}
	for _, r := range ranges {
		t.ranges = append(t.ranges, shared.ParseTimeRange(r))
	}
	return t
}

// DefaultSlotTable returns the nine 45-minute slots of the source grid,
// 09:00 through 15:45.
func DefaultSlotTable() SlotTable {
	return NewSlotTable(
		"09:00-09:45",
		"09:45-10:30",
		"10:30-11:15",
		"11:15-12:00",
		"12:00-12:45",
		"12:45-13:30",
		"13:30-14:15",
		"14:15-15:00",
		"15:00-15:45",
	)
}

// Count returns the number of slots in the table.
func (t SlotTable) Count() int {
	return len(t.ranges)
}

// Range returns the clock range for a 1-based slot number.
func (t SlotTable) Range(slot int) (shared.TimeRange, bool) {
	if slot < 1 || slot > len(t.ranges) {
		return shared.TimeRange{}, false
	}
	return t.ranges[slot-1], true
}

// Label returns the display label for a slot: the clock range when the
// slot is known, or a generic "Slot N" placeholder otherwise.
func (t SlotTable) Label(slot int) string {
	if r, ok := t.Range(slot); ok {
		return r.String()
	}
	return fmt.Sprintf("Slot %d", slot)
}

// End returns the end clock time of a slot, falling back to the empty
// string for unknown slots.
func (t SlotTable) End(slot int) string {
	if r, ok := t.Range(slot); ok {
		return r.End
	}
	return ""
}
