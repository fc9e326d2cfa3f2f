package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// gridHeader is the four header rows every published grid starts with.
const gridHeader = "FAST School of Computing,,,,,,,,,\n" +
	"Slots,1,2,3,4,5,6,7,8,9\n" +
	"Time,09:00-09:45,09:45-10:30,10:30-11:15,11:15-12:00,12:00-12:45,12:45-13:30,13:30-14:15,14:15-15:00,15:00-15:45\n" +
	"CLASSROOMS,,,,,,,,,\n"

func TestParseDay_SingleCell(t *testing.T) {
	raw := gridHeader +
		"E-1,,\"DAA BCS-5B\nFahad Sherwani\",,,,,,,\n"

	p := NewParser(DefaultConfig())
	entries := p.ParseDay(raw, shared.Monday)

	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "DAA", e.CourseCode)
	assert.Equal(t, "Design & Analysis of Algorithms", e.CourseName)
	assert.Equal(t, "BCS-5B", e.Section)
	assert.Equal(t, "Fahad Sherwani", e.Instructor)
	assert.Equal(t, "E-1", e.Room)
	assert.Equal(t, shared.Monday, e.Day)
	assert.Equal(t, "09:45-10:30", e.TimeSlot)
	assert.Equal(t, 2, e.SlotNumber)
	assert.Equal(t, 1, e.SlotCount)
}

func TestParseDay_MissingInstructorDefaultsToTBA(t *testing.T) {
	raw := gridHeader + "E-2,DBS BCS-3A,,,,,,,,\n"

	entries := NewParser(DefaultConfig()).ParseDay(raw, shared.Tuesday)

	require.Len(t, entries, 1)
	assert.Equal(t, "TBA", entries[0].Instructor)
}

func TestParseDay_RoomCarryForward(t *testing.T) {
	raw := gridHeader +
		"Lab-1,DBS BCS-3A,,,,,,,,\n" +
		",,TOA BCS-3A,,,,,,,\n"

	entries := NewParser(DefaultConfig()).ParseDay(raw, shared.Monday)

	require.Len(t, entries, 2)
	assert.Equal(t, "Lab-1", entries[0].Room)
	assert.Equal(t, "Lab-1", entries[1].Room)
}

func TestParseDay_MultiSlotLabMerge(t *testing.T) {
	// CN Lab at slot 4 followed by two blank slots spans 11:15-13:30.
	raw := gridHeader +
		"Lab-3,,,,\"CN Lab BCS-5F\nSameer\",,,DAA BCS-5F,,\n"

	entries := NewParser(DefaultConfig()).ParseDay(raw, shared.Wednesday)

	require.Len(t, entries, 2)
	lab := entries[0]
	assert.Equal(t, "CN Lab", lab.CourseCode)
	assert.Equal(t, 3, lab.SlotCount)
	assert.Equal(t, "11:15-13:30", lab.TimeSlot)
	assert.Equal(t, 4, lab.SlotNumber)

	// The non-lab course after the gap is untouched.
	assert.Equal(t, "DAA", entries[1].CourseCode)
	assert.Equal(t, 1, entries[1].SlotCount)
}

func TestParseDay_MergeNeverLooksPastTwoSlots(t *testing.T) {
	// Three blank slots after the lab: only two are absorbed.
	raw := gridHeader +
		"Lab-3,,,\"OS Lab BCS-5A\nKiran\",,,,DAA BCS-5A,,\n"

	entries := NewParser(DefaultConfig()).ParseDay(raw, shared.Monday)

	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].SlotCount)
	assert.Equal(t, "10:30-12:45", entries[0].TimeSlot)
}

func TestParseDay_NonLabNeverMerges(t *testing.T) {
	raw := gridHeader +
		"E-5,,,,\"DAA BCS-5B\nFahad\",,,,,\n"

	entries := NewParser(DefaultConfig()).ParseDay(raw, shared.Monday)

	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].SlotCount)
	assert.Equal(t, "11:15-12:00", entries[0].TimeSlot)
}

func TestParseDay_MergeStopsAtNonBlankCell(t *testing.T) {
	// Blank run interrupted at slot+1: no merge at all.
	raw := gridHeader +
		"Lab-2,,,\"DBS Lab BCS-3B\nAsma\",TOA BCS-3B,,,,,\n"

	entries := NewParser(DefaultConfig()).ParseDay(raw, shared.Thursday)

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].SlotCount)
}

func TestParseDay_SkipsReservedAndMalformedCells(t *testing.T) {
	raw := gridHeader +
		"E-1,Reserved,no section here,\"DAA BCS-5B\nFahad\",,,,,,\n"

	entries := NewParser(DefaultConfig()).ParseDay(raw, shared.Friday)

	require.Len(t, entries, 1)
	assert.Equal(t, "DAA", entries[0].CourseCode)
}

func TestParseDay_SectionOnlyCellYieldsNothing(t *testing.T) {
	// A first line with no course code before the section token.
	raw := gridHeader + "E-1, BCS-5B,,,,,,,,\n"

	entries := NewParser(DefaultConfig()).ParseDay(raw, shared.Monday)
	assert.Empty(t, entries)
}

func TestParseDay_DiscardsParenthesizedAnnotation(t *testing.T) {
	raw := gridHeader +
		"E-9,\"CS4048-Data Sci. BCS-6B  (F,G,H,J)\nMaheen\",,,,,,,,\n"

	entries := NewParser(DefaultConfig()).ParseDay(raw, shared.Monday)

	require.Len(t, entries, 1)
	assert.Equal(t, "CS4048-Data Sci.", entries[0].CourseCode)
	assert.Equal(t, "BCS-6B", entries[0].Section)
}

func TestParseDay_UnknownCodeFallsBackToCode(t *testing.T) {
	raw := gridHeader + "E-1,XYZQ BCS-1A,,,,,,,,\n"

	entries := NewParser(DefaultConfig()).ParseDay(raw, shared.Monday)

	require.Len(t, entries, 1)
	assert.Equal(t, "XYZQ", entries[0].CourseName)
}

func TestParseWeek_DeterministicDayOrder(t *testing.T) {
	grids := map[shared.Weekday]string{
		shared.Wednesday: gridHeader + "E-1,DAA BCS-5B,,,,,,,,\n",
		shared.Monday:    gridHeader + "E-1,,DBS BCS-5B,,,,,,,\n",
	}

	entries := NewParser(DefaultConfig()).ParseWeek(grids)

	require.Len(t, entries, 2)
	assert.Equal(t, shared.Monday, entries[0].Day)
	assert.Equal(t, shared.Wednesday, entries[1].Day)
}
