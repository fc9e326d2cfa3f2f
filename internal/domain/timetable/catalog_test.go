package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

func sessionEntry(code, section string, day shared.Weekday, slot int) SessionEntry {
	table := DefaultSlotTable()
	return SessionEntry{
		CourseCode: code,
		CourseName: DefaultCourseNames().Resolve(code),
		Section:    section,
		Instructor: "TBA",
		Room:       "E-1",
		Day:        day,
		TimeSlot:   table.Label(slot),
		SlotNumber: slot,
		SlotCount:  1,
	}
}

func TestBuildCatalog_FoldsSameCourseAcrossDays(t *testing.T) {
	entries := []SessionEntry{
		sessionEntry("DAA", "BCS-5B", shared.Monday, 2),
		sessionEntry("DAA", "BCS-5B", shared.Wednesday, 4),
	}

	catalog := BuildCatalog(entries)
	offerings := catalog.BySection("BCS-5B")

	require.Len(t, offerings, 1)
	o := offerings[0]
	assert.Len(t, o.Sessions, 2)
	assert.Equal(t, 2, o.CreditHours)
	assert.Equal(t, shared.Monday, o.Sessions[0].Day)
	assert.Equal(t, shared.Wednesday, o.Sessions[1].Day)
}

func TestBuildCatalog_MirrorFieldsComeFromFirstSession(t *testing.T) {
	entries := []SessionEntry{
		sessionEntry("DBS", "BCS-3A", shared.Tuesday, 1),
		sessionEntry("DBS", "BCS-3A", shared.Thursday, 5),
	}

	o := BuildCatalog(entries).BySection("BCS-3A")[0]

	assert.Equal(t, shared.Tuesday, o.Day)
	assert.Equal(t, "09:00-09:45", o.TimeSlot)
	assert.Equal(t, 1, o.SlotNumber)
}

func TestBuildCatalog_PreservesFirstSeenOrder(t *testing.T) {
	entries := []SessionEntry{
		sessionEntry("TOA", "BCS-3A", shared.Monday, 1),
		sessionEntry("DBS", "BCS-3A", shared.Monday, 2),
		sessionEntry("TOA", "BCS-3A", shared.Wednesday, 1),
	}

	offerings := BuildCatalog(entries).BySection("BCS-3A")

	require.Len(t, offerings, 2)
	assert.Equal(t, "TOA", offerings[0].CourseCode)
	assert.Equal(t, "DBS", offerings[1].CourseCode)
	assert.Equal(t, 2, offerings[0].CreditHours)
	assert.Equal(t, 1, offerings[1].CreditHours)
}

func TestCatalog_BySectionUnknownYieldsEmpty(t *testing.T) {
	catalog := BuildCatalog(nil)

	offerings := catalog.BySection("BCS-9Z")
	assert.NotNil(t, offerings)
	assert.Empty(t, offerings)
}

func TestCatalog_BySectionIsCaseInsensitive(t *testing.T) {
	catalog := BuildCatalog([]SessionEntry{sessionEntry("DAA", "BCS-5B", shared.Monday, 2)})

	assert.Len(t, catalog.BySection(" bcs-5b "), 1)
}

func TestCatalog_SectionsSorted(t *testing.T) {
	catalog := BuildCatalog([]SessionEntry{
		sessionEntry("DAA", "BCS-5B", shared.Monday, 2),
		sessionEntry("DBS", "BCS-3A", shared.Monday, 1),
	})

	assert.Equal(t, []string{"BCS-3A", "BCS-5B"}, catalog.Sections())
}

func TestCatalog_SameCourseDifferentSectionsStaySeparate(t *testing.T) {
	catalog := BuildCatalog([]SessionEntry{
		sessionEntry("DAA", "BCS-5B", shared.Monday, 2),
		sessionEntry("DAA", "BCS-5F", shared.Monday, 3),
	})

	assert.Len(t, catalog.BySection("BCS-5B"), 1)
	assert.Len(t, catalog.BySection("BCS-5F"), 1)
	assert.Equal(t, 2, catalog.Len())
}
