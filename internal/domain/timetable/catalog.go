package timetable

import (
	"sort"
	"strings"
)

// Catalog maps a section name to its course offerings. It is built in one
// pass over the full week's entries and must be treated as immutable once
// published; refreshes rebuild it wholesale.
type Catalog map[string][]CourseOffering

// BuildCatalog aggregates per-day session entries into a section-keyed
// catalog. Entries sharing (CourseCode, Section) fold into a single
// offering whose sessions are kept in first-appearance order; credit
// hours equal the number of distinct weekly sessions. The builder
// performs no validation beyond grouping: garbage cells that survived
// the parser become garbage catalog entries.
func BuildCatalog(entries []SessionEntry) Catalog {
	bySection := make(map[string][]SessionEntry)
	for _, e := range entries {
		bySection[e.Section] = append(bySection[e.Section], e)
	}

	catalog := make(Catalog, len(bySection))
	for section, sectionEntries := range bySection {
		catalog[section] = aggregateSection(sectionEntries)
	}
	return catalog
}

// aggregateSection folds one section's entries into offerings, preserving
// the order in which each (course, section) pair first appeared.
func aggregateSection(entries []SessionEntry) []CourseOffering {
	byCourse := make(map[string]*CourseOffering)
	var order []string

	for _, e := range entries {
		key := e.CourseCode + "-" + e.Section
		session := Session{
			Day:        e.Day,
			TimeSlot:   e.TimeSlot,
			Room:       e.Room,
			SlotNumber: e.SlotNumber,
			SlotCount:  e.SlotCount,
		}

		if offering, ok := byCourse[key]; ok {
			offering.Sessions = append(offering.Sessions, session)
			continue
		}

		byCourse[key] = &CourseOffering{
			CourseCode: e.CourseCode,
			CourseName: e.CourseName,
			Section:    e.Section,
			Instructor: e.Instructor,
			Sessions:   []Session{session},
		}
		order = append(order, key)
	}

	offerings := make([]CourseOffering, 0, len(order))
	for _, key := range order {
		offering := byCourse[key]
		offering.CreditHours = len(offering.Sessions)

		first := offering.Sessions[0]
		offering.Day = first.Day
		offering.TimeSlot = first.TimeSlot
		offering.Room = first.Room
		offering.SlotNumber = first.SlotNumber
		offering.SlotCount = first.SlotCount

		offerings = append(offerings, *offering)
	}
	return offerings
}

// Sections returns all section names in the catalog, sorted.
func (c Catalog) Sections() []string {
	sections := make([]string, 0, len(c))
	for s := range c {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	return sections
}

// BySection returns the offerings for a section name, matched
// case-insensitively. An unknown section yields an empty slice, never an
// error.
func (c Catalog) BySection(section string) []CourseOffering {
	offerings, ok := c[strings.ToUpper(strings.TrimSpace(section))]
	if !ok {
		return []CourseOffering{}
	}
	return offerings
}

// Len returns the total number of offerings across all sections.
func (c Catalog) Len() int {
	n := 0
	for _, offerings := range c {
		n += len(offerings)
	}
	return n
}
