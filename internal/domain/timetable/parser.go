package timetable

import (
	"regexp"
	"strings"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// sectionPattern matches a cohort token inside a cell's first line:
// two or more uppercase letters, an optional hyphen, digits, and up to
// two trailing uppercase letters, preceded by whitespace and followed by
// whitespace, an opening parenthesis, or end of line.
// Examples: "BCS-5B", "BDS3A", "BSE-10AB".
var sectionPattern = regexp.MustCompile(`\s+([A-Z]{2,}-?\d+[A-Z]{0,2})(?:\s|\(|$)`)

// maxMergeLookahead bounds how many blank slots after a lab cell may be
// folded into it. The source grids never stretch a lab past three slots.
const maxMergeLookahead = 2

// headerRows is the number of leading grid rows (title, slot index, slot
// times, column captions) that carry no room data.
const headerRows = 4

// Config carries the static lookup tables the parser needs. Both tables
// are immutable once the parser is constructed; schema drift in the
// source grid is absorbed by swapping tables, never by touching the
// tokenizer.
type Config struct {
	Slots SlotTable
	Names CourseNames
}

// DefaultConfig returns the tables matching the current source grid.
func DefaultConfig() Config {
	return Config{
		Slots: DefaultSlotTable(),
		Names: DefaultCourseNames(),
	}
}

// Parser converts one day's raw grid text into session entries.
type Parser struct {
	cfg Config
}

// NewParser creates a Parser with the given configuration. A zero slot
// table falls back to the default.
func NewParser(cfg Config) *Parser {
	if cfg.Slots.Count() == 0 {
		cfg.Slots = DefaultSlotTable()
	}
	if cfg.Names == nil {
		cfg.Names = DefaultCourseNames()
	}
	return &Parser{cfg: cfg}
}

// ParseDay parses one day's delimited grid text into a flat list of
// session entries. Parsing is fail-soft throughout: malformed cells,
// unmatched section tokens and "reserved" markers produce no entry, and
// a single bad cell never aborts the day.
func (p *Parser) ParseDay(raw string, day shared.Weekday) []SessionEntry {
	entries := []SessionEntry{}
	rows := splitGrid(raw)

	// Column 0 may be blank for rooms listed once and reused on
	// following rows.
	currentRoom := ""

	for i := headerRows; i < len(rows); i++ {
		columns := rows[i]
		if len(columns) == 0 {
			continue
		}

		if room := strings.TrimSpace(columns[0]); room != "" {
			currentRoom = room
		}

		for slot := 1; slot <= p.cfg.Slots.Count(); slot++ {
			if slot >= len(columns) || columns[slot] == "" {
				continue
			}

			entry, ok := p.parseCell(columns[slot], currentRoom, day, slot)
			if !ok {
				continue
			}

			blanks := p.blankRun(columns, slot)
			if isMultiSlotCandidate(entry, blanks) {
				p.mergeSlots(&entry, slot, blanks)
			}

			entries = append(entries, entry)
		}
	}

	return entries
}

// parseCell parses one grid cell. The first line has the shape
// "<course code> <section>", optionally followed by parenthesized
// annotations which are discarded; the second line, if present, is the
// instructor.
func (p *Parser) parseCell(cellText, room string, day shared.Weekday, slot int) (SessionEntry, bool) {
	trimmed := strings.TrimSpace(cellText)
	if trimmed == "" || strings.Contains(strings.ToLower(cellText), "reserved") {
		return SessionEntry{}, false
	}

	var lines []string
	for _, l := range strings.Split(cellText, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return SessionEntry{}, false
	}

	firstLine := lines[0]
	instructor := "TBA"
	if len(lines) > 1 {
		instructor = lines[1]
	}

	m := sectionPattern.FindStringSubmatchIndex(firstLine)
	if m == nil {
		return SessionEntry{}, false
	}

	section := firstLine[m[2]:m[3]]
	courseCode := strings.TrimSpace(firstLine[:m[0]])
	if courseCode == "" {
		return SessionEntry{}, false
	}

	return SessionEntry{
		CourseCode: courseCode,
		CourseName: p.cfg.Names.Resolve(courseCode),
		Section:    strings.ToUpper(section),
		Instructor: instructor,
		Room:       strings.TrimSpace(room),
		Day:        day,
		TimeSlot:   p.cfg.Slots.Label(slot),
		SlotNumber: slot,
		SlotCount:  1,
	}, true
}

// blankRun counts consecutive blank cells directly after slot in the same
// row, up to maxMergeLookahead and never past the slot table. A cell past
// the end of a ragged row counts as blank.
func (p *Parser) blankRun(columns []string, slot int) int {
	run := 0
	last := slot + maxMergeLookahead
	if last > p.cfg.Slots.Count() {
		last = p.cfg.Slots.Count()
	}
	for next := slot + 1; next <= last; next++ {
		if next < len(columns) && strings.TrimSpace(columns[next]) != "" {
			break
		}
		run++
	}
	return run
}

// isMultiSlotCandidate decides whether an entry followed by a run of
// blank cells should absorb them. The heuristic is deliberately narrow:
// only course codes containing "lab" qualify, and a run interrupted by
// any non-blank cell never resumes. It is an isolated predicate so the
// rule can be tuned without touching the tokenizer or the row walk.
func isMultiSlotCandidate(entry SessionEntry, lookaheadBlanks int) bool {
	return lookaheadBlanks >= 1 &&
		strings.Contains(strings.ToLower(entry.CourseCode), "lab")
}

// mergeSlots extends an entry over the blank run that follows it.
func (p *Parser) mergeSlots(entry *SessionEntry, slot, blanks int) {
	endSlot := slot + blanks
	endTime := p.cfg.Slots.End(endSlot)
	if endTime == "" {
		endTime = p.cfg.Slots.End(slot)
	}
	if endTime == "" {
		return
	}

	start := shared.ParseTimeRange(entry.TimeSlot).Start
	entry.TimeSlot = start + "-" + endTime
	entry.SlotCount = blanks + 1
}

// weekOrder fixes the iteration order for per-day grid maps so that
// first-appearance ordering in the catalog is deterministic.
var weekOrder = []shared.Weekday{
	shared.Monday,
	shared.Tuesday,
	shared.Wednesday,
	shared.Thursday,
	shared.Friday,
	shared.Saturday,
	shared.Sunday,
}

// ParseWeek parses the given per-day grid texts, in weekday order, and
// concatenates the results.
func (p *Parser) ParseWeek(grids map[shared.Weekday]string) []SessionEntry {
	var all []SessionEntry
	for _, day := range weekOrder {
		raw, ok := grids[day]
		if !ok {
			continue
		}
		all = append(all, p.ParseDay(raw, day)...)
	}
	return all
}
