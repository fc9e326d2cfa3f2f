// Package shared contains common domain types, errors, and value objects.
package shared

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO date format ("2006-01-02") used on wire and
// storage dates across the hub.
const DateLayout = "2006-01-02"

// ═══════════════════════════════════════════════════════════════════════════
// Weekday Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Weekday is a full weekday name as it appears in the source grid
// ("Monday", "Tuesday", ...). The zero value is invalid.
type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// TeachingDays are the weekdays on which grid files are published.
var TeachingDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// IsValid checks that the weekday is one of the seven canonical names.
func (w Weekday) IsValid() bool {
	switch w {
	case Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday:
		return true
	default:
		return false
	}
}

// String returns the weekday name.
func (w Weekday) String() string {
	return string(w)
}

// Number maps the weekday to time.Weekday (Sunday = 0).
func (w Weekday) Number() time.Weekday {
	switch w {
	case Sunday:
		return time.Sunday
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	default:
		return time.Monday
	}
}

// ParseWeekday resolves a weekday name case-insensitively.
func ParseWeekday(s string) (Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return Sunday, true
	case "monday":
		return Monday, true
	case "tuesday":
		return Tuesday, true
	case "wednesday":
		return Wednesday, true
	case "thursday":
		return Thursday, true
	case "friday":
		return Friday, true
	case "saturday":
		return Saturday, true
	default:
		return "", false
	}
}

// WeekdayFromTime converts a time.Weekday to its canonical name.
func WeekdayFromTime(d time.Weekday) Weekday {
	names := [...]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
	if d < time.Sunday || d > time.Saturday {
		return Monday
	}
	return names[d]
}

// IntersectWeekdays returns the weekdays present in both lists,
// in the order of the first list.
func IntersectWeekdays(a, b []Weekday) []Weekday {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[Weekday]struct{}, len(b))
	for _, d := range b {
		set[d] = struct{}{}
	}
	var out []Weekday
	for _, d := range a {
		if _, ok := set[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// ═══════════════════════════════════════════════════════════════════════════
// Clock Time Value Object
// ═══════════════════════════════════════════════════════════════════════════

// ClockMinutes converts a clock string to minutes since midnight.
// It accepts bare 24-hour forms ("9:00", "09:00") and 12-hour forms with
// an AM/PM marker anywhere in the string ("09:00 AM", "2:15pm").
// "12 AM" maps to 0, "12 PM" stays 12. Unparseable input yields 0, so a
// class with a garbage start time simply overlaps with nothing meaningful;
// the engines stay fail-soft.
func ClockMinutes(s string) int {
	if s == "" || !strings.Contains(s, ":") {
		return 0
	}

	lower := strings.ToLower(s)
	pm := strings.Contains(lower, "pm")
	am := strings.Contains(lower, "am")

	parts := strings.SplitN(s, ":", 2)
	hours := leadingInt(strings.TrimSpace(parts[0]))
	minutes := leadingInt(strings.TrimSpace(parts[1]))

	if pm && hours < 12 {
		hours += 12
	} else if am && hours == 12 {
		hours = 0
	}

	return hours*60 + minutes
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// leadingInt parses the leading decimal digits of s, ignoring the rest.
func leadingInt(s string) int {
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		seen = true
		n = n*10 + int(r-'0')
	}
	if !seen {
		return 0
	}
	return n
}

// ═══════════════════════════════════════════════════════════════════════════
// Time Range Value Object
// ═══════════════════════════════════════════════════════════════════════════

// TimeRange is a half-open clock interval rendered as "HH:MM-HH:MM".
type TimeRange struct {
	Start string
	End   string
}

// ParseTimeRange splits a "start-end" range string. A missing separator
// yields a range whose start and end are both the whole input.
func ParseTimeRange(s string) TimeRange {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return TimeRange{Start: s, End: s}
	}
	return TimeRange{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
}

// String renders the range back to "start-end" form.
func (r TimeRange) String() string {
	return r.Start + "-" + r.End
}

// StartMinutes returns the start boundary in minutes since midnight.
func (r TimeRange) StartMinutes() int {
	return ClockMinutes(r.Start)
}

// EndMinutes returns the end boundary in minutes since midnight.
func (r TimeRange) EndMinutes() int {
	return ClockMinutes(r.End)
}

// IsOrdered checks that the range starts before it ends.
func (r TimeRange) IsOrdered() bool {
	return r.StartMinutes() < r.EndMinutes()
}

// Overlaps reports whether two half-open intervals intersect.
// Back-to-back ranges sharing a boundary do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.StartMinutes() < other.EndMinutes() && other.StartMinutes() < r.EndMinutes()
}
