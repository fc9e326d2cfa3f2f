// Package timeutil provides timezone utilities for Karachi timezone (UTC+5).
// All campus schedules are published in Pakistan Standard Time, so every
// date calculation in the hub pins to this zone.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// KarachiTZ is the Karachi timezone (UTC+5, no DST).
// Pakistan abandoned DST experiments in 2009, so this is constant year-round.
var KarachiTZ = time.FixedZone("Asia/Karachi", 5*60*60)

// Now returns the current time in Karachi timezone.
func Now() time.Time {
	return time.Now().In(KarachiTZ)
}

// ToKarachi converts a time to Karachi timezone.
func ToKarachi(t time.Time) time.Time {
	return t.In(KarachiTZ)
}

// ToUTC converts a time to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// Date creates a time in Karachi timezone with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, KarachiTZ)
}

// DateTime creates a time in Karachi timezone with the given date and time.
func DateTime(year, month, day, hour, min, sec int) time.Time {
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, KarachiTZ)
}

// StartOfDay returns the start of the day (00:00:00) in Karachi timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToKarachi(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, KarachiTZ)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in Karachi timezone.
func EndOfDay(t time.Time) time.Time {
	local := ToKarachi(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, KarachiTZ)
}

// StartOfWeek returns the start of the week (Monday 00:00:00) in Karachi timezone.
func StartOfWeek(t time.Time) time.Time {
	local := ToKarachi(t)
	weekday := int(local.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	daysToSubtract := weekday - 1 // Monday = 1
	return StartOfDay(local.AddDate(0, 0, -daysToSubtract))
}

// EndOfWeek returns the end of the week (Sunday 23:59:59) in Karachi timezone.
func EndOfWeek(t time.Time) time.Time {
	start := StartOfWeek(t)
	return EndOfDay(start.AddDate(0, 0, 6))
}

// IsToday checks if the given time is today in Karachi timezone.
func IsToday(t time.Time) bool {
	now := Now()
	local := ToKarachi(t)
	return local.Year() == now.Year() &&
		local.Month() == now.Month() &&
		local.Day() == now.Day()
}

// IsSameDay checks if two times are on the same day in Karachi timezone.
func IsSameDay(t1, t2 time.Time) bool {
	a, b := ToKarachi(t1), ToKarachi(t2)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DaysBetween calculates the number of days between two times.
func DaysBetween(t1, t2 time.Time) int {
	a := StartOfDay(t1)
	b := StartOfDay(t2)
	duration := b.Sub(a)
	days := int(duration.Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// IsWeekend checks if the given time is on a weekend.
// The teaching week runs Monday through Friday.
func IsWeekend(t time.Time) bool {
	local := ToKarachi(t)
	weekday := local.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsTeachingDay checks if the given time is on a teaching day (Mon-Fri).
func IsTeachingDay(t time.Time) bool {
	return !IsWeekend(t)
}

// NextTeachingDay returns the next teaching day (skipping weekends).
func NextTeachingDay(t time.Time) time.Time {
	next := ToKarachi(t).AddDate(0, 0, 1)
	for IsWeekend(next) {
		next = next.AddDate(0, 0, 1)
	}
	return StartOfDay(next)
}

// CountWeekdayOccurrences counts how many times any of the given weekdays
// occur between start and end, inclusive on both ends. This is how the
// total number of scheduled class meetings in a semester is derived from
// a course's meeting days. Returns 0 when end precedes start or no
// weekdays are given.
func CountWeekdayOccurrences(start, end time.Time, weekdays []time.Weekday) int {
	if len(weekdays) == 0 {
		return 0
	}
	from := StartOfDay(start)
	to := StartOfDay(end)
	if to.Before(from) {
		return 0
	}

	wanted := make(map[time.Weekday]bool, len(weekdays))
	for _, d := range weekdays {
		wanted[d] = true
	}

	count := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if wanted[day.Weekday()] {
			count++
		}
	}
	return count
}

// Class hours on campus.
const (
	// CampusOpenHour is when the first slot can start (9:00 AM).
	CampusOpenHour = 9
	// CampusCloseHour is when the last slot ends (4:00 PM).
	CampusCloseHour = 16
)

// IsClassHours checks if the given time is within class hours (9:00-16:00).
func IsClassHours(t time.Time) bool {
	local := ToKarachi(t)
	hour := local.Hour()
	return hour >= CampusOpenHour && hour < CampusCloseHour
}

// Common date/time formats.
const (
	// FormatDate is the standard date format (YYYY-MM-DD).
	FormatDate = "2006-01-02"
	// FormatTime is the standard time format (HH:MM).
	FormatTime = "15:04"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
	// FormatDateTimeSeconds includes seconds.
	FormatDateTimeSeconds = "2006-01-02 15:04:05"
	// FormatHumanDate is a human-readable format.
	FormatHumanDate = "2 January 2006"
	// FormatShortDate is a short format (Jan 2).
	FormatShortDate = "Jan 2"
)

// FormatKarachi formats a time in Karachi timezone with the given layout.
func FormatKarachi(t time.Time, layout string) string {
	return ToKarachi(t).Format(layout)
}

// FormatDateStr formats a time as a date string (YYYY-MM-DD) in Karachi timezone.
func FormatDateStr(t time.Time) string {
	return FormatKarachi(t, FormatDate)
}

// FormatTimeStr formats a time as a time string (HH:MM) in Karachi timezone.
func FormatTimeStr(t time.Time) string {
	return FormatKarachi(t, FormatTime)
}

// ParseKarachi parses a time string in Karachi timezone.
func ParseKarachi(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, KarachiTZ)
}

// ParseDateKarachi parses a date string (YYYY-MM-DD) in Karachi timezone.
func ParseDateKarachi(value string) (time.Time, error) {
	return ParseKarachi(FormatDate, value)
}

// ParseDateTimeKarachi parses a datetime string in Karachi timezone.
func ParseDateTimeKarachi(value string) (time.Time, error) {
	return ParseKarachi(FormatDateTime, value)
}
