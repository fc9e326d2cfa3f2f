package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKarachiTZOffset(t *testing.T) {
	_, offset := Date(2026, 3, 2).Zone()
	assert.Equal(t, 5*60*60, offset)
}

func TestStartOfWeek(t *testing.T) {
	// 2026-03-04 is a Wednesday.
	wednesday := DateTime(2026, 3, 4, 14, 30, 0)

	start := StartOfWeek(wednesday)

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, "2026-03-02", FormatDateStr(start))
	assert.Equal(t, 0, start.Hour())
}

func TestStartOfWeek_SundayBelongsToPrecedingMonday(t *testing.T) {
	sunday := Date(2026, 3, 8)

	assert.Equal(t, "2026-03-02", FormatDateStr(StartOfWeek(sunday)))
}

func TestDaysBetween(t *testing.T) {
	a := Date(2026, 3, 2)
	b := Date(2026, 3, 9)

	assert.Equal(t, 7, DaysBetween(a, b))
	assert.Equal(t, 7, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestCountWeekdayOccurrences(t *testing.T) {
	// Four full weeks: 2026-03-02 (Mon) through 2026-03-29 (Sun).
	start := Date(2026, 3, 2)
	end := Date(2026, 3, 29)

	mondays := CountWeekdayOccurrences(start, end, []time.Weekday{time.Monday})
	assert.Equal(t, 4, mondays)

	monWed := CountWeekdayOccurrences(start, end, []time.Weekday{time.Monday, time.Wednesday})
	assert.Equal(t, 8, monWed)
}

func TestCountWeekdayOccurrences_InclusiveBounds(t *testing.T) {
	monday := Date(2026, 3, 2)

	assert.Equal(t, 1, CountWeekdayOccurrences(monday, monday, []time.Weekday{time.Monday}))
}

func TestCountWeekdayOccurrences_Degenerate(t *testing.T) {
	start := Date(2026, 3, 9)
	end := Date(2026, 3, 2)

	assert.Equal(t, 0, CountWeekdayOccurrences(start, end, []time.Weekday{time.Monday}))
	assert.Equal(t, 0, CountWeekdayOccurrences(end, start, nil))
}

func TestNextTeachingDay_SkipsWeekend(t *testing.T) {
	// 2026-03-06 is a Friday.
	friday := DateTime(2026, 3, 6, 11, 0, 0)

	next := NextTeachingDay(friday)

	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, "2026-03-09", FormatDateStr(next))
}

func TestParseDateKarachi(t *testing.T) {
	parsed, err := ParseDateKarachi("2026-03-02")
	require.NoError(t, err)

	assert.Equal(t, time.Monday, parsed.Weekday())
	_, offset := parsed.Zone()
	assert.Equal(t, 5*60*60, offset)

	_, err = ParseDateKarachi("02/03/2026")
	assert.Error(t, err)
}

func TestIsClassHours(t *testing.T) {
	assert.True(t, IsClassHours(DateTime(2026, 3, 2, 9, 0, 0)))
	assert.True(t, IsClassHours(DateTime(2026, 3, 2, 15, 59, 0)))
	assert.False(t, IsClassHours(DateTime(2026, 3, 2, 16, 0, 0)))
	assert.False(t, IsClassHours(DateTime(2026, 3, 2, 8, 59, 0)))
}
