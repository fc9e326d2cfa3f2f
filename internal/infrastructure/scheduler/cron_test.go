package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCronExpression(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{name: "every minute", expr: EveryMinute},
		{name: "daily cleanup", expr: EveryDay4AM},
		{name: "step", expr: "*/15 * * * *"},
		{name: "range", expr: "0 9-17 * * *"},
		{name: "list", expr: "0 8,12,16 * * *"},
		{name: "too few fields", expr: "* * * *", wantErr: true},
		{name: "minute out of range", expr: "61 * * * *", wantErr: true},
		{name: "garbage", expr: "a b c d e", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce, err := ParseCronExpression(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expr, ce.String())
		})
	}
}

func TestCronExpression_Next(t *testing.T) {
	// Wednesday 2025-09-10 13:37 local time.
	base := time.Date(2025, 9, 10, 13, 37, 42, 0, time.UTC)

	tests := []struct {
		expr string
		want time.Time
	}{
		{EveryMinute, time.Date(2025, 9, 10, 13, 38, 0, 0, time.UTC)},
		{EveryHour, time.Date(2025, 9, 10, 14, 0, 0, 0, time.UTC)},
		{EveryDay4AM, time.Date(2025, 9, 11, 4, 0, 0, 0, time.UTC)},
		{EveryDayMidnight, time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC)},
		{EverySunday, time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC)},
		{"*/15 * * * *", time.Date(2025, 9, 10, 13, 45, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ce := MustParseCronExpression(tt.expr)
			assert.Equal(t, tt.want, ce.Next(base))
		})
	}
}

func TestCronExpression_IsASchedule(t *testing.T) {
	// Register must accept a cron expression in place of an interval.
	var s Schedule = MustParseCronExpression(EveryDay4AM)
	next := s.Next(time.Date(2025, 9, 10, 5, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 9, 11, 4, 0, 0, 0, time.UTC), next)
}
