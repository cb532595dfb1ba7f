package calendar_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindow(t *testing.T) {
	start, end := calendar.MonthWindow(time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC))

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthWindow_December(t *testing.T) {
	start, end := calendar.MonthWindow(time.Date(2023, time.December, 15, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestFirstOfPreviousMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid month", time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC), time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"end of month does not overflow", time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"january wraps year", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.FirstOfPreviousMonth(tt.in))
		})
	}
}

func TestDateOnly_KeepsCivilDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2024, time.May, 2, 1, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), calendar.DateOnly(in))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-01", calendar.MonthKey(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)))
}

func TestParse(t *testing.T) {
	d, err := calendar.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = calendar.ParseDate("2024-13-01")
	assert.Error(t, err)

	ts, err := calendar.ParseDateTime("2024-01-05 10:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC), ts)
}
