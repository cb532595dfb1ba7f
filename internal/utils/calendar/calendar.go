// Package calendar contains the date arithmetic shared by rate lookups and
// monthly volume windows.
package calendar

import "time"

const (
	// DateLayout is the calendar date format used by rates and command arguments.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the timestamp format of transaction records.
	DateTimeLayout = "2006-01-02 15:04:05"
	// MonthLayout keys monthly aggregates.
	MonthLayout = "2006-01"
)

// DateOnly returns midnight UTC of the calendar day t falls on in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns the first instant of the month containing t, in t's location.
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// MonthWindow returns the half-open interval [start, end) covering t's month.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := FirstOfMonth(t)
	return start, start.AddDate(0, 1, 0)
}

// FirstOfPreviousMonth returns the first instant of the month before t's month.
func FirstOfPreviousMonth(t time.Time) time.Time {
	return FirstOfMonth(t).AddDate(0, -1, 0)
}

// MonthKey formats the year and month of t, e.g. "2024-01".
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// ParseDateTime parses a "YYYY-MM-DD HH:MM:SS" timestamp as UTC.
func ParseDateTime(value string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, value, time.UTC)
}
