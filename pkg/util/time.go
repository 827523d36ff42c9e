package util

import (
	"time"
)

const YearMonthDayFormat = "2006-01-02"

// TruncateToDate returns midnight UTC of the calendar date of t in its own location
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateInRange reports whether the calendar date of t falls within start and end inclusive.
// A zero end means the range is open ended.
// Dates are compared in their own locations so 00:30+01:00 is still that calendar day.
func DateInRange(t time.Time, start time.Time, end time.Time) bool {
	date := TruncateToDate(t)

	if date.Before(TruncateToDate(start)) {
		return false
	}

	if !end.IsZero() && date.After(TruncateToDate(end)) {
		return false
	}

	return true
}
