package utils

import (
	"fmt"
	"time"
)

const (
	// ClockLayout is the wire format for clock times ("HH:mm", 24h).
	ClockLayout = "15:04"
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

// ParseDate parses a "2006-01-02" date at midnight in the given location.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// AnchorClock places an "HH:mm" clock time onto the calendar day of date,
// in date's location.
func AnchorClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// FormatClock renders an instant as local clock time.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}
