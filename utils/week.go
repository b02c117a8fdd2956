package utils

import "time"

// DayStart zeroes the time-of-day, keeping the location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday of the week containing t, time zeroed.
// Sunday counts as the last day of its week, so it maps to the previous
// Monday rather than the next one.
func WeekStart(t time.Time) time.Time {
	d := DayStart(t)
	offset := int(d.Weekday()) - 1
	if d.Weekday() == time.Sunday {
		offset = 6
	}
	return d.AddDate(0, 0, -offset)
}
