// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package attendance

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date bucket format used throughout the engine.
const DateLayout = "2006-01-02"

// hoursPerDay is the hour-of-day bucket domain size.
const hoursPerDay = 24

// weekdayNames maps the 0=Sunday..6=Saturday bucket index to its label.
var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// HourBucket returns the hour-of-day bucket (0-23) for a timestamp, in the
// stored/local time zone as recorded. No time-zone conversion is performed.
func HourBucket(t time.Time) int {
	return t.Hour()
}

// HourLabel formats an hour bucket as "HH:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// DateBucket returns the calendar-date bucket ("YYYY-MM-DD") for a timestamp.
func DateBucket(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekdayBucket returns the day-of-week bucket (0=Sunday..6=Saturday),
// computed from the date component only.
func WeekdayBucket(t time.Time) int {
	return int(t.Weekday())
}

// WeekdayLabel returns the name for a day-of-week bucket index.
func WeekdayLabel(weekday int) string {
	return weekdayNames[((weekday%7)+7)%7]
}

// WeekOf returns the week containing date, anchored on the given weekday:
// the week ends on the nearest date on/after the event's date that falls on
// the anchor weekday, and starts six days earlier. A date on the anchor
// weekday itself belongs to the week ending that same day, so every week is
// exactly seven calendar days and is never clipped to a query range.
func WeekOf(date time.Time, anchor time.Weekday) (start, end time.Time) {
	daysUntil := (int(anchor) - int(date.Weekday()) + 7) % 7
	end = date.AddDate(0, 0, daysUntil)
	start = end.AddDate(0, 0, -6)
	return start, end
}

// parseDate parses a "YYYY-MM-DD" string, wrapping failures in
// ErrInvalidRange.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidRange, s)
	}
	return t, nil
}

// datesInRange returns every calendar date in [start, end] inclusive.
func datesInRange(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
