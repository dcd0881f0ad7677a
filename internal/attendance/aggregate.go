// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package attendance

import (
	"fmt"
	"sort"
	"time"

	"github.com/kestrelin/presencelog/internal/models"
)

// Mode selects how rows in a bucket are counted.
type Mode string

// Counting modes.
const (
	// ModeRaw counts every surviving row once (event volume).
	ModeRaw Mode = "raw"
	// ModeUnique counts distinct display names per bucket.
	ModeUnique Mode = "unique"
)

// ParseMode converts user input to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRaw, ModeUnique:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be raw or unique", s)
	}
}

// Granularity selects the bucketing rule.
type Granularity string

// Supported granularities.
const (
	GranularityHourly  Granularity = "hourly"
	GranularityDaily   Granularity = "daily"
	GranularityWeekday Granularity = "weekday"
	GranularityWeekly  Granularity = "weekly"
)

// DefaultAnchor is the default week anchor weekday: weeks end on Sunday.
const DefaultAnchor = time.Sunday

// counter accumulates per-bucket counts for one aggregation. In unique
// mode it tracks distinct display names per bucket key instead of a
// running total.
type counter struct {
	mode   Mode
	counts map[string]int
	seen   map[string]map[string]struct{}
}

func newCounter(mode Mode) *counter {
	return &counter{
		mode:   mode,
		counts: make(map[string]int),
		seen:   make(map[string]map[string]struct{}),
	}
}

func (c *counter) add(key, displayName string) {
	if c.mode == ModeUnique {
		names, ok := c.seen[key]
		if !ok {
			names = make(map[string]struct{})
			c.seen[key] = names
		}
		if _, dup := names[displayName]; dup {
			return
		}
		names[displayName] = struct{}{}
	}
	c.counts[key]++
}

func (c *counter) get(key string) int {
	return c.counts[key]
}

// Hourly aggregates events into hour-of-day buckets for the filter's date
// or range. Every one of the 24 hour slots appears in the output even with
// no matching rows, except when the requested single date is the current
// date of the injected clock: then only hours 0 through the current hour
// inclusive are returned, because later hours have not happened yet.
func Hourly(events []models.PresenceEvent, f *Filter, mode Mode, now time.Time) []models.AttendanceCount {
	c := newCounter(mode)
	for _, ev := range f.filterEvents(events) {
		c.add(HourLabel(HourBucket(ev.CreatedAt)), ev.DisplayName)
	}

	lastHour := hoursPerDay - 1
	if f.IsSingleDate() && DateBucket(f.StartDate()) == DateBucket(now) {
		lastHour = HourBucket(now)
	}

	out := make([]models.AttendanceCount, 0, lastHour+1)
	for h := 0; h <= lastHour; h++ {
		label := HourLabel(h)
		out = append(out, models.AttendanceCount{Bucket: label, Count: c.get(label)})
	}
	return out
}

// Daily aggregates events into calendar-date buckets. Every date in the
// requested range appears, zero-filled when no rows matched.
func Daily(events []models.PresenceEvent, f *Filter, mode Mode) []models.AttendanceCount {
	c := newCounter(mode)
	for _, ev := range f.filterEvents(events) {
		c.add(DateBucket(ev.CreatedAt), ev.DisplayName)
	}

	dates := datesInRange(f.StartDate(), f.EndDate())
	out := make([]models.AttendanceCount, 0, len(dates))
	for _, d := range dates {
		bucket := DateBucket(d)
		out = append(out, models.AttendanceCount{Bucket: bucket, Count: c.get(bucket)})
	}
	return out
}

// Weekday aggregates events into day-of-week buckets (0=Sunday). The
// domain is only the weekdays that actually occur in the requested range;
// there is no synthetic fill beyond that.
func Weekday(events []models.PresenceEvent, f *Filter, mode Mode) []models.AttendanceCount {
	c := newCounter(mode)
	for _, ev := range f.filterEvents(events) {
		c.add(WeekdayLabel(WeekdayBucket(ev.CreatedAt)), ev.DisplayName)
	}

	occurring := make(map[int]bool)
	for _, d := range datesInRange(f.StartDate(), f.EndDate()) {
		occurring[WeekdayBucket(d)] = true
	}

	out := make([]models.AttendanceCount, 0, len(occurring))
	for wd := 0; wd < 7; wd++ {
		if !occurring[wd] {
			continue
		}
		label := WeekdayLabel(wd)
		out = append(out, models.AttendanceCount{Bucket: label, Count: c.get(label)})
	}
	return out
}

// Weekly aggregates events by week (anchored on the given weekday) and
// day-of-week within the week. Each date in the range is attributed to the
// week it naturally belongs to; weeks are never clipped to the range, so a
// week bucket can extend past the range boundary. Output is ordered by
// week start date, then day-of-week index, with one row per range date.
func Weekly(events []models.PresenceEvent, f *Filter, mode Mode, anchor time.Weekday) []models.WeeklyAttendanceCount {
	c := newCounter(mode)
	for _, ev := range f.filterEvents(events) {
		c.add(DateBucket(ev.CreatedAt), ev.DisplayName)
	}

	dates := datesInRange(f.StartDate(), f.EndDate())
	out := make([]models.WeeklyAttendanceCount, 0, len(dates))
	for _, d := range dates {
		start, end := WeekOf(d, anchor)
		out = append(out, models.WeeklyAttendanceCount{
			WeekStart: DateBucket(start),
			WeekEnd:   DateBucket(end),
			Day:       WeekdayLabel(WeekdayBucket(d)),
			Count:     c.get(DateBucket(d)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WeekStart != out[j].WeekStart {
			return out[i].WeekStart < out[j].WeekStart
		}
		return weekdayIndex(out[i].Day) < weekdayIndex(out[j].Day)
	})
	return out
}

// weekdayIndex is the inverse of WeekdayLabel.
func weekdayIndex(label string) int {
	for i, name := range weekdayNames {
		if name == label {
			return i
		}
	}
	return -1
}
