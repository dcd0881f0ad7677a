// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package models

import "time"

// AttendanceCount is one output row of the aggregation engine: a bucket
// label and the number of events (raw mode) or distinct people (unique
// mode) that fell into it. Sequences are always finite, sorted ascending
// by bucket, and zero-filled per the granularity rules; emitters must not
// re-sort or re-fill them.
type AttendanceCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// WeeklyAttendanceCount is the weekly four-tuple variant: the containing
// week (start/end dates) plus the day-of-week breakdown within it.
type WeeklyAttendanceCount struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Day       string `json:"day"`
	Count     int    `json:"count"`
}

// HourAverage is the mean attendance for one hour slot across every day of
// a multi-day range. Days with no rows in that hour contribute zero; the
// denominator is always the number of days in the range.
type HourAverage struct {
	Hour    int     `json:"hour"`
	Average float64 `json:"average"`
}

// WeekdayAverage is the mean attendance for one day of the week across its
// occurrences in the requested range.
type WeekdayAverage struct {
	Weekday int     `json:"weekday"`
	Day     string  `json:"day"`
	Average float64 `json:"average"`
}

// InstanceStats summarizes visits to a single instance over a date range:
// the visit-count aggregation counts distinct calendar dates visited, not
// people.
type InstanceStats struct {
	Location     string    `json:"location"`
	WorldName    string    `json:"world_name"`
	Visits       int       `json:"visits"`
	DistinctDays int       `json:"distinct_days"`
	TotalSeconds int64     `json:"total_seconds"`
	FirstVisit   time.Time `json:"first_visit"`
	LastVisit    time.Time `json:"last_visit"`
}
