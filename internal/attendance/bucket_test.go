// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package attendance

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return ts
}

func TestHourBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ts   string
		want int
	}{
		{"midnight", "2024-01-05 00:00:00", 0},
		{"morning", "2024-01-05 08:10:00", 8},
		{"last hour", "2024-01-05 23:59:59", 23},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := HourBucket(mustTime(t, tt.ts))
			if got != tt.want {
				t.Errorf("HourBucket(%s) = %d, want %d", tt.ts, got, tt.want)
			}
		})
	}
}

func TestHourLabel(t *testing.T) {
	t.Parallel()

	if got := HourLabel(0); got != "00:00" {
		t.Errorf("HourLabel(0) = %q, want %q", got, "00:00")
	}
	if got := HourLabel(9); got != "09:00" {
		t.Errorf("HourLabel(9) = %q, want %q", got, "09:00")
	}
	if got := HourLabel(23); got != "23:00" {
		t.Errorf("HourLabel(23) = %q, want %q", got, "23:00")
	}
}

func TestWeekdayBucket(t *testing.T) {
	t.Parallel()

	// 2024-01-07 is a Sunday.
	if got := WeekdayBucket(mustDate(t, "2024-01-07")); got != 0 {
		t.Errorf("Sunday bucket = %d, want 0", got)
	}
	// 2024-01-06 is a Saturday.
	if got := WeekdayBucket(mustDate(t, "2024-01-06")); got != 6 {
		t.Errorf("Saturday bucket = %d, want 6", got)
	}
}

func TestWeekdayLabel(t *testing.T) {
	t.Parallel()

	if got := WeekdayLabel(0); got != "Sunday" {
		t.Errorf("WeekdayLabel(0) = %q, want Sunday", got)
	}
	if got := WeekdayLabel(6); got != "Saturday" {
		t.Errorf("WeekdayLabel(6) = %q, want Saturday", got)
	}
}

func TestWeekOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		date      string
		anchor    time.Weekday
		wantStart string
		wantEnd   string
	}{
		{
			name:      "midweek date with sunday anchor",
			date:      "2024-01-03", // Wednesday
			anchor:    time.Sunday,
			wantStart: "2024-01-01",
			wantEnd:   "2024-01-07",
		},
		{
			name:      "date on the anchor day ends that same week",
			date:      "2024-01-07", // Sunday
			anchor:    time.Sunday,
			wantStart: "2024-01-01",
			wantEnd:   "2024-01-07",
		},
		{
			name:      "day after the anchor starts a new week",
			date:      "2024-01-08", // Monday
			anchor:    time.Sunday,
			wantStart: "2024-01-08",
			wantEnd:   "2024-01-14",
		},
		{
			name:      "week spanning a year boundary",
			date:      "2024-12-30", // Monday
			anchor:    time.Sunday,
			wantStart: "2024-12-30",
			wantEnd:   "2025-01-05",
		},
		{
			name:      "saturday anchor",
			date:      "2024-01-03", // Wednesday
			anchor:    time.Saturday,
			wantStart: "2023-12-31",
			wantEnd:   "2024-01-06",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			start, end := WeekOf(mustDate(t, tt.date), tt.anchor)
			if got := DateBucket(start); got != tt.wantStart {
				t.Errorf("week start = %s, want %s", got, tt.wantStart)
			}
			if got := DateBucket(end); got != tt.wantEnd {
				t.Errorf("week end = %s, want %s", got, tt.wantEnd)
			}
			if days := int(end.Sub(start).Hours()/24) + 1; days != 7 {
				t.Errorf("week spans %d days, want 7", days)
			}
		})
	}
}

func TestDatesInRange(t *testing.T) {
	t.Parallel()

	dates := datesInRange(mustDate(t, "2024-01-30"), mustDate(t, "2024-02-02"))
	want := []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d", len(dates), len(want))
	}
	for i, d := range dates {
		if DateBucket(d) != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, DateBucket(d), want[i])
		}
	}
}
