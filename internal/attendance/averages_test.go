// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package attendance

import (
	"testing"

	"github.com/kestrelin/presencelog/internal/models"
)

func TestHourlyAverages(t *testing.T) {
	t.Parallel()

	t.Run("denominator is the number of days in the range", func(t *testing.T) {
		t.Parallel()
		// Two raw events in the 08:00 hour on one day of a two-day range.
		events := []models.PresenceEvent{
			{CreatedAt: mustTime(t, "2024-01-04 08:00:00"), Type: models.EventJoin, DisplayName: "Ann", Location: "wrld_a:1"},
			{CreatedAt: mustTime(t, "2024-01-04 08:10:00"), Type: models.EventLeave, DisplayName: "Ann", Location: "wrld_a:1"},
		}
		f := normalized(t, &Filter{Start: "2024-01-04", End: "2024-01-05"})
		out := HourlyAverages(events, f, ModeRaw)

		if len(out) != 24 {
			t.Fatalf("got %d entries, want 24", len(out))
		}
		if out[8].Average != 1.0 {
			t.Errorf("hour 8 average = %v, want 1.0 (2 events over 2 days)", out[8].Average)
		}
		if out[9].Average != 0 {
			t.Errorf("hour 9 average = %v, want 0", out[9].Average)
		}
	})

	t.Run("unique mode deduplicates within a day's hour, not across days", func(t *testing.T) {
		t.Parallel()
		// Ann appears twice in the same hour on day one (counts once)
		// and once in the same hour on day two (counts again).
		events := []models.PresenceEvent{
			{CreatedAt: mustTime(t, "2024-01-04 08:00:00"), Type: models.EventJoin, DisplayName: "Ann", Location: "wrld_a:1"},
			{CreatedAt: mustTime(t, "2024-01-04 08:10:00"), Type: models.EventLeave, DisplayName: "Ann", Location: "wrld_a:1"},
			{CreatedAt: mustTime(t, "2024-01-05 08:00:00"), Type: models.EventJoin, DisplayName: "Ann", Location: "wrld_a:1"},
		}
		f := normalized(t, &Filter{Start: "2024-01-04", End: "2024-01-05"})
		out := HourlyAverages(events, f, ModeUnique)

		if out[8].Average != 1.0 {
			t.Errorf("hour 8 average = %v, want 1.0 (1 person per day over 2 days)", out[8].Average)
		}
	})

	t.Run("single-day range degenerates to the hourly counts", func(t *testing.T) {
		t.Parallel()
		f := normalized(t, &Filter{Date: "2024-01-05"})
		out := HourlyAverages(morningEvents(t), f, ModeRaw)

		if out[8].Average != 2.0 {
			t.Errorf("hour 8 average = %v, want 2.0", out[8].Average)
		}
		if out[9].Average != 1.0 {
			t.Errorf("hour 9 average = %v, want 1.0", out[9].Average)
		}
	})
}

func TestWeekdayAverages(t *testing.T) {
	t.Parallel()

	t.Run("mean over each weekday's occurrences", func(t *testing.T) {
		t.Parallel()
		// Two Fridays in range (Jan 5 and Jan 12); data on the first only.
		f := normalized(t, &Filter{Start: "2024-01-05", End: "2024-01-12"})
		out := WeekdayAverages(morningEvents(t), f, ModeRaw)

		if len(out) != 7 {
			t.Fatalf("got %d weekdays, want 7", len(out))
		}
		var friday *models.WeekdayAverage
		for i := range out {
			if out[i].Day == "Friday" {
				friday = &out[i]
			}
		}
		if friday == nil {
			t.Fatal("no Friday entry")
		}
		if friday.Average != 1.5 {
			t.Errorf("Friday average = %v, want 1.5 (3 events over 2 Fridays)", friday.Average)
		}
	})

	t.Run("one-day range yields a single entry equal to the day total", func(t *testing.T) {
		t.Parallel()
		f := normalized(t, &Filter{Date: "2024-01-05"})
		out := WeekdayAverages(morningEvents(t), f, ModeRaw)

		if len(out) != 1 {
			t.Fatalf("got %d entries, want 1", len(out))
		}
		if out[0].Day != "Friday" || out[0].Average != 3.0 {
			t.Errorf("entry = %+v, want Friday 3.0", out[0])
		}
	})
}
