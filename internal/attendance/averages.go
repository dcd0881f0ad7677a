// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package attendance

import (
	"github.com/kestrelin/presencelog/internal/models"
)

// HourlyAverages computes the mean attendance for each hour slot across
// every day of the range. Counting happens per (day, hour) combination, so
// unique mode deduplicates within a single day's hour, not across days.
// Every (day, hour) pair with no rows contributes a zero, and the
// denominator is always the number of days in the range; the output always
// has exactly 24 entries.
func HourlyAverages(events []models.PresenceEvent, f *Filter, mode Mode) []models.HourAverage {
	c := newCounter(mode)
	for _, ev := range f.filterEvents(events) {
		key := DateBucket(ev.CreatedAt) + "/" + HourLabel(HourBucket(ev.CreatedAt))
		c.add(key, ev.DisplayName)
	}

	days := f.Days()
	dates := datesInRange(f.StartDate(), f.EndDate())

	out := make([]models.HourAverage, 0, hoursPerDay)
	for h := 0; h < hoursPerDay; h++ {
		total := 0
		for _, d := range dates {
			total += c.get(DateBucket(d) + "/" + HourLabel(h))
		}
		out = append(out, models.HourAverage{
			Hour:    h,
			Average: float64(total) / float64(days),
		})
	}
	return out
}

// WeekdayAverages computes, for each weekday occurring in the range, the
// mean per-day attendance over that weekday's occurrences. A one-day range
// degenerates to a single entry whose average equals the day's total.
func WeekdayAverages(events []models.PresenceEvent, f *Filter, mode Mode) []models.WeekdayAverage {
	c := newCounter(mode)
	for _, ev := range f.filterEvents(events) {
		c.add(DateBucket(ev.CreatedAt), ev.DisplayName)
	}

	totals := make(map[int]int)
	occurrences := make(map[int]int)
	for _, d := range datesInRange(f.StartDate(), f.EndDate()) {
		wd := WeekdayBucket(d)
		totals[wd] += c.get(DateBucket(d))
		occurrences[wd]++
	}

	out := make([]models.WeekdayAverage, 0, len(occurrences))
	for wd := 0; wd < 7; wd++ {
		n := occurrences[wd]
		if n == 0 {
			continue
		}
		out = append(out, models.WeekdayAverage{
			Weekday: wd,
			Day:     WeekdayLabel(wd),
			Average: float64(totals[wd]) / float64(n),
		})
	}
	return out
}
