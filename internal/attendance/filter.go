// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package attendance

import (
	"fmt"
	"time"

	"github.com/kestrelin/presencelog/internal/models"
)

// Filter selects which gamelog rows participate in an aggregation. Zero or
// more of a date/date-range, a world filter, and an instance filter compose
// with logical AND. Build one from user input, then call Normalize before
// use; the zero Filter normalizes to "today, everywhere".
type Filter struct {
	// Date is a single "YYYY-MM-DD" date. Mutually exclusive with
	// Start/End; when neither is given, Normalize defaults to the current
	// date of the injected clock.
	Date string

	// Start and End bound an inclusive date range.
	Start string
	End   string

	// WorldID restricts rows to one world. Matching is full-string
	// equality on the parsed world id, never a substring prefix test.
	WorldID string

	// Instance restricts rows to one instance, by exact equality on the
	// full location string. A bare fragment ("45678~region(us)") is
	// resolved against WorldID; without a WorldID it is ambiguous.
	// When both filters are present the instance filter takes precedence.
	Instance string

	// Resolved by Normalize.
	start      time.Time
	end        time.Time
	location   string
	normalized bool
}

// Normalize validates the filter and resolves defaults against the given
// clock. It must be called (and must succeed) before the filter is used;
// all failures are detected here, before any store query is issued.
func (f *Filter) Normalize(now time.Time) error {
	if err := f.resolveRange(now); err != nil {
		return err
	}
	if err := f.resolveLocation(); err != nil {
		return err
	}
	f.normalized = true
	return nil
}

// resolveRange picks exactly one of {single date, [start,end] range},
// defaulting to today.
func (f *Filter) resolveRange(now time.Time) error {
	switch {
	case f.Date != "" && (f.Start != "" || f.End != ""):
		return fmt.Errorf("%w: date and start/end are mutually exclusive", ErrInvalidRange)
	case f.Date != "":
		d, err := parseDate(f.Date)
		if err != nil {
			return err
		}
		f.start, f.end = d, d
	case f.Start != "" && f.End != "":
		start, err := parseDate(f.Start)
		if err != nil {
			return err
		}
		end, err := parseDate(f.End)
		if err != nil {
			return err
		}
		if start.After(end) {
			return fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, f.Start, f.End)
		}
		f.start, f.end = start, end
	case f.Start != "" || f.End != "":
		return fmt.Errorf("%w: start and end must be given together", ErrInvalidRange)
	default:
		d, err := parseDate(now.Format(DateLayout))
		if err != nil {
			return err
		}
		f.Date = now.Format(DateLayout)
		f.start, f.end = d, d
	}
	return nil
}

// resolveLocation materializes the instance filter into a full location
// string when needed.
func (f *Filter) resolveLocation() error {
	if f.Instance == "" {
		return nil
	}
	if models.IsQualified(f.Instance) {
		f.location = f.Instance
		return nil
	}
	if f.WorldID == "" {
		return ErrAmbiguousFilter
	}
	f.location = models.JoinLocationID(f.WorldID, f.Instance)
	return nil
}

// StartDate returns the resolved range start. Valid after Normalize.
func (f *Filter) StartDate() time.Time { return f.start }

// EndDate returns the resolved range end (inclusive). Valid after Normalize.
func (f *Filter) EndDate() time.Time { return f.end }

// IsSingleDate reports whether the filter covers exactly one calendar date.
func (f *Filter) IsSingleDate() bool { return f.start.Equal(f.end) }

// Days returns the number of calendar dates in the resolved range.
func (f *Filter) Days() int {
	return int(f.end.Sub(f.start).Hours()/24) + 1
}

// Location returns the resolved exact-match location, or "" when no
// instance filter is active.
func (f *Filter) Location() string { return f.location }

// Predicate builds the effective row predicate: the AND of the date-range
// check, the exact-length world match, and the exact instance match. The
// instance filter subsumes the world filter when both are present.
func (f *Filter) Predicate() func(models.PresenceEvent) bool {
	if !f.normalized {
		panic("attendance: Filter used before Normalize")
	}

	startBucket := DateBucket(f.start)
	endBucket := DateBucket(f.end)

	return func(ev models.PresenceEvent) bool {
		d := DateBucket(ev.CreatedAt)
		if d < startBucket || d > endBucket {
			return false
		}
		if f.location != "" {
			return ev.Location == f.location
		}
		if f.WorldID != "" {
			return models.ParseLocationID(ev.Location).SameWorld(f.WorldID)
		}
		return true
	}
}

// filterEvents applies the predicate, preserving input order.
func (f *Filter) filterEvents(events []models.PresenceEvent) []models.PresenceEvent {
	pred := f.Predicate()
	out := make([]models.PresenceEvent, 0, len(events))
	for _, ev := range events {
		if pred(ev) {
			out = append(out, ev)
		}
	}
	return out
}
