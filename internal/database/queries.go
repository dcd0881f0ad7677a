// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kestrelin/presencelog/internal/attendance"
	"github.com/kestrelin/presencelog/internal/metrics"
	"github.com/kestrelin/presencelog/internal/models"
)

// QueryEvents returns presence events for the filter's date range,
// ascending by timestamp. The SQL applies the date range and, when an
// instance filter is active, the exact location; the engine-side predicate
// applies the exact-length world match on the returned rows.
func (db *DB) QueryEvents(ctx context.Context, f *attendance.Filter) ([]models.PresenceEvent, error) {
	start := time.Now()
	events, err := db.queryEvents(ctx, f)
	metrics.ObserveQuery("events", start, err)
	return events, err
}

func (db *DB) queryEvents(ctx context.Context, f *attendance.Filter) ([]models.PresenceEvent, error) {
	where, args := dateRangeClause(f)
	if loc := f.Location(); loc != "" {
		where += " AND location = ?"
		args = append(args, loc)
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, type, display_name, user_id, location
		FROM gamelog_join_leave
		WHERE %s
		ORDER BY created_at ASC`, where)

	var events []models.PresenceEvent
	err := db.queryAndScan(ctx, query, args, func(rows *sql.Rows) error {
		var ev models.PresenceEvent
		var createdAt string
		if err := rows.Scan(&ev.ID, &createdAt, &ev.Type, &ev.DisplayName, &ev.UserID, &ev.Location); err != nil {
			return err
		}
		ts, err := parseTimestamp(createdAt)
		if err != nil {
			return err
		}
		ev.CreatedAt = ts
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query presence events: %w", err)
	}
	return events, nil
}

// QueryVisits returns location-visit rows matching the filter, ascending
// by timestamp. Unlike events, the whole filter (range, world, instance)
// is applied in SQL here; there is no engine-side predicate pass for
// visits. Used by the location history and instance statistics views,
// never for attendance counting.
func (db *DB) QueryVisits(ctx context.Context, f *attendance.Filter) ([]models.LocationVisit, error) {
	start := time.Now()
	visits, err := db.queryVisits(ctx, f)
	metrics.ObserveQuery("visits", start, err)
	return visits, err
}

func (db *DB) queryVisits(ctx context.Context, f *attendance.Filter) ([]models.LocationVisit, error) {
	where, args := dateRangeClause(f)
	// The table carries the bare world id, so both filters resolve to
	// exact equality in SQL. The instance filter subsumes the world
	// filter, same as the event predicate.
	if loc := f.Location(); loc != "" {
		where += " AND location = ?"
		args = append(args, loc)
	} else if f.WorldID != "" {
		where += " AND world_id = ?"
		args = append(args, f.WorldID)
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, location, world_id, world_name,
		       COALESCE(group_name, ''), time
		FROM gamelog_location
		WHERE %s
		ORDER BY created_at ASC`, where)

	var visits []models.LocationVisit
	err := db.queryAndScan(ctx, query, args, func(rows *sql.Rows) error {
		var v models.LocationVisit
		var createdAt string
		var duration sql.NullInt64
		if err := rows.Scan(&v.ID, &createdAt, &v.Location, &v.WorldID, &v.WorldName, &v.GroupName, &duration); err != nil {
			return err
		}
		ts, err := parseTimestamp(createdAt)
		if err != nil {
			return err
		}
		v.CreatedAt = ts
		if duration.Valid {
			v.DurationSeconds = &duration.Int64
		}
		visits = append(visits, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query location visits: %w", err)
	}
	return visits, nil
}

// timestampLayouts covers the created_at formats VRCX has written over
// the years: ISO 8601 with and without fractional seconds, plus the
// space-separated SQLite form.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// parseTimestamp parses a created_at column value as recorded, without
// converting between time zones.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// dateRangeClause builds the DATE(created_at) window condition shared by
// both tables.
func dateRangeClause(f *attendance.Filter) (string, []interface{}) {
	start := f.StartDate().Format(attendance.DateLayout)
	end := f.EndDate().Format(attendance.DateLayout)
	if start == end {
		return "DATE(created_at) = ?", []interface{}{start}
	}
	return "DATE(created_at) BETWEEN ? AND ?", []interface{}{start, end}
}

// queryAndScan executes a query and scans all rows via the scanner func.
func (db *DB) queryAndScan(ctx context.Context, query string, args []interface{}, scanner func(*sql.Rows) error) error {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scanner(rows); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}
	return nil
}
