// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

// Package report emits aggregation output as text tables, CSV, JSON, or
// text bar charts. Emitters are interchangeable sinks: they consume the
// engine's already-sorted, already-zero-filled rows and never re-sort,
// re-fill, or otherwise reinterpret them. An empty series produces no
// output; it is a valid result, not an error.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kestrelin/presencelog/internal/models"
)

// Table is the shape-neutral form of a report: a title, column headers,
// and pre-rendered rows. Builders below convert each engine output series
// into a Table so every emitter handles every series the same way.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Counts builds a table from an attendance count series. bucketHeader
// names the bucket column ("Hour", "Date", "Day").
func Counts(title, bucketHeader string, series []models.AttendanceCount) Table {
	t := Table{Title: title, Columns: []string{bucketHeader, "Count"}}
	for _, row := range series {
		t.Rows = append(t.Rows, []string{row.Bucket, strconv.Itoa(row.Count)})
	}
	return t
}

// WeeklySeries builds a table from the weekly four-tuple series.
func WeeklySeries(title string, series []models.WeeklyAttendanceCount) Table {
	t := Table{Title: title, Columns: []string{"Week Start", "Week End", "Day", "Count"}}
	for _, row := range series {
		t.Rows = append(t.Rows, []string{row.WeekStart, row.WeekEnd, row.Day, strconv.Itoa(row.Count)})
	}
	return t
}

// HourAverages builds a table from an hourly average series.
func HourAverages(title string, series []models.HourAverage) Table {
	t := Table{Title: title, Columns: []string{"Hour", "Average"}}
	for _, row := range series {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%02d:00", row.Hour),
			strconv.FormatFloat(row.Average, 'f', 2, 64),
		})
	}
	return t
}

// WeekdayAverages builds a table from a weekday average series.
func WeekdayAverages(title string, series []models.WeekdayAverage) Table {
	t := Table{Title: title, Columns: []string{"Day", "Average"}}
	for _, row := range series {
		t.Rows = append(t.Rows, []string{row.Day, strconv.FormatFloat(row.Average, 'f', 2, 64)})
	}
	return t
}

// Instances builds a table from instance visit statistics.
func Instances(title string, series []models.InstanceStats) Table {
	t := Table{Title: title, Columns: []string{
		"Instance", "World", "Visits", "Days", "Total Time", "First Visit", "Last Visit",
	}}
	for _, row := range series {
		t.Rows = append(t.Rows, []string{
			row.Location,
			row.WorldName,
			strconv.Itoa(row.Visits),
			strconv.Itoa(row.DistinctDays),
			formatDuration(row.TotalSeconds),
			row.FirstVisit.Format("2006-01-02 15:04"),
			row.LastVisit.Format("2006-01-02 15:04"),
		})
	}
	return t
}

// Visits builds a table from the raw location history.
func Visits(title string, series []models.LocationVisit) Table {
	t := Table{Title: title, Columns: []string{"Time", "World", "Instance", "Duration"}}
	for _, row := range series {
		duration := ""
		if row.DurationSeconds != nil {
			duration = formatDuration(*row.DurationSeconds)
		}
		t.Rows = append(t.Rows, []string{
			row.CreatedAt.Format("2006-01-02 15:04"),
			row.WorldName,
			row.Location,
			duration,
		})
	}
	return t
}

// formatDuration renders a second count as "1h23m" style text.
func formatDuration(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	return d.Truncate(time.Minute).String()
}
