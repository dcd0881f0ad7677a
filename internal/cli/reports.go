// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrelin/presencelog/internal/attendance"
	"github.com/kestrelin/presencelog/internal/database"
	"github.com/kestrelin/presencelog/internal/logging"
	"github.com/kestrelin/presencelog/internal/models"
	"github.com/kestrelin/presencelog/internal/report"
)

// ReportOptions holds the flags shared by all attendance report commands.
type ReportOptions struct {
	*RootOptions

	Date     string
	Start    string
	End      string
	World    string
	Instance string
	Unique   bool
	Average  bool
	Out      string
}

// addReportFlags registers the shared filter and output flags.
func addReportFlags(cmd *cobra.Command, opts *ReportOptions) {
	cmd.Flags().StringVar(&opts.Date, "date", "", "single date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.End, "end", "", "range end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.World, "world", "", "restrict to one world id (e.g. wrld_...)")
	cmd.Flags().StringVar(&opts.Instance, "instance", "", "restrict to one instance (full location or fragment with --world)")
	cmd.Flags().BoolVar(&opts.Unique, "unique", false, "count distinct people instead of raw events")
	cmd.Flags().StringVar(&opts.Out, "out", "", "write output to a file instead of stdout")
}

// mode returns the counting mode selected by the flags.
func (o *ReportOptions) mode() attendance.Mode {
	if o.Unique {
		return attendance.ModeUnique
	}
	return attendance.ModeRaw
}

// NewHourlyCommand reports attendance per hour of day.
func NewHourlyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "hourly",
		Short: "Attendance per hour of day",
		Long: `Attendance per hour of day (00:00 through 23:00).

For a past date all 24 hour slots are reported, zero-filled. For today,
only hours that have already started are reported. With --average over a
date range, each hour shows its mean across every day of the range.

Example:
  presencelog hourly --date 2026-08-29
  presencelog hourly --start 2026-08-01 --end 2026-08-28 --average --world wrld_abc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, func(events []models.PresenceEvent, f *attendance.Filter, now time.Time) (interface{}, report.Table) {
				if opts.Average {
					series := attendance.HourlyAverages(events, f, opts.mode())
					return series, report.HourAverages(reportTitle("Hourly Average Attendance", f), series)
				}
				series := attendance.Hourly(events, f, opts.mode(), now)
				return series, report.Counts(reportTitle("Hourly Attendance", f), "Hour", series)
			})
		},
	}

	addReportFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.Average, "average", false, "average per hour across the days of the range")
	return cmd
}

// NewDailyCommand reports attendance per calendar date.
func NewDailyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Attendance per calendar date",
		Long: `Attendance per calendar date. Every date in the requested range appears
in the output, zero-filled when nothing happened that day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, func(events []models.PresenceEvent, f *attendance.Filter, now time.Time) (interface{}, report.Table) {
				series := attendance.Daily(events, f, opts.mode())
				return series, report.Counts(reportTitle("Daily Attendance", f), "Date", series)
			})
		},
	}

	addReportFlags(cmd, opts)
	return cmd
}

// NewWeekdayCommand reports attendance per day of week.
func NewWeekdayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "weekday",
		Short: "Attendance per day of week",
		Long: `Attendance per day of week (Sunday through Saturday), covering only the
weekdays that occur in the requested range. With --average, each weekday
shows its mean across that weekday's occurrences in the range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, func(events []models.PresenceEvent, f *attendance.Filter, now time.Time) (interface{}, report.Table) {
				if opts.Average {
					series := attendance.WeekdayAverages(events, f, opts.mode())
					return series, report.WeekdayAverages(reportTitle("Weekday Average Attendance", f), series)
				}
				series := attendance.Weekday(events, f, opts.mode())
				return series, report.Counts(reportTitle("Weekday Attendance", f), "Day", series)
			})
		},
	}

	addReportFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.Average, "average", false, "average per weekday across its occurrences in the range")
	return cmd
}

// NewWeeklyCommand reports the weekly breakdown.
func NewWeeklyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Attendance per week and day of week",
		Long: `Attendance grouped into weeks (ending on the configured anchor weekday,
Sunday by default) with a day-of-week breakdown inside each week. Weeks are
never clipped: a date near the range boundary is reported under the full
week it naturally belongs to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, func(events []models.PresenceEvent, f *attendance.Filter, now time.Time) (interface{}, report.Table) {
				series := attendance.Weekly(events, f, opts.mode(), opts.Config().WeekAnchorWeekday())
				return series, report.WeeklySeries(reportTitle("Weekly Attendance", f), series)
			})
		},
	}

	addReportFlags(cmd, opts)
	return cmd
}

// runReport is the shared report flow: normalize the filter, one read
// pass, pure aggregation, emit.
func runReport(
	opts *ReportOptions,
	aggregate func([]models.PresenceEvent, *attendance.Filter, time.Time) (interface{}, report.Table),
) error {
	now := time.Now()

	f := &attendance.Filter{
		Date:     opts.Date,
		Start:    opts.Start,
		End:      opts.End,
		WorldID:  opts.World,
		Instance: opts.Instance,
	}
	if err := f.Normalize(now); err != nil {
		return err
	}

	db, err := database.Open(&opts.Config().Database)
	if err != nil {
		return err
	}
	defer db.Close()

	events, err := db.QueryEvents(context.Background(), f)
	if err != nil {
		return err
	}

	series, table := aggregate(events, f, now)
	return emit(opts, series, table)
}

// emit writes a report in the selected format. Empty text output is
// skipped with a notice; JSON always emits so output stays parseable.
func emit(opts *ReportOptions, series interface{}, table report.Table) error {
	w, closeFn, err := outputWriter(opts.Out)
	if err != nil {
		return err
	}
	defer closeFn()

	switch opts.Format {
	case "json":
		return report.WriteJSON(w, series)
	case "csv":
		if table.Empty() {
			logging.Info().Msg("No data for the requested filter")
			return nil
		}
		return report.WriteCSV(w, table)
	case "chart":
		counts, ok := series.([]models.AttendanceCount)
		if !ok {
			return fmt.Errorf("chart output is only available for count reports")
		}
		if err := report.WriteChart(w, table.Title, counts); err != nil {
			return err
		}
		return nil
	default:
		if table.Empty() {
			logging.Info().Msg("No data for the requested filter")
			return nil
		}
		return report.WriteTable(w, table)
	}
}

// outputWriter returns stdout or the --out file.
func outputWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return file, func() {
		if err := file.Close(); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Failed to close output file")
		}
	}, nil
}

// reportTitle labels a report with its resolved date window and filters.
func reportTitle(name string, f *attendance.Filter) string {
	start := f.StartDate().Format(attendance.DateLayout)
	end := f.EndDate().Format(attendance.DateLayout)

	title := name + " - " + start
	if start != end {
		title = name + " - " + start + " to " + end
	}
	if loc := f.Location(); loc != "" {
		title += " (" + loc + ")"
	} else if f.WorldID != "" {
		title += " (" + f.WorldID + ")"
	}
	return title
}
