// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrelin/presencelog/internal/attendance"
	"github.com/kestrelin/presencelog/internal/database"
	"github.com/kestrelin/presencelog/internal/report"
)

// NewLocationsCommand lists the raw location history.
func NewLocationsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Location history for a date or range",
		Long:  "Every instance visited in the requested window, in order, with the\ntime spent in each.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisitReport(opts, func(f *attendance.Filter, db *database.DB) (interface{}, report.Table, error) {
				visits, err := db.QueryVisits(context.Background(), f)
				if err != nil {
					return nil, report.Table{}, err
				}
				return visits, report.Visits(reportTitle("Location History", f), visits), nil
			})
		},
	}

	addReportFlags(cmd, opts)
	return cmd
}

// NewInstancesCommand summarizes visits per instance.
func NewInstancesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "instances",
		Short: "Visit statistics per instance",
		Long: `Per-instance visit statistics for the requested window: visit count,
distinct calendar dates visited, total time, and first/last visit. Ordered
by total time, busiest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisitReport(opts, func(f *attendance.Filter, db *database.DB) (interface{}, report.Table, error) {
				visits, err := db.QueryVisits(context.Background(), f)
				if err != nil {
					return nil, report.Table{}, err
				}
				stats := attendance.InstanceVisitCounts(visits)
				return stats, report.Instances(reportTitle("Instance Statistics", f), stats), nil
			})
		},
	}

	addReportFlags(cmd, opts)
	return cmd
}

// runVisitReport mirrors runReport for the gamelog_location views.
func runVisitReport(
	opts *ReportOptions,
	build func(*attendance.Filter, *database.DB) (interface{}, report.Table, error),
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

	series, table, err := build(f, db)
	if err != nil {
		return err
	}
	return emit(opts, series, table)
}
