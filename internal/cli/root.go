// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

// Package cli defines the presencelog command tree. Every report command
// is one engine invocation: open the gamelog read-only, run one read pass,
// aggregate, emit, exit. Fatal preconditions (bad range, ambiguous filter,
// missing database) are reported before any query and exit non-zero
// without producing report artifacts.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelin/presencelog/internal/config"
	"github.com/kestrelin/presencelog/internal/logging"
)

// Version is the presencelog release version.
const Version = "1.2.0"

// ValidFormats lists the allowed output formats.
var ValidFormats = []string{"table", "csv", "json", "chart"}

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Database string
	Format   string
	LogLevel string

	cfg *config.Config
}

// Config returns the loaded configuration. Valid inside command Run funcs.
func (o *RootOptions) Config() *config.Config {
	return o.cfg
}

// NewRootCommand creates the root command for the presencelog CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "presencelog",
		Short:   "Attendance analytics for the VRCX gamelog",
		Long:    "Presencelog reads the VRCX SQLite gamelog (read-only) and reports\ntime-bucketed attendance metrics: per hour, day, day-of-week, and week,\noptionally scoped to a world or instance.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Flags override file and environment.
			if opts.Database != "" {
				cfg.Database.Path = opts.Database
			}
			if opts.Format == "" {
				opts.Format = cfg.Report.DefaultFormat
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.LogLevel != "" {
				cfg.Logging.Level = opts.LogLevel
			}

			logging.Init(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Caller: cfg.Logging.Caller,
			})

			opts.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to VRCX.sqlite3 (default: auto-discover)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "output format (table|csv|json|chart)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewHourlyCommand(opts))
	cmd.AddCommand(NewDailyCommand(opts))
	cmd.AddCommand(NewWeekdayCommand(opts))
	cmd.AddCommand(NewWeeklyCommand(opts))
	cmd.AddCommand(NewLocationsCommand(opts))
	cmd.AddCommand(NewInstancesCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// NewVersionCommand prints the release version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the presencelog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "presencelog %s\n", Version)
		},
	}
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
