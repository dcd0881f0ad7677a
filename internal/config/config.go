// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

// Package config loads Presencelog configuration with layered sources:
// built-in defaults, an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Report   ReportConfig   `koanf:"report"`
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig locates the VRCX SQLite database. The file is owned and
// written by VRCX; Presencelog only ever reads it.
type DatabaseConfig struct {
	// Path to VRCX.sqlite3. Empty means auto-discover from the standard
	// VRCX locations for the current platform.
	Path string `koanf:"path"`

	// BusyTimeout passed to SQLite, to tolerate VRCX appending while a
	// query runs.
	BusyTimeout time.Duration `koanf:"busy_timeout"`
}

// ReportConfig controls aggregation and emission defaults.
type ReportConfig struct {
	// WeekAnchor is the weekday a week ends on: "sunday".."saturday".
	WeekAnchor string `koanf:"week_anchor" validate:"oneof=sunday monday tuesday wednesday thursday friday saturday"`

	// DefaultFormat is the emitter used when --format is not given.
	DefaultFormat string `koanf:"default_format" validate:"oneof=table csv json chart"`
}

// ServerConfig configures the optional local dashboard API.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all defaults applied. Defaults are
// loaded first, then overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        "", // auto-discover
			BusyTimeout: 5 * time.Second,
		},
		Report: ReportConfig{
			WeekAnchor:    "sunday",
			DefaultFormat: "table",
		},
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8419,
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
	}
}

// WeekAnchorWeekday converts the configured anchor name to a time.Weekday.
func (c *Config) WeekAnchorWeekday() time.Weekday {
	anchors := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	return anchors[c.Report.WeekAnchor]
}

// Validate checks the configuration using struct tags.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
