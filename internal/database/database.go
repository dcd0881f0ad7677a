// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

// Package database reads the VRCX SQLite gamelog. The database file is
// owned and concurrently appended to by VRCX; Presencelog opens it strictly
// read-only and tolerates writes happening underneath a query, with no
// isolation guarantee beyond what SQLite offers for a single statement.
//
// The two tables read here are a fixed external schema this package must
// never alter: gamelog_join_leave (presence events) and gamelog_location
// (instance visits).
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kestrelin/presencelog/internal/config"
	"github.com/kestrelin/presencelog/internal/logging"
)

// DB wraps the read-only connection to the VRCX database.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens the VRCX database at cfg.Path, or auto-discovers it when the
// path is empty. Any failure here is the StoreUnavailable condition: fatal
// to the current request, nothing partial is produced.
func Open(cfg *config.DatabaseConfig) (*DB, error) {
	path := cfg.Path
	if path == "" {
		located, err := Locate()
		if err != nil {
			return nil, err
		}
		path = located
	}

	busyMillis := cfg.BusyTimeout.Milliseconds()
	if busyMillis <= 0 {
		busyMillis = (5 * time.Second).Milliseconds()
	}

	// mode=ro keeps us honest: the gamelog is append-only and owned by
	// VRCX. The busy timeout rides out VRCX committing an append.
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=%d", path, busyMillis)

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open VRCX database %s: %w", path, err)
	}

	// Single connection: one read pass per invocation, and SQLite gains
	// nothing from a pool here.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to read VRCX database %s: %w", path, err)
	}

	logging.Debug().Str("path", path).Msg("Opened VRCX database")
	return &DB{conn: conn, path: path}, nil
}

// Path returns the resolved database file path.
func (db *DB) Path() string {
	return db.path
}

// Ping checks that the database is still readable.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close database connection")
	}
}
