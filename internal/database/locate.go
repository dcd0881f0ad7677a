// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package database

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// ErrDatabaseNotFound indicates no VRCX database could be located.
var ErrDatabaseNotFound = errors.New(
	"could not find VRCX.sqlite3; set VRCX_DATABASE_PATH or database.path in the config")

// databaseFileName is the VRCX database file name.
const databaseFileName = "VRCX.sqlite3"

// Locate finds the VRCX database in the standard per-platform locations:
// %APPDATA%\VRCX on Windows, ~/Library/Application Support/VRCX on macOS,
// ~/.config/VRCX elsewhere. The VRCX_DATABASE_PATH environment variable is
// handled upstream by the config layer.
func Locate() (string, error) {
	for _, candidate := range candidatePaths() {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrDatabaseNotFound
}

func candidatePaths() []string {
	var paths []string

	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			paths = append(paths, filepath.Join(appdata, "VRCX", databaseFileName))
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return paths
	}

	paths = append(paths,
		filepath.Join(home, ".config", "VRCX", databaseFileName),
		filepath.Join(home, "Library", "Application Support", "VRCX", databaseFileName),
	)
	return paths
}
