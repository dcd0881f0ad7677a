// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package api

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kestrelin/presencelog/internal/config"
	"github.com/kestrelin/presencelog/internal/database"
	"github.com/kestrelin/presencelog/internal/models"
)

// envelope mirrors models.APIResponse with the payload left raw so each
// test can decode it into the concrete series type.
type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

// setupTestServer seeds a VRCX-shaped database and wires the full router
// around it, with the handler clock pinned to 2024-02-01 12:00.
func setupTestServer(t *testing.T) http.Handler {
	t.Helper()

	path := filepath.Join(t.TempDir(), "VRCX.sqlite3")
	seed, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open seed database: %v", err)
	}

	_, err = seed.Exec(`
		CREATE TABLE gamelog_join_leave (
			id INTEGER PRIMARY KEY,
			created_at TEXT,
			type TEXT,
			display_name TEXT,
			location TEXT,
			user_id TEXT,
			time INTEGER
		);
		CREATE TABLE gamelog_location (
			id INTEGER PRIMARY KEY,
			created_at TEXT,
			location TEXT,
			world_id TEXT,
			world_name TEXT,
			time INTEGER,
			group_name TEXT
		);
		INSERT INTO gamelog_join_leave (created_at, type, display_name, location, user_id, time) VALUES
			('2024-01-05 08:00:00', 'join',  'Ann', 'wrld_a:1', 'usr_ann', 0),
			('2024-01-05 08:10:00', 'leave', 'Ann', 'wrld_a:1', 'usr_ann', 600),
			('2024-01-05 09:00:00', 'join',  'Bob', 'wrld_a:1', 'usr_bob', 0);
		INSERT INTO gamelog_location (created_at, location, world_id, world_name, time, group_name) VALUES
			('2024-01-05 07:59:00', 'wrld_a:1', 'wrld_a', 'The Pub', 3600, ''),
			('2024-01-05 20:59:00', 'wrld_b:7', 'wrld_b', 'The Void', 600, '');`)
	if err != nil {
		t.Fatalf("seed database: %v", err)
	}
	if err := seed.Close(); err != nil {
		t.Fatalf("close seed database: %v", err)
	}

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: path, BusyTimeout: time.Second},
		Report:   config.ReportConfig{WeekAnchor: "sunday", DefaultFormat: "table"},
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8419,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
		},
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	h := NewHandler(db, cfg)
	h.SetClock(func() time.Time {
		return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	})
	return NewRouter(h, &cfg.Server)
}

// get performs a request against the router and decodes the envelope.
func get(t *testing.T, router http.Handler, url string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w.Code, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %q: %v", string(env.Data), err)
	}
}

func TestAttendanceHourly(t *testing.T) {
	t.Parallel()
	router := setupTestServer(t)

	t.Run("raw counts with zero fill", func(t *testing.T) {
		t.Parallel()
		code, env := get(t, router, "/api/v1/attendance/hourly?date=2024-01-05")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if env.Status != "success" {
			t.Fatalf("envelope status = %q", env.Status)
		}

		var counts []models.AttendanceCount
		decodeData(t, env, &counts)
		if len(counts) != 24 {
			t.Fatalf("got %d hour slots, want 24", len(counts))
		}
		if counts[8].Count != 2 || counts[9].Count != 1 {
			t.Errorf("08:00=%d 09:00=%d, want 2 and 1", counts[8].Count, counts[9].Count)
		}
	})

	t.Run("unique mode", func(t *testing.T) {
		t.Parallel()
		_, env := get(t, router, "/api/v1/attendance/hourly?date=2024-01-05&mode=unique")
		var counts []models.AttendanceCount
		decodeData(t, env, &counts)
		if counts[8].Count != 1 {
			t.Errorf("unique 08:00 = %d, want 1", counts[8].Count)
		}
	})

	t.Run("current date truncates to the current hour", func(t *testing.T) {
		t.Parallel()
		// The pinned clock says 2024-02-01 12:00.
		_, env := get(t, router, "/api/v1/attendance/hourly?date=2024-02-01")
		var counts []models.AttendanceCount
		decodeData(t, env, &counts)
		if len(counts) != 13 {
			t.Errorf("got %d hour slots, want 13 (00:00 through 12:00)", len(counts))
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		t.Parallel()
		code, env := get(t, router, "/api/v1/attendance/hourly?date=2024-01-05&mode=bogus")
		if code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", code)
		}
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
		}
	})
}

func TestFilterErrors(t *testing.T) {
	t.Parallel()
	router := setupTestServer(t)

	t.Run("date and range together", func(t *testing.T) {
		t.Parallel()
		code, env := get(t, router, "/api/v1/attendance/daily?date=2024-01-05&start=2024-01-01&end=2024-01-07")
		if code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", code)
		}
		if env.Error == nil || env.Error.Code != "INVALID_RANGE" {
			t.Errorf("error = %+v, want INVALID_RANGE", env.Error)
		}
	})

	t.Run("bare instance fragment without a world", func(t *testing.T) {
		t.Parallel()
		code, env := get(t, router, "/api/v1/attendance/daily?date=2024-01-05&instance=12345~region(us)")
		if code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", code)
		}
		if env.Error == nil || env.Error.Code != "AMBIGUOUS_FILTER" {
			t.Errorf("error = %+v, want AMBIGUOUS_FILTER", env.Error)
		}
	})
}

func TestAttendanceWeekly(t *testing.T) {
	t.Parallel()
	router := setupTestServer(t)

	code, env := get(t, router, "/api/v1/attendance/weekly?start=2024-01-01&end=2024-01-07")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}

	var rows []models.WeeklyAttendanceCount
	decodeData(t, env, &rows)
	if len(rows) != 7 {
		t.Fatalf("got %d rows, want 7", len(rows))
	}
	for _, row := range rows {
		if row.WeekStart != "2024-01-01" || row.WeekEnd != "2024-01-07" {
			t.Errorf("row %+v escaped the week", row)
		}
	}
}

func TestLocationsAndInstances(t *testing.T) {
	t.Parallel()
	router := setupTestServer(t)

	t.Run("locations", func(t *testing.T) {
		t.Parallel()
		code, env := get(t, router, "/api/v1/locations?date=2024-01-05")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		var visits []models.LocationVisit
		decodeData(t, env, &visits)
		if len(visits) != 2 || visits[0].WorldName != "The Pub" {
			t.Errorf("visits = %+v", visits)
		}
	})

	t.Run("locations with world filter", func(t *testing.T) {
		t.Parallel()
		code, env := get(t, router, "/api/v1/locations?date=2024-01-05&world=wrld_b")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		var visits []models.LocationVisit
		decodeData(t, env, &visits)
		if len(visits) != 1 {
			t.Fatalf("got %d visits, want 1", len(visits))
		}
		if visits[0].Location != "wrld_b:7" {
			t.Errorf("world filter wrld_b returned a visit in %s", visits[0].Location)
		}
	})

	t.Run("instances", func(t *testing.T) {
		t.Parallel()
		code, env := get(t, router, "/api/v1/instances?date=2024-01-05")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		var stats []models.InstanceStats
		decodeData(t, env, &stats)
		if len(stats) != 2 {
			t.Fatalf("got %d instances, want 2", len(stats))
		}
	})

	t.Run("instances with world filter", func(t *testing.T) {
		t.Parallel()
		code, env := get(t, router, "/api/v1/instances?date=2024-01-05&world=wrld_a")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		var stats []models.InstanceStats
		decodeData(t, env, &stats)
		if len(stats) != 1 {
			t.Fatalf("got %d instances, want 1", len(stats))
		}
		if stats[0].Location != "wrld_a:1" || stats[0].Visits != 1 || stats[0].DistinctDays != 1 {
			t.Errorf("stats = %+v", stats)
		}
	})

	t.Run("instances with instance filter", func(t *testing.T) {
		t.Parallel()
		code, env := get(t, router, "/api/v1/instances?date=2024-01-05&instance=wrld_b:7")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		var stats []models.InstanceStats
		decodeData(t, env, &stats)
		if len(stats) != 1 || stats[0].Location != "wrld_b:7" {
			t.Errorf("stats = %+v", stats)
		}
	})

	t.Run("empty result is an empty array, not an error", func(t *testing.T) {
		t.Parallel()
		code, env := get(t, router, "/api/v1/instances?date=2020-01-01")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		var stats []models.InstanceStats
		decodeData(t, env, &stats)
		if stats == nil || len(stats) != 0 {
			t.Errorf("stats = %+v, want empty array", stats)
		}
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()
	router := setupTestServer(t)

	code, env := get(t, router, "/api/v1/health")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}

	var health map[string]interface{}
	decodeData(t, env, &health)
	if health["status"] != "ok" {
		t.Errorf("health status = %v, want ok", health["status"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()
	router := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response is missing the X-Request-ID header")
	}
}
