// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

// Package api serves the local read-only dashboard API. Every request is
// an independent engine invocation: parse the filter, run one read pass
// against the gamelog, aggregate, respond. Nothing is cached or shared
// between requests, so repeated identical requests against an unchanged
// database return identical bodies.
package api

import (
	"net/http"
	"time"

	"github.com/kestrelin/presencelog/internal/attendance"
	"github.com/kestrelin/presencelog/internal/config"
	"github.com/kestrelin/presencelog/internal/database"
	"github.com/kestrelin/presencelog/internal/metrics"
	"github.com/kestrelin/presencelog/internal/models"
)

// Handler carries the dependencies for all API endpoints.
type Handler struct {
	db        *database.DB
	cfg       *config.Config
	startTime time.Time

	// now is the injected clock for the partial-day rule; tests override it.
	now func() time.Time
}

// NewHandler creates the API handler.
func NewHandler(db *database.DB, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		cfg:       cfg,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// SetClock overrides the handler's clock. Intended for tests.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

// filterFromQuery builds and normalizes an attendance filter from the
// standard query parameters (date, start, end, world, instance).
func (h *Handler) filterFromQuery(r *http.Request) (*attendance.Filter, error) {
	q := r.URL.Query()
	f := &attendance.Filter{
		Date:     q.Get("date"),
		Start:    q.Get("start"),
		End:      q.Get("end"),
		WorldID:  q.Get("world"),
		Instance: q.Get("instance"),
	}
	if err := f.Normalize(h.now()); err != nil {
		return nil, err
	}
	return f, nil
}

// modeFromQuery parses the counting mode, defaulting to raw.
func modeFromQuery(r *http.Request) (attendance.Mode, error) {
	s := r.URL.Query().Get("mode")
	if s == "" {
		return attendance.ModeRaw, nil
	}
	return attendance.ParseMode(s)
}

// Health reports liveness and whether the gamelog is readable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
		dbStatus = err.Error()
	}

	respondSuccess(w, map[string]interface{}{
		"status":         status,
		"database":       dbStatus,
		"database_path":  h.db.Path(),
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	}, time.Now())
}

// AttendanceHourly serves hour-of-day attendance counts.
//
// Method: GET
// Path: /api/v1/attendance/hourly
// Query: date | start+end, world, instance, mode=raw|unique
func (h *Handler) AttendanceHourly(w http.ResponseWriter, r *http.Request) {
	h.attendanceSeries(w, r, attendance.GranularityHourly, func(events []models.PresenceEvent, f *attendance.Filter, mode attendance.Mode) interface{} {
		return attendance.Hourly(events, f, mode, h.now())
	})
}

// AttendanceDaily serves calendar-date attendance counts.
func (h *Handler) AttendanceDaily(w http.ResponseWriter, r *http.Request) {
	h.attendanceSeries(w, r, attendance.GranularityDaily, func(events []models.PresenceEvent, f *attendance.Filter, mode attendance.Mode) interface{} {
		return attendance.Daily(events, f, mode)
	})
}

// AttendanceWeekday serves day-of-week attendance counts.
func (h *Handler) AttendanceWeekday(w http.ResponseWriter, r *http.Request) {
	h.attendanceSeries(w, r, attendance.GranularityWeekday, func(events []models.PresenceEvent, f *attendance.Filter, mode attendance.Mode) interface{} {
		return attendance.Weekday(events, f, mode)
	})
}

// AttendanceWeekly serves the weekly (week x day-of-week) breakdown.
func (h *Handler) AttendanceWeekly(w http.ResponseWriter, r *http.Request) {
	h.attendanceSeries(w, r, attendance.GranularityWeekly, func(events []models.PresenceEvent, f *attendance.Filter, mode attendance.Mode) interface{} {
		return attendance.Weekly(events, f, mode, h.cfg.WeekAnchorWeekday())
	})
}

// AttendanceHourlyAverages serves per-hour means across a date range.
func (h *Handler) AttendanceHourlyAverages(w http.ResponseWriter, r *http.Request) {
	h.attendanceSeries(w, r, attendance.GranularityHourly, func(events []models.PresenceEvent, f *attendance.Filter, mode attendance.Mode) interface{} {
		return attendance.HourlyAverages(events, f, mode)
	})
}

// AttendanceWeekdayAverages serves per-weekday means across a date range.
func (h *Handler) AttendanceWeekdayAverages(w http.ResponseWriter, r *http.Request) {
	h.attendanceSeries(w, r, attendance.GranularityWeekday, func(events []models.PresenceEvent, f *attendance.Filter, mode attendance.Mode) interface{} {
		return attendance.WeekdayAverages(events, f, mode)
	})
}

// attendanceSeries is the shared request flow for the attendance
// endpoints: filter, single read pass, pure aggregation, respond.
func (h *Handler) attendanceSeries(
	w http.ResponseWriter,
	r *http.Request,
	granularity attendance.Granularity,
	aggregate func([]models.PresenceEvent, *attendance.Filter, attendance.Mode) interface{},
) {
	start := time.Now()

	f, err := h.filterFromQuery(r)
	if err != nil {
		respondFilterError(w, err)
		return
	}
	mode, err := modeFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	events, err := h.db.QueryEvents(r.Context(), f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to read the VRCX database", err)
		return
	}

	aggStart := time.Now()
	data := aggregate(events, f, mode)
	metrics.AggregationDuration.
		WithLabelValues(string(granularity)).
		Observe(time.Since(aggStart).Seconds())

	respondSuccess(w, data, start)
}

// Locations serves the raw location history for a date or range.
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	f, err := h.filterFromQuery(r)
	if err != nil {
		respondFilterError(w, err)
		return
	}

	visits, err := h.db.QueryVisits(r.Context(), f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to read the VRCX database", err)
		return
	}
	if visits == nil {
		visits = []models.LocationVisit{}
	}

	respondSuccess(w, visits, start)
}

// Instances serves per-instance visit statistics (distinct calendar dates
// visited, total time, first and last visit).
func (h *Handler) Instances(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	f, err := h.filterFromQuery(r)
	if err != nil {
		respondFilterError(w, err)
		return
	}

	visits, err := h.db.QueryVisits(r.Context(), f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to read the VRCX database", err)
		return
	}

	stats := attendance.InstanceVisitCounts(visits)
	if stats == nil {
		stats = []models.InstanceStats{}
	}

	respondSuccess(w, stats, start)
}
