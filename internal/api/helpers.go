// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/kestrelin/presencelog/internal/attendance"
	"github.com/kestrelin/presencelog/internal/logging"
	"github.com/kestrelin/presencelog/internal/models"
)

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", code).Err(err).Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Data:     nil,
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondSuccess wraps data in the standard envelope.
func respondSuccess(w http.ResponseWriter, data interface{}, start time.Time) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondFilterError maps engine precondition failures to coded 400s and
// everything else to a 500 store error.
func respondFilterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attendance.ErrInvalidRange):
		respondError(w, http.StatusBadRequest, "INVALID_RANGE", err.Error(), nil)
	case errors.Is(err, attendance.ErrAmbiguousFilter):
		respondError(w, http.StatusBadRequest, "AMBIGUOUS_FILTER", err.Error(), nil)
	default:
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to read the VRCX database", err)
	}
}
