// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

// Package models defines the domain types shared across Presencelog:
// the VRCX gamelog row shapes, the parsed location identifier, and the
// aggregation output types consumed by report emitters and API handlers.
package models

import "time"

// EventType is the kind of presence event recorded by VRCX.
type EventType string

// Presence event types as stored in the gamelog_join_leave.type column.
const (
	EventJoin  EventType = "join"
	EventLeave EventType = "leave"
)

// IsValid reports whether the event type is one VRCX writes.
func (t EventType) IsValid() bool {
	return t == EventJoin || t == EventLeave
}

// PresenceEvent is a single join or leave record from the VRCX gamelog.
// Rows are owned by VRCX and immutable once read; the display name is an
// opaque string, not a stable identity (two accounts can share one name).
type PresenceEvent struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Type        EventType `json:"type"`
	DisplayName string    `json:"display_name"`
	UserID      string    `json:"user_id"`
	Location    string    `json:"location"`
}

// LocationVisit is a single entry from the gamelog_location table: one stay
// in an instance, with the time spent there. Used only for the location
// history and instance statistics views, never for attendance counting.
type LocationVisit struct {
	ID              int64     `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Location        string    `json:"location"`
	WorldID         string    `json:"world_id"`
	WorldName       string    `json:"world_name"`
	GroupName       string    `json:"group_name,omitempty"`
	DurationSeconds *int64    `json:"duration_seconds"`
}
