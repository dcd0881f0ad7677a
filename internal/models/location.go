// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package models

import "strings"

// locationDelimiter separates the world id from the instance part in a
// VRChat location string, e.g. "wrld_abc123:45678~region(us)".
const locationDelimiter = ":"

// LocationID is the parsed form of a VRChat location string. It replaces
// ad-hoc substring arithmetic on the composite id with explicit equality
// and world-prefix operations.
type LocationID struct {
	// WorldID is the part before the first delimiter, e.g. "wrld_abc123".
	WorldID string `json:"world_id"`

	// InstancePart is everything after the first delimiter: instance
	// number plus modifiers, e.g. "45678~region(us)". Empty when the
	// location carries no instance suffix ("traveling", "offline", or a
	// bare world id).
	InstancePart string `json:"instance_part,omitempty"`
}

// ParseLocationID splits a raw location string into its world id and
// instance part. A location without a delimiter parses to a LocationID
// with an empty InstancePart.
func ParseLocationID(location string) LocationID {
	world, instance, found := strings.Cut(location, locationDelimiter)
	if !found {
		return LocationID{WorldID: world}
	}
	return LocationID{WorldID: world, InstancePart: instance}
}

// JoinLocationID materializes a full location string from a world id and a
// bare instance fragment. Used to resolve an instance filter given as just
// the fragment ("45678~region(us)") against a world filter.
func JoinLocationID(worldID, instancePart string) string {
	if instancePart == "" {
		return worldID
	}
	return worldID + locationDelimiter + instancePart
}

// String reassembles the canonical location string.
func (l LocationID) String() string {
	return JoinLocationID(l.WorldID, l.InstancePart)
}

// SameWorld reports whether the location belongs to the given world.
// The comparison is full-string equality on the parsed world id, so
// "wrld_A" never matches a location in "wrld_AB".
func (l LocationID) SameWorld(worldID string) bool {
	return l.WorldID == worldID
}

// IsQualified reports whether a filter string already names a world, i.e.
// contains the world/instance delimiter or looks like a bare world id.
// A bare instance fragment such as "45678~region(us)" is not qualified.
func IsQualified(location string) bool {
	return strings.Contains(location, locationDelimiter) ||
		strings.HasPrefix(location, "wrld_")
}
