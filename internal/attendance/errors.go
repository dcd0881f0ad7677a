// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package attendance

import "errors"

// Fatal precondition errors, surfaced before any store query is issued.
// An empty result set is never an error.
var (
	// ErrInvalidRange indicates a malformed date string or a start date
	// later than the end date.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrAmbiguousFilter indicates an instance filter given as a bare
	// fragment with no world id to resolve it against.
	ErrAmbiguousFilter = errors.New("ambiguous instance filter: no world id to resolve against")
)
