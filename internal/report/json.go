// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package report

import (
	"io"

	"github.com/goccy/go-json"
)

// WriteJSON renders an engine output series as indented JSON. Unlike the
// text emitters, an empty series still writes a JSON empty array so the
// output stays machine-parseable.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
