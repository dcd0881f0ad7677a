// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV renders a Table as CSV with a header row, matching the columns
// of the original export scripts. An empty table writes nothing, not even
// the header.
func WriteCSV(w io.Writer, t Table) error {
	if t.Empty() {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
