// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/kestrelin/presencelog/internal/models"
)

// barWidth is the width of a full-scale chart bar in runes.
const barWidth = 40

// WriteChart renders an attendance count series as a horizontal bar chart.
// Bars are scaled so the largest count fills the full width; a non-zero
// count always shows at least one bar segment. An empty series (or one
// that is all zeros) writes nothing.
func WriteChart(w io.Writer, title string, series []models.AttendanceCount) error {
	maxCount := 0
	for _, row := range series {
		if row.Count > maxCount {
			maxCount = row.Count
		}
	}
	if maxCount == 0 {
		return nil
	}

	if title != "" {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len(title))); err != nil {
			return err
		}
	}

	labelWidth := 0
	for _, row := range series {
		if len(row.Bucket) > labelWidth {
			labelWidth = len(row.Bucket)
		}
	}

	for _, row := range series {
		bar := barWidth * row.Count / maxCount
		if row.Count > 0 && bar == 0 {
			bar = 1
		}
		_, err := fmt.Fprintf(w, "%-*s  %s %d\n", labelWidth, row.Bucket, strings.Repeat("█", bar), row.Count)
		if err != nil {
			return err
		}
	}
	return nil
}
