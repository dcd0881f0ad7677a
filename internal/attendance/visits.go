// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package attendance

import (
	"sort"

	"github.com/kestrelin/presencelog/internal/models"
)

// InstanceVisitCounts summarizes location-visit rows per instance. This is
// the related-but-distinct visit-count aggregation: it counts visits and
// distinct calendar dates visited, not people. Input rows are expected in
// ascending timestamp order, as the store returns them.
//
// Output is ordered by total time descending (busiest instances first),
// with the location string as a deterministic tie-break.
func InstanceVisitCounts(visits []models.LocationVisit) []models.InstanceStats {
	byLocation := make(map[string]*models.InstanceStats)
	days := make(map[string]map[string]struct{})

	for _, v := range visits {
		stats, ok := byLocation[v.Location]
		if !ok {
			stats = &models.InstanceStats{
				Location:   v.Location,
				WorldName:  v.WorldName,
				FirstVisit: v.CreatedAt,
			}
			byLocation[v.Location] = stats
			days[v.Location] = make(map[string]struct{})
		}

		stats.Visits++
		stats.LastVisit = v.CreatedAt
		if v.DurationSeconds != nil {
			stats.TotalSeconds += *v.DurationSeconds
		}
		days[v.Location][DateBucket(v.CreatedAt)] = struct{}{}
	}

	out := make([]models.InstanceStats, 0, len(byLocation))
	for loc, stats := range byLocation {
		stats.DistinctDays = len(days[loc])
		out = append(out, *stats)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSeconds != out[j].TotalSeconds {
			return out[i].TotalSeconds > out[j].TotalSeconds
		}
		return out[i].Location < out[j].Location
	})
	return out
}
