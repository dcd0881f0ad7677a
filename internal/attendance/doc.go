// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

// Package attendance implements the aggregation engine: bucketing rules,
// filter composition, and the grouping/zero-fill/partial-day semantics that
// decide which gamelog rows count toward which bucket.
//
// Everything here is pure: functions take an already-loaded slice of rows
// plus explicit parameters (including the current time, injected rather than
// read from the system clock) and return ordered output series. Running the
// same aggregation twice over the same rows yields identical output.
//
// Counting modes:
//   - raw: every row counts once, so one person's join+leave pair adds 2 to
//     an hourly count. This measures event volume, not people present, and
//     is kept as documented behavior.
//   - unique: distinct display names per bucket; a person seen via both a
//     join and a leave in the same bucket counts once.
package attendance
