// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

// Command presencelog reads the VRCX gamelog and reports time-bucketed
// attendance metrics. See `presencelog --help`.
package main

import (
	"fmt"
	"os"

	"github.com/kestrelin/presencelog/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
