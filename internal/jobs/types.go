// SPDX-License-Identifier: MIT

// Package jobs orchestrates one generator run: query the event snapshot,
// synthesize timelines, and write the playlist and guide documents.
package jobs

import "time"

// Sample is one of the first few selected events, for the run summary.
type Sample struct {
	Title string
	Live  bool
}

// Status reports the outcome of a completed run.
type Status struct {
	RunID         string    `json:"run_id"`
	LastRun       time.Time `json:"last_run"`
	Events        int       `json:"events"`
	PlaylistItems int       `json:"playlist_items"`
	M3UPath       string    `json:"m3u_path"`
	XMLTVPath     string    `json:"xmltv_path"`
	Samples       []Sample  `json:"-"`
}
