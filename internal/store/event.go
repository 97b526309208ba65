// SPDX-License-Identifier: MIT

// Package store reads the scheduled-event snapshot out of SQLite.
package store

import "time"

// Event is one scheduled broadcast, constructed fresh from a query result
// and immutable afterwards.
type Event struct {
	ID     string
	Title  string // may be empty; consumers substitute a placeholder
	Sport  string
	League string
	Start  time.Time // UTC
	Stop   time.Time // UTC
	Status string    // free-text lifecycle marker ("final", "ended", ...)
}

// Overlaps reports whether the event's [Start, Stop] interval intersects
// [now-grace, now+window]: live now, starting within the window, or ended
// within the grace period. Comparisons happen on parsed instants, never on
// the raw column strings.
func (e Event) Overlaps(now time.Time, window, grace time.Duration) bool {
	return !e.Start.After(now.Add(window)) && !e.Stop.Before(now.Add(-grace))
}

// Live reports whether the event is in progress at the given instant.
func (e Event) Live(now time.Time) bool {
	return !e.Start.After(now) && !e.Stop.Before(now)
}
