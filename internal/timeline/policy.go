// SPDX-License-Identifier: MIT

// Package timeline synthesizes the per-channel programme block sequence for
// one event: pre-event filler tiles, the event block, post-event filler.
package timeline

import "fmt"

// Policy selects one of the two filler strategies. It is chosen once via
// configuration and never mixed within a run.
type Policy int

const (
	// BoundedStandby fills upcoming dead air only: standby tiles from
	// max(start-maxStandby, now) to start, and a single fixed-length
	// "EVENT ENDED" stub once the event is over.
	BoundedStandby Policy = iota

	// FixedFullHistory fills a fixed lookback before start and a fixed
	// lookahead after stop regardless of "now", annotates filler with
	// localized start/end times, and flags the event block when live.
	FixedFullHistory
)

// String implements fmt.Stringer for logs and config round-trips.
func (p Policy) String() string {
	switch p {
	case BoundedStandby:
		return "bounded-standby"
	case FixedFullHistory:
		return "fixed-full-history"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy resolves a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "bounded-standby":
		return BoundedStandby, nil
	case "fixed-full-history":
		return FixedFullHistory, nil
	default:
		return BoundedStandby, fmt.Errorf("unknown timeline policy %q", s)
	}
}
