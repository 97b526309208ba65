// SPDX-License-Identifier: MIT

// Package timeutil holds the time parsing and formatting helpers shared by
// the store, timeline and guide layers.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

// isoZLayout is the only accepted input format: ISO-8601 UTC with a literal
// "Z" suffix, as produced by the upstream schedule loader.
const isoZLayout = "2006-01-02T15:04:05Z"

// xmltvLayout renders instants the way XMLTV consumers expect. The space
// before the zero offset is required by downstream players.
const xmltvLayout = "20060102150405 +0000"

// ParseISOZ parses a "YYYY-MM-DDTHH:MM:SSZ" timestamp and returns it in UTC.
// Any other format is an error; the run must fail rather than guess.
func ParseISOZ(s string) (time.Time, error) {
	t, err := time.Parse(isoZLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatISOZ renders t in the snapshot's column format.
func FormatISOZ(t time.Time) string {
	return t.UTC().Format(isoZLayout)
}

// FormatXMLTV renders t as "YYYYMMDDHHMMSS +0000".
func FormatXMLTV(t time.Time) string {
	return t.UTC().Format(xmltvLayout)
}

// MinutesBetween returns the number of minutes from a to b, rounded
// half-away-from-zero. Negative when b precedes a.
func MinutesBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Seconds() / 60.0))
}

// FormatLocalClock renders t as a human-readable local clock reading with
// the zone abbreviation, e.g. "2:00 PM EST".
func FormatLocalClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("3:04 PM MST")
}

// LoadLocation resolves a display timezone name. An empty or unrecognized
// name falls back to the host's local zone; this never fails the run.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
