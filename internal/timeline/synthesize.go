// SPDX-License-Identifier: MIT

package timeline

import (
	"strings"
	"time"

	"github.com/ManuGH/dl2g/internal/store"
	"github.com/ManuGH/dl2g/internal/timeutil"
	"github.com/ManuGH/dl2g/internal/title"
)

// Kind classifies a programme block within a channel timeline.
type Kind int

const (
	KindStandby Kind = iota // pre-event filler
	KindEvent               // the broadcast itself
	KindEnded               // post-event filler
)

// Block is one timeline segment. Stop is always after Start; tiles shorter
// than the sliver threshold are suppressed, never emitted.
type Block struct {
	Start      time.Time
	Stop       time.Time
	Kind       Kind
	Label      string
	Desc       string
	Categories []string
	Live       bool
}

// Filler labels.
const (
	labelStandby = "STAND BY"
	labelEnded   = "EVENT ENDED"
	labelOffline = "STREAM OFFLINE"
)

// minTile is the sliver threshold: no emitted filler tile is shorter.
const minTileMinutes = 5

// descMaxLen caps the generated event description.
const descMaxLen = 1000

// Options carries the tiling knobs; see config for the defaults.
type Options struct {
	Policy       Policy
	MaxStandby   time.Duration  // BoundedStandby lookback bound
	FixedHorizon time.Duration  // FixedFullHistory lookback and lookahead
	TileSize     time.Duration  // filler grid size
	EndedStub    time.Duration  // BoundedStandby "EVENT ENDED" length
	Location     *time.Location // zone for localized annotations
}

// Synthesize builds the ordered, non-overlapping block sequence for one
// event. An event with stop <= start yields an empty timeline.
func Synthesize(ev store.Event, now time.Time, opts Options) []Block {
	if !ev.Stop.After(ev.Start) {
		return nil
	}

	var blocks []Block
	switch opts.Policy {
	case FixedFullHistory:
		blocks = appendPreTiles(blocks, ev.Start.Add(-opts.FixedHorizon), ev.Start, opts,
			labelStandby, "STARTS AT "+timeutil.FormatLocalClock(ev.Start, opts.Location))
	default:
		if ev.Start.After(now) {
			preMax := ev.Start.Sub(now)
			if preMax > opts.MaxStandby {
				preMax = opts.MaxStandby
			}
			blocks = appendPreTiles(blocks, ev.Start.Add(-preMax), ev.Start, opts, labelStandby, "")
		}
	}

	blocks = append(blocks, eventBlock(ev, now, opts))

	switch opts.Policy {
	case FixedFullHistory:
		blocks = appendPostTiles(blocks, ev.Stop, ev.Stop.Add(opts.FixedHorizon), opts,
			labelOffline, "ENDED AT "+timeutil.FormatLocalClock(ev.Stop, opts.Location))
	default:
		// Visible "ended" stub, with one minute of tolerance around now.
		if !ev.Stop.After(now.Add(time.Minute)) {
			blocks = append(blocks, Block{
				Start: ev.Stop,
				Stop:  ev.Stop.Add(opts.EndedStub),
				Kind:  KindEnded,
				Label: labelEnded,
			})
		}
	}
	return blocks
}

// eventBlock builds the single block covering [start, stop].
func eventBlock(ev store.Event, now time.Time, opts Options) Block {
	cats := []string{"Sports", "Sports event"}
	if ev.Sport != "" {
		cats = append(cats, ev.Sport)
	}
	if ev.League != "" {
		cats = append(cats, ev.League)
	}

	b := Block{
		Start:      ev.Start,
		Stop:       ev.Stop,
		Kind:       KindEvent,
		Label:      title.OrUnknown(ev.Title),
		Categories: cats,
	}
	if opts.Policy == FixedFullHistory {
		b.Live = ev.Live(now)
		b.Desc = eventDesc(ev)
	}
	return b
}

// eventDesc concatenates the uppercased title/sport/league/status tokens.
func eventDesc(ev store.Event) string {
	var parts []string
	for _, s := range []string{title.OrUnknown(ev.Title), ev.Sport, ev.League, ev.Status} {
		if s != "" {
			parts = append(parts, strings.ToUpper(s))
		}
	}
	desc := strings.Join(parts, " | ")
	if r := []rune(desc); len(r) > descMaxLen {
		desc = string(r[:descMaxLen])
	}
	return desc
}

// alignDown snaps t to the top of its tile-size boundary of the clock.
func alignDown(t time.Time, tile time.Duration) time.Time {
	tileMin := int(tile.Minutes())
	if tileMin <= 0 {
		return t
	}
	t = t.UTC()
	aligned := (t.Minute() / tileMin) * tileMin
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), aligned, 0, 0, time.UTC)
}

// appendPreTiles tiles [from, until) on the clock grid, clipping the last
// tile to until and suppressing slivers.
func appendPreTiles(blocks []Block, from, until time.Time, opts Options, label, desc string) []Block {
	if !until.After(from) {
		return blocks
	}
	for cursor := alignDown(from, opts.TileSize); cursor.Before(until); cursor = cursor.Add(opts.TileSize) {
		stop := cursor.Add(opts.TileSize)
		if stop.After(until) {
			stop = until
		}
		if timeutil.MinutesBetween(cursor, stop) >= minTileMinutes {
			blocks = append(blocks, Block{Start: cursor, Stop: stop, Kind: KindStandby, Label: label, Desc: desc})
		}
	}
	return blocks
}

// appendPostTiles tiles (from, until] on the clock grid, clipping the first
// tile to from and suppressing slivers.
func appendPostTiles(blocks []Block, from, until time.Time, opts Options, label, desc string) []Block {
	if !until.After(from) {
		return blocks
	}
	for cursor := alignDown(from, opts.TileSize); cursor.Before(until); cursor = cursor.Add(opts.TileSize) {
		start, stop := cursor, cursor.Add(opts.TileSize)
		if start.Before(from) {
			start = from
		}
		if stop.After(until) {
			stop = until
		}
		if timeutil.MinutesBetween(start, stop) >= minTileMinutes {
			blocks = append(blocks, Block{Start: start, Stop: stop, Kind: KindEnded, Label: label, Desc: desc})
		}
	}
	return blocks
}
