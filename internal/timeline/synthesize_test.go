// SPDX-License-Identifier: MIT

package timeline

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/dl2g/internal/store"
)

var now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func defaultOpts() Options {
	return Options{
		Policy:       BoundedStandby,
		MaxStandby:   6 * time.Hour,
		FixedHorizon: 8 * time.Hour,
		TileSize:     30 * time.Minute,
		EndedStub:    30 * time.Minute,
		Location:     time.UTC,
	}
}

func event(start, stop time.Time) store.Event {
	return store.Event{
		ID:     "ev1",
		Title:  "Duke vs UNC",
		Sport:  "Basketball",
		League: "NCAA",
		Start:  start,
		Stop:   stop,
	}
}

// checkInvariants asserts strict ordering, non-overlap and the sliver floor.
func checkInvariants(t *testing.T, blocks []Block) {
	t.Helper()
	for i, b := range blocks {
		assert.True(t, b.Stop.After(b.Start), "block %d has non-positive duration", i)
		assert.GreaterOrEqual(t, int(b.Stop.Sub(b.Start).Minutes()), 5, "block %d shorter than 5 minutes", i)
		if i > 0 {
			prev := blocks[i-1]
			assert.True(t, prev.Start.Before(b.Start), "blocks %d/%d not strictly ordered", i-1, i)
			assert.False(t, b.Start.Before(prev.Stop), "blocks %d/%d overlap", i-1, i)
		}
	}
}

func TestSynthesizeUpcomingBoundedStandby(t *testing.T) {
	// Starts in 2h: standby from now (aligned) to start, then the event.
	start := now.Add(2 * time.Hour)
	blocks := Synthesize(event(start, start.Add(2*time.Hour)), now, defaultOpts())
	checkInvariants(t, blocks)

	require.NotEmpty(t, blocks)
	last := blocks[len(blocks)-1]
	assert.Equal(t, KindEvent, last.Kind)
	assert.Equal(t, "Duke vs UNC", last.Label)

	var standby int
	for _, b := range blocks[:len(blocks)-1] {
		require.Equal(t, KindStandby, b.Kind)
		assert.Equal(t, "STAND BY", b.Label)
		standby++
	}
	// 2h of 30m tiles.
	assert.Equal(t, 4, standby)
	assert.True(t, blocks[len(blocks)-2].Stop.Equal(start), "standby must clip to event start")
}

func TestSynthesizeStandbyBoundedByMaxStandby(t *testing.T) {
	// Starts in 10h: only the last 6h get standby tiles.
	start := now.Add(10 * time.Hour)
	blocks := Synthesize(event(start, start.Add(time.Hour)), now, defaultOpts())
	checkInvariants(t, blocks)

	require.NotEmpty(t, blocks)
	first := blocks[0]
	assert.Equal(t, KindStandby, first.Kind)
	assert.True(t, first.Start.Equal(start.Add(-6*time.Hour)),
		"standby horizon should open at start-6h, got %v", first.Start)
	assert.Equal(t, 12, len(blocks)-1)
}

func TestSynthesizeLiveEventHasNoStandby(t *testing.T) {
	blocks := Synthesize(event(now.Add(-time.Hour), now.Add(time.Hour)), now, defaultOpts())
	checkInvariants(t, blocks)
	require.Len(t, blocks, 1)
	assert.Equal(t, KindEvent, blocks[0].Kind)
}

func TestSynthesizeGridAlignment(t *testing.T) {
	// Start at 14:10; first tile must anchor to the clock grid (12:00),
	// and the last tile clips to 14:10.
	start := time.Date(2024, 1, 1, 14, 10, 0, 0, time.UTC)
	blocks := Synthesize(event(start, start.Add(time.Hour)), now, defaultOpts())
	checkInvariants(t, blocks)

	first := blocks[0]
	assert.Zero(t, first.Start.Minute()%30)
	assert.Zero(t, first.Start.Second())

	lastStandby := blocks[len(blocks)-2]
	assert.True(t, lastStandby.Stop.Equal(start))
	// 14:00–14:10 is a 10 minute clipped tile, above the sliver floor.
	assert.Equal(t, 10*time.Minute, lastStandby.Stop.Sub(lastStandby.Start))
}

func TestSynthesizeSliverSuppressed(t *testing.T) {
	// Start at 14:04: the clipped 14:00–14:04 tile is under 5 minutes and
	// must not be emitted.
	start := time.Date(2024, 1, 1, 14, 4, 0, 0, time.UTC)
	blocks := Synthesize(event(start, start.Add(time.Hour)), now, defaultOpts())
	checkInvariants(t, blocks)

	for _, b := range blocks {
		if b.Kind == KindStandby {
			assert.False(t, b.Start.Equal(time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)),
				"sliver tile must be suppressed")
		}
	}
	lastStandby := blocks[len(blocks)-2]
	assert.True(t, lastStandby.Stop.Equal(time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)))
}

func TestSynthesizeEndedStub(t *testing.T) {
	stop := now.Add(-30 * time.Minute)
	blocks := Synthesize(event(stop.Add(-2*time.Hour), stop), now, defaultOpts())
	checkInvariants(t, blocks)

	require.Len(t, blocks, 2)
	stub := blocks[1]
	assert.Equal(t, KindEnded, stub.Kind)
	assert.Equal(t, "EVENT ENDED", stub.Label)
	assert.True(t, stub.Start.Equal(stop))
	assert.Equal(t, 30*time.Minute, stub.Stop.Sub(stub.Start))
}

func TestSynthesizeEndedStubTolerance(t *testing.T) {
	// Ending 30s from now is within the one minute tolerance.
	stopSoon := now.Add(30 * time.Second)
	blocks := Synthesize(event(now.Add(-time.Hour), stopSoon), now, defaultOpts())
	require.Equal(t, KindEnded, blocks[len(blocks)-1].Kind)

	// Ending in 5 minutes is not.
	stopLater := now.Add(5 * time.Minute)
	blocks = Synthesize(event(now.Add(-time.Hour), stopLater), now, defaultOpts())
	require.Equal(t, KindEvent, blocks[len(blocks)-1].Kind)
}

func TestSynthesizeCategories(t *testing.T) {
	blocks := Synthesize(event(now, now.Add(time.Hour)), now, defaultOpts())
	var ev *Block
	for i := range blocks {
		if blocks[i].Kind == KindEvent {
			ev = &blocks[i]
		}
	}
	require.NotNil(t, ev)
	want := []string{"Sports", "Sports event", "Basketball", "NCAA"}
	if diff := cmp.Diff(want, ev.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeCategoriesOmitEmpty(t *testing.T) {
	e := event(now, now.Add(time.Hour))
	e.Sport = ""
	e.League = ""
	blocks := Synthesize(e, now, defaultOpts())
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"Sports", "Sports event"}, blocks[0].Categories)
}

func TestSynthesizeEmptyTitlePlaceholder(t *testing.T) {
	e := event(now, now.Add(time.Hour))
	e.Title = ""
	blocks := Synthesize(e, now, defaultOpts())
	require.Len(t, blocks, 1)
	assert.Equal(t, "Unknown Event", blocks[0].Label)
}

func TestSynthesizeZeroLengthEvent(t *testing.T) {
	assert.Empty(t, Synthesize(event(now, now), now, defaultOpts()))
	assert.Empty(t, Synthesize(event(now, now.Add(-time.Hour)), now, defaultOpts()))
}

func TestSynthesizeFixedFullHistory(t *testing.T) {
	opts := defaultOpts()
	opts.Policy = FixedFullHistory
	est := time.FixedZone("EST", -5*3600)
	opts.Location = est

	start := time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)
	stop := start.Add(2 * time.Hour)
	blocks := Synthesize(event(start, stop), now, opts)
	checkInvariants(t, blocks)

	// 8h lookback of 30m tiles, the event, 8h lookahead.
	var pre, post int
	var evBlock *Block
	for i := range blocks {
		switch blocks[i].Kind {
		case KindStandby:
			pre++
			assert.Equal(t, "STAND BY", blocks[i].Label)
			assert.Equal(t, "STARTS AT 2:00 PM EST", blocks[i].Desc)
		case KindEnded:
			post++
			assert.Equal(t, "STREAM OFFLINE", blocks[i].Label)
			assert.Equal(t, "ENDED AT 4:00 PM EST", blocks[i].Desc)
		case KindEvent:
			evBlock = &blocks[i]
		}
	}
	assert.Equal(t, 16, pre)
	assert.Equal(t, 16, post)
	require.NotNil(t, evBlock)

	assert.True(t, blocks[0].Start.Equal(start.Add(-8*time.Hour)))
	assert.True(t, blocks[len(blocks)-1].Stop.Equal(stop.Add(8*time.Hour)))
}

func TestSynthesizeFixedFullHistoryLiveFlag(t *testing.T) {
	opts := defaultOpts()
	opts.Policy = FixedFullHistory

	live := Synthesize(event(now.Add(-time.Hour), now.Add(time.Hour)), now, opts)
	for _, b := range live {
		if b.Kind == KindEvent {
			assert.True(t, b.Live)
		} else {
			assert.False(t, b.Live)
		}
	}

	upcoming := Synthesize(event(now.Add(2*time.Hour), now.Add(4*time.Hour)), now, opts)
	for _, b := range upcoming {
		assert.False(t, b.Live)
	}
}

func TestSynthesizeBoundedStandbyNeverFlagsLive(t *testing.T) {
	blocks := Synthesize(event(now.Add(-time.Hour), now.Add(time.Hour)), now, defaultOpts())
	require.Len(t, blocks, 1)
	assert.False(t, blocks[0].Live)
	assert.Empty(t, blocks[0].Desc)
}

func TestEventDesc(t *testing.T) {
	e := event(now, now.Add(time.Hour))
	e.Status = "final"
	assert.Equal(t, "DUKE VS UNC | BASKETBALL | NCAA | FINAL", eventDesc(e))

	e.Sport = ""
	e.League = ""
	e.Status = ""
	assert.Equal(t, "DUKE VS UNC", eventDesc(e))
}

func TestEventDescCapped(t *testing.T) {
	e := event(now, now.Add(time.Hour))
	e.Title = strings.Repeat("A", 2000)
	desc := eventDesc(e)
	assert.LessOrEqual(t, len([]rune(desc)), 1000)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, BoundedStandby, p)

	p, err = ParsePolicy("fixed-full-history")
	require.NoError(t, err)
	assert.Equal(t, FixedFullHistory, p)

	_, err = ParsePolicy("both")
	require.Error(t, err)
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "bounded-standby", BoundedStandby.String())
	assert.Equal(t, "fixed-full-history", FixedFullHistory.String())
}
