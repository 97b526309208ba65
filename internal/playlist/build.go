// SPDX-License-Identifier: MIT

package playlist

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ManuGH/dl2g/internal/epg"
	"github.com/ManuGH/dl2g/internal/store"
	"github.com/ManuGH/dl2g/internal/timeline"
	"github.com/ManuGH/dl2g/internal/title"
)

// deepLinkScheme launches the external player straight into an event stream.
const deepLinkScheme = "sportscenter://x-callback-url/showWatchStream?playID="

// Options controls playlist naming and link rendering.
type Options struct {
	Group           string          // group-title and name prefix
	Policy          timeline.Policy // selects the naming variant
	AltLinks        bool            // render HTTP template links instead of the callback scheme
	AltLinkTemplate string          // e.g. "http://{host}/play"; event id appended as a path segment
}

// Build returns one playlist entry per event that has not already ended.
// The comparison is strictly Stop < now: an event ending exactly at "now"
// still gets an entry, while ended events stay guide-only.
func Build(events []store.Event, now time.Time, opts Options) []Item {
	items := make([]Item, 0, len(events))
	idx := 1
	for _, ev := range events {
		if ev.Stop.Before(now) {
			continue
		}
		items = append(items, Item{
			Name:  displayName(ev, idx, opts),
			TvgID: epg.ChannelID(ev.ID),
			Group: opts.Group,
			URL:   deepLink(ev.ID, opts),
		})
		idx++
	}
	return items
}

// displayName renders the tuner-facing name: an index-prefixed shortened
// title for BoundedStandby, a compact matchup code for FixedFullHistory.
func displayName(ev store.Event, idx int, opts Options) string {
	if opts.Policy == timeline.FixedFullHistory {
		return title.CompactMatchup(title.OrUnknown(ev.Title))
	}

	name := fmt.Sprintf("%s %d: %s", opts.Group, idx, title.ShortenKeepSuffix(ev.Title, title.DefaultMaxLen))
	if suffix := firstNonEmpty(ev.League, ev.Sport); suffix != "" {
		name += " (" + suffix + ")"
	}
	return name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// deepLink renders the tuning URI for an event id.
func deepLink(id string, opts Options) string {
	if opts.AltLinks {
		return strings.TrimRight(opts.AltLinkTemplate, "/") + "/" + url.PathEscape(id)
	}
	return deepLinkScheme + url.QueryEscape(id)
}
