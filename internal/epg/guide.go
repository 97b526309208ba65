// SPDX-License-Identifier: MIT

package epg

import (
	"github.com/ManuGH/dl2g/internal/store"
	"github.com/ManuGH/dl2g/internal/timeline"
	"github.com/ManuGH/dl2g/internal/timeutil"
	"github.com/ManuGH/dl2g/internal/title"
)

// channelIDPrefix keeps guide channel ids stable and collision-free across
// runs; the playlist tvg-id must match.
const channelIDPrefix = "dl-"

// ChannelID derives the synthetic channel id for an event.
func ChannelID(eventID string) string {
	return channelIDPrefix + eventID
}

// BuildGuide assembles one synthetic channel per event, with the shortened
// event title and the provider label as display names, and attaches the
// synthesized programme blocks. Timelines are keyed by event id.
func BuildGuide(events []store.Event, timelines map[string][]timeline.Block, providerLabel string) *TV {
	tv := &TV{
		Generator: "dl2g",
		Channels:  make([]Channel, 0, len(events)),
	}

	for _, ev := range events {
		chanID := ChannelID(ev.ID)
		tv.Channels = append(tv.Channels, Channel{
			ID: chanID,
			DisplayName: []string{
				title.ShortenKeepSuffix(ev.Title, title.DefaultMaxLen),
				providerLabel,
			},
		})

		for _, b := range timelines[ev.ID] {
			p := Programme{
				Start:   timeutil.FormatXMLTV(b.Start),
				Stop:    timeutil.FormatXMLTV(b.Stop),
				Channel: chanID,
				Title:   Title{Lang: "en", Value: b.Label},
				Desc:    b.Desc,
			}
			for _, c := range b.Categories {
				p.Categories = append(p.Categories, Category{Lang: "en", Value: c})
			}
			if b.Live {
				p.Live = &struct{}{}
			}
			tv.Programs = append(tv.Programs, p)
		}
	}
	return tv
}
