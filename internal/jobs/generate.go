// SPDX-License-Identifier: MIT

package jobs

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ManuGH/dl2g/internal/config"
	"github.com/ManuGH/dl2g/internal/epg"
	xglog "github.com/ManuGH/dl2g/internal/log"
	"github.com/ManuGH/dl2g/internal/playlist"
	"github.com/ManuGH/dl2g/internal/store"
	"github.com/ManuGH/dl2g/internal/timeline"
	"github.com/ManuGH/dl2g/internal/timeutil"
	"github.com/ManuGH/dl2g/internal/title"
)

const maxSamples = 5

// Generate performs one complete run against the current wall clock.
func Generate(ctx context.Context, cfg config.Config) (*Status, error) {
	return generateAt(ctx, cfg, time.Now().UTC())
}

// generateAt is separated for deterministic tests.
func generateAt(ctx context.Context, cfg config.Config, now time.Time) (*Status, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	runID := uuid.NewString()
	ctx = xglog.ContextWithRunID(ctx, runID)
	logger := xglog.WithComponentFromContext(ctx, "jobs")
	logger.Info().
		Str("event", "generate.start").
		Str("db", cfg.DBPath).
		Str("policy", cfg.Policy).
		Time("now", now).
		Msg("starting run")

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error().Err(cerr).Str("event", "store.close_error").Msg("failed to close event store")
		}
	}()

	events, err := st.EventsForWindow(ctx, now, cfg.Window(), cfg.Grace())
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	logger.Info().
		Str("event", "events.selected").
		Int("count", len(events)).
		Dur("window", cfg.Window()).
		Dur("grace", cfg.Grace()).
		Msg("events selected")

	loc := timeutil.LoadLocation(cfg.Timezone)
	opts := cfg.TimelineOptions(loc)
	timelines := make(map[string][]timeline.Block, len(events))
	for _, ev := range events {
		timelines[ev.ID] = timeline.Synthesize(ev, now, opts)
	}

	tv := epg.BuildGuide(events, timelines, cfg.ProviderLabel)
	items := playlist.Build(events, now, playlist.Options{
		Group:           cfg.Group,
		Policy:          opts.Policy,
		AltLinks:        cfg.AltLinks,
		AltLinkTemplate: cfg.AltLinkTemplate,
	})

	for _, path := range []string{cfg.M3UPath, cfg.XMLTVPath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
	}

	if err := writeM3U(ctx, cfg.M3UPath, items); err != nil {
		return nil, err
	}
	logger.Info().
		Str("event", "playlist.write").
		Str("path", cfg.M3UPath).
		Int("items", len(items)).
		Msg("playlist written")

	if err := writeXMLTV(ctx, cfg.XMLTVPath, tv); err != nil {
		return nil, err
	}
	logger.Info().
		Str("event", "guide.write").
		Str("path", cfg.XMLTVPath).
		Int("channels", len(tv.Channels)).
		Int("programmes", len(tv.Programs)).
		Msg("guide written")

	status := &Status{
		RunID:         runID,
		LastRun:       now,
		Events:        len(events),
		PlaylistItems: countExtinf(cfg.M3UPath),
		M3UPath:       cfg.M3UPath,
		XMLTVPath:     cfg.XMLTVPath,
	}
	for _, ev := range events {
		if len(status.Samples) == maxSamples {
			break
		}
		status.Samples = append(status.Samples, Sample{
			Title: title.OrUnknown(ev.Title),
			Live:  ev.Live(now),
		})
	}
	return status, nil
}

// countExtinf re-reads the written playlist and counts its entries. The
// count is informational only; an unreadable file yields zero.
func countExtinf(path string) int {
	f, err := os.Open(path) // #nosec G304 -- path comes from validated configuration
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "#EXTINF") {
			count++
		}
	}
	return count
}
