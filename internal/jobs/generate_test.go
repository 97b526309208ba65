// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"database/sql"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ManuGH/dl2g/internal/config"
	"github.com/ManuGH/dl2g/internal/epg"
	"github.com/ManuGH/dl2g/internal/store"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func fixtureConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "events.db")
	cfg.XMLTVPath = filepath.Join(dir, "out", "guide.xml")
	cfg.M3UPath = filepath.Join(dir, "out", "playlist.m3u")

	st, err := store.Open(cfg.DBPath)
	require.NoError(t, err)
	require.NoError(t, st.Migrate())
	seed := []store.Event{
		{
			ID:     "live-1",
			Title:  "Duke vs UNC",
			Sport:  "Basketball",
			League: "NCAA",
			Start:  time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC),
			Stop:   time.Date(2024, 1, 1, 13, 30, 0, 0, time.UTC),
		},
		{
			ID:    "ended-1",
			Title: "Finished Game",
			Start: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			Stop:  time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
		},
		{
			ID:    "upcoming-1",
			Title: "Army at Navy",
			Start: time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC),
			Stop:  time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC),
		},
	}
	for _, ev := range seed {
		require.NoError(t, st.Upsert(context.Background(), ev))
	}
	require.NoError(t, st.Close())
	return cfg
}

func TestGenerate(t *testing.T) {
	cfg := fixtureConfig(t)

	status, err := generateAt(context.Background(), cfg, testNow)
	require.NoError(t, err)

	assert.NotEmpty(t, status.RunID)
	assert.Equal(t, 3, status.Events)
	assert.Equal(t, 2, status.PlaylistItems) // ended event is playlist-excluded
	require.Len(t, status.Samples, 3)
	assert.True(t, status.Samples[1].Live) // live-1 sorts second by start
	assert.Equal(t, "Duke vs UNC", status.Samples[1].Title)

	// M3U: header plus two entries, no ended event.
	m3u, err := os.ReadFile(cfg.M3UPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(m3u), "\n"), "\n")
	assert.Equal(t, "#EXTM3U", lines[0])
	assert.NotContains(t, string(m3u), "ended-1")
	assert.Contains(t, string(m3u), `tvg-id="dl-live-1"`)
	assert.Contains(t, string(m3u), "sportscenter://x-callback-url/showWatchStream?playID=upcoming-1")

	// XMLTV: all three events present, the ended one with its stub.
	raw, err := os.ReadFile(cfg.XMLTVPath)
	require.NoError(t, err)
	var tv epg.TV
	require.NoError(t, xml.Unmarshal(raw, &tv))
	assert.Len(t, tv.Channels, 3)

	var endedProgrammes []epg.Programme
	for _, p := range tv.Programs {
		if p.Channel == "dl-ended-1" {
			endedProgrammes = append(endedProgrammes, p)
		}
	}
	require.Len(t, endedProgrammes, 2)
	assert.Equal(t, "EVENT ENDED", endedProgrammes[1].Title.Value)
}

func TestGenerateCreatesOutputDirs(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.XMLTVPath = filepath.Join(filepath.Dir(cfg.DBPath), "deep", "nested", "guide.xml")
	cfg.M3UPath = filepath.Join(filepath.Dir(cfg.DBPath), "deep", "nested", "playlist.m3u")

	_, err := generateAt(context.Background(), cfg, testNow)
	require.NoError(t, err)
	_, err = os.Stat(cfg.XMLTVPath)
	assert.NoError(t, err)
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.WindowHours = 0
	_, err := generateAt(context.Background(), cfg, testNow)
	require.Error(t, err)
}

func TestGenerateMissingDatabase(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.DBPath = filepath.Join(t.TempDir(), "missing", "events.db")
	_, err := generateAt(context.Background(), cfg, testNow)
	require.Error(t, err)
	// No partial outputs on failure.
	_, statErr := os.Stat(cfg.M3UPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateMalformedTimestampAborts(t *testing.T) {
	cfg := fixtureConfig(t)
	db, err := sql.Open("sqlite", cfg.DBPath)
	require.NoError(t, err)
	// julianday() can read this form, but the strict ISO-Z parser must not.
	_, err = db.Exec(
		`INSERT INTO events (id, title, start_utc, stop_utc) VALUES (?, ?, ?, ?)`,
		"bad", "Broken", "2024-01-01 11:45:00", "2024-01-01T13:00:00Z",
	)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = generateAt(context.Background(), cfg, testNow)
	require.Error(t, err)
}

func TestCountExtinfUnreadable(t *testing.T) {
	assert.Zero(t, countExtinf(filepath.Join(t.TempDir(), "absent.m3u")))
}

func TestCountExtinf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.m3u")
	body := "#EXTM3U\n#EXTINF:-1 tvg-id=\"a\",A\nuri-a\n#EXTINF:-1 tvg-id=\"b\",B\nuri-b\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	assert.Equal(t, 2, countExtinf(path))
}
