// SPDX-License-Identifier: MIT

// Package config builds the run configuration once at startup. Components
// receive it explicitly and never read process state themselves.
package config

import (
	"fmt"
	"time"

	"github.com/ManuGH/dl2g/internal/timeline"
)

// Config is the complete, explicit run configuration.
type Config struct {
	DBPath    string `yaml:"db_path"`
	XMLTVPath string `yaml:"xmltv_path"`
	M3UPath   string `yaml:"m3u_path"`

	WindowHours      int `yaml:"window_hours"`       // forward planning window
	MaxStandbyHours  int `yaml:"max_standby_hours"`  // BoundedStandby filler horizon
	FixedLookHours   int `yaml:"fixed_look_hours"`   // FixedFullHistory lookback/lookahead
	TileMinutes      int `yaml:"tile_minutes"`       // filler grid size
	PostEndGraceMin  int `yaml:"post_end_grace_min"` // keep ended events this long
	EndedStubMinutes int `yaml:"ended_stub_minutes"` // "EVENT ENDED" stub length

	Group         string `yaml:"group"`          // M3U group-title
	ProviderLabel string `yaml:"provider_label"` // second guide display-name
	Timezone      string `yaml:"timezone"`       // display zone for annotations

	Policy          string `yaml:"policy"` // "bounded-standby" or "fixed-full-history"
	AltLinks        bool   `yaml:"alt_links"`
	AltLinkTemplate string `yaml:"alt_link_template"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		DBPath:           "out/espn_schedule.db",
		XMLTVPath:        "out/espn_plus.xml",
		M3UPath:          "out/espn_plus.m3u",
		WindowHours:      3,
		MaxStandbyHours:  6,
		FixedLookHours:   8,
		TileMinutes:      30,
		PostEndGraceMin:  65,
		EndedStubMinutes: 30,
		Group:            "ESPN+",
		ProviderLabel:    "ESPN+",
		Policy:           timeline.BoundedStandby.String(),
		AltLinkTemplate:  "http://{host}/play",
		LogLevel:         "info",
	}
}

// Validate rejects configurations the generator cannot run with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.XMLTVPath == "" || c.M3UPath == "" {
		return fmt.Errorf("output paths must not be empty")
	}
	if c.WindowHours <= 0 {
		return fmt.Errorf("window_hours must be positive, got %d", c.WindowHours)
	}
	if c.TileMinutes <= 0 {
		return fmt.Errorf("tile_minutes must be positive, got %d", c.TileMinutes)
	}
	if c.MaxStandbyHours < 0 || c.FixedLookHours < 0 || c.PostEndGraceMin < 0 || c.EndedStubMinutes < 0 {
		return fmt.Errorf("horizon options must not be negative")
	}
	if _, err := timeline.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.AltLinks && c.AltLinkTemplate == "" {
		return fmt.Errorf("alt_link_template required when alt_links is set")
	}
	return nil
}

// TimelinePolicy returns the parsed policy. Call Validate first.
func (c Config) TimelinePolicy() timeline.Policy {
	p, _ := timeline.ParsePolicy(c.Policy)
	return p
}

// Window returns the forward planning window.
func (c Config) Window() time.Duration {
	return time.Duration(c.WindowHours) * time.Hour
}

// Grace returns the post-end grace period.
func (c Config) Grace() time.Duration {
	return time.Duration(c.PostEndGraceMin) * time.Minute
}

// TimelineOptions assembles the synthesizer knobs.
func (c Config) TimelineOptions(loc *time.Location) timeline.Options {
	return timeline.Options{
		Policy:       c.TimelinePolicy(),
		MaxStandby:   time.Duration(c.MaxStandbyHours) * time.Hour,
		FixedHorizon: time.Duration(c.FixedLookHours) * time.Hour,
		TileSize:     time.Duration(c.TileMinutes) * time.Minute,
		EndedStub:    time.Duration(c.EndedStubMinutes) * time.Minute,
		Location:     loc,
	}
}
