// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"

	"github.com/ManuGH/dl2g/internal/log"
)

// ParseString reads a string from an environment variable or returns the
// default. The source of the value is logged for observability.
func ParseString(key, defaultValue string) string {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		logger.Debug().Str("key", key).Str("value", v).Str("source", "environment").Msg("using environment variable")
		return v
	}
	logger.Debug().Str("key", key).Str("default", defaultValue).Str("source", "default").Msg("using default value")
	return defaultValue
}

// ParseInt reads an integer from an environment variable or returns the
// default. Unparsable values fall back to the default with a warning.
func ParseInt(key string, defaultValue int) int {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			logger.Debug().Str("key", key).Int("value", i).Str("source", "environment").Msg("using environment variable")
			return i
		}
		logger.Warn().Str("key", key).Str("value", v).Int("default", defaultValue).Msg("invalid integer in environment variable, using default")
	}
	return defaultValue
}

// ParseBool reads a boolean ("1", "t", "true", ...) from an environment
// variable or returns the default.
func ParseBool(key string, defaultValue bool) bool {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			logger.Debug().Str("key", key).Bool("value", b).Str("source", "environment").Msg("using environment variable")
			return b
		}
		logger.Warn().Str("key", key).Str("value", v).Bool("default", defaultValue).Msg("invalid boolean in environment variable, using default")
	}
	return defaultValue
}

// ApplyEnv overlays DL2G_* environment variables onto cfg.
func ApplyEnv(cfg Config) Config {
	cfg.DBPath = ParseString("DL2G_DB", cfg.DBPath)
	cfg.XMLTVPath = ParseString("DL2G_XMLTV", cfg.XMLTVPath)
	cfg.M3UPath = ParseString("DL2G_M3U", cfg.M3UPath)
	cfg.WindowHours = ParseInt("DL2G_WINDOW_HOURS", cfg.WindowHours)
	cfg.MaxStandbyHours = ParseInt("DL2G_MAX_STANDBY_HOURS", cfg.MaxStandbyHours)
	cfg.FixedLookHours = ParseInt("DL2G_FIXED_LOOK_HOURS", cfg.FixedLookHours)
	cfg.TileMinutes = ParseInt("DL2G_TILE_MIN", cfg.TileMinutes)
	cfg.PostEndGraceMin = ParseInt("DL2G_POST_END_GRACE_MIN", cfg.PostEndGraceMin)
	cfg.EndedStubMinutes = ParseInt("DL2G_ENDED_TILE_MIN", cfg.EndedStubMinutes)
	cfg.Group = ParseString("DL2G_GROUP", cfg.Group)
	cfg.ProviderLabel = ParseString("DL2G_PROVIDER_LABEL", cfg.ProviderLabel)
	cfg.Timezone = ParseString("DL2G_TZ", cfg.Timezone)
	cfg.Policy = ParseString("DL2G_POLICY", cfg.Policy)
	cfg.AltLinks = ParseBool("DL2G_ALT_LINKS", cfg.AltLinks)
	cfg.AltLinkTemplate = ParseString("DL2G_ALT_LINK_TEMPLATE", cfg.AltLinkTemplate)
	cfg.LogLevel = ParseString("DL2G_LOG_LEVEL", cfg.LogLevel)
	return cfg
}
