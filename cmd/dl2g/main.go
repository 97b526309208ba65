// SPDX-License-Identifier: MIT

// Command dl2g turns a schedule snapshot into an M3U deep-link playlist and
// an XMLTV guide, then exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ManuGH/dl2g/internal/config"
	"github.com/ManuGH/dl2g/internal/jobs"
	xglog "github.com/ManuGH/dl2g/internal/log"
	"github.com/ManuGH/dl2g/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("dl2g", flag.ContinueOnError)
	showVersion := fs.Bool("version", false, "print version and exit")
	configPath := fs.String("config", "", "path to config file (YAML)")
	dbPath := fs.String("db", "", "event snapshot database (overrides config)")
	xmltvPath := fs.String("xmltv", "", "XMLTV output path (overrides config)")
	m3uPath := fs.String("m3u", "", "M3U output path (overrides config)")
	policy := fs.String("policy", "", "timeline policy: bounded-standby or fixed-full-history")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Printf("dl2g %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		return 0
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(cfg, *configPath); err != nil {
			fmt.Fprintf(os.Stderr, "dl2g: %v\n", err)
			return 1
		}
	}
	cfg = config.ApplyEnv(cfg)
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *xmltvPath != "" {
		cfg.XMLTVPath = *xmltvPath
	}
	if *m3uPath != "" {
		cfg.M3UPath = *m3uPath
	}
	if *policy != "" {
		cfg.Policy = *policy
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Service: "dl2g",
		Version: version.Version,
	})

	status, err := jobs.Generate(context.Background(), cfg)
	if err != nil {
		logger := xglog.WithComponent("main")
		logger.Error().Err(err).Msg("run failed")
		fmt.Fprintf(os.Stderr, "dl2g: %v\n", err)
		return 1
	}

	printSummary(os.Stdout, cfg, status)
	return 0
}

// printSummary writes the human-readable run report to stdout.
func printSummary(w io.Writer, cfg config.Config, status *jobs.Status) {
	abs := func(p string) string {
		if a, err := filepath.Abs(p); err == nil {
			return a
		}
		return p
	}

	fmt.Fprintln(w, "dl2g M3U/XMLTV Generator")
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Database: %s\n", abs(cfg.DBPath))
	fmt.Fprintf(w, "Time: %s\n\n", status.LastRun.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(w, "Fetching live and upcoming events (next %d hours)...\n", cfg.WindowHours)
	fmt.Fprintf(w, "Found %d events\n\n", status.Events)

	fmt.Fprintf(w, "Playlist: %s (%d channels)\n", abs(status.M3UPath), status.PlaylistItems)
	fmt.Fprintf(w, "Guide:    %s\n\n", abs(status.XMLTVPath))

	if len(status.Samples) > 0 {
		fmt.Fprintln(w, "Sample events:")
		fmt.Fprintln(w, "------------------------------------------------------------")
		for i, s := range status.Samples {
			marker := ""
			if s.Live {
				marker = "LIVE - "
			}
			fmt.Fprintf(w, "%d. %s%s\n", i+1, marker, s.Title)
		}
		if status.Events > len(status.Samples) {
			fmt.Fprintf(w, "... and %d more\n", status.Events-len(status.Samples))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "Generation complete.")
}
