// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go, no CGO)

	"github.com/ManuGH/dl2g/internal/timeutil"
)

// Store provides read access to the upstream event snapshot.
type Store struct {
	db *sql.DB
}

// Open initializes a SQLite store for the given database file.
func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the events table. The production snapshot arrives with the
// schema already in place; this exists for fixtures and upstream loaders.
func (s *Store) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL,
		title TEXT,
		sport TEXT,
		league TEXT,
		start_utc TEXT NOT NULL,
		stop_utc TEXT NOT NULL,
		status TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_utc);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Upsert inserts an event row. Duplicate ids are allowed at the table level;
// EventsForWindow de-duplicates on read.
func (s *Store) Upsert(ctx context.Context, ev Event) error {
	query := `
	INSERT INTO events (id, title, sport, league, start_utc, stop_utc, status)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		ev.ID,
		ev.Title,
		nullable(ev.Sport),
		nullable(ev.League),
		timeutil.FormatISOZ(ev.Start),
		timeutil.FormatISOZ(ev.Stop),
		nullable(ev.Status),
	)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// jdFormat renders an instant the way julianday() wants its argument.
func jdFormat(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05+00:00")
}

// EventsForWindow returns every event whose [start, stop] interval overlaps
// [now-grace, now+window]: currently live, starting within the window, or
// ended within the grace period.
//
// The SQL narrows with julianday() on BOTH sides of each comparison, so the
// stored ISO strings are compared as instants rather than lexically. The
// parsed rows are re-checked in Go against the same window, de-duplicated by
// id (last row wins) and sorted by (start, title, id) for deterministic
// output. A malformed timestamp fails the whole query.
func (s *Store) EventsForWindow(ctx context.Context, now time.Time, window, grace time.Duration) ([]Event, error) {
	windowEnd := now.Add(window)
	graceCutoff := now.Add(-grace)

	query := `
	SELECT id, title, sport, league, start_utc, stop_utc, status
	FROM events
	WHERE
	  julianday(replace(start_utc,'Z','+00:00')) <= julianday(?)
	  AND julianday(replace(stop_utc,'Z','+00:00')) >= julianday(?)
	ORDER BY start_utc, title, id
	`

	rows, err := s.db.QueryContext(ctx, query, jdFormat(windowEnd), jdFormat(graceCutoff))
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byID := make(map[string]Event)
	var order []string
	for rows.Next() {
		var (
			ev                    Event
			title                 sql.NullString
			sport, league, status sql.NullString
			startRaw, stopRaw     string
		)
		if err := rows.Scan(&ev.ID, &title, &sport, &league, &startRaw, &stopRaw, &status); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}

		ev.Title = title.String
		ev.Sport = sport.String
		ev.League = league.String
		ev.Status = status.String

		if ev.Start, err = timeutil.ParseISOZ(startRaw); err != nil {
			return nil, fmt.Errorf("event %s start: %w", ev.ID, err)
		}
		if ev.Stop, err = timeutil.ParseISOZ(stopRaw); err != nil {
			return nil, fmt.Errorf("event %s stop: %w", ev.ID, err)
		}

		if !ev.Overlaps(now, window, grace) {
			continue
		}
		if _, seen := byID[ev.ID]; !seen {
			order = append(order, ev.ID)
		}
		byID[ev.ID] = ev
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	events := make([]Event, 0, len(order))
	for _, id := range order {
		events = append(events, byID[id])
	}
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
	return events, nil
}
