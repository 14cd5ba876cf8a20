// Package recorder persists harness sessions and their dialog traffic to a
// sqlite database, so conformance runs can be inspected after the fact.
package recorder

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Event kinds.
const (
	// KindDialogRequest marks a value-request dialog captured from the plugin.
	KindDialogRequest = "dialog_request"

	// KindReply marks a scripted reply scheduled for injection.
	KindReply = "reply"
)

// Event is one recorded occurrence within a session.
type Event struct {
	Session   string
	RequestID string
	Kind      string
	Detail    string
	CreatedAt time.Time
}

// Recorder writes sessions and events to sqlite. Safe for use from a single
// writer goroutine; database/sql serializes the rest.
type Recorder struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Recorder{db: db}, nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			plugin_uri TEXT NOT NULL,
			started_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			request_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			detail TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}

// BeginSession registers a new harness session.
func (r *Recorder) BeginSession(id, pluginURI string) error {
	_, err := r.db.Exec(
		`INSERT INTO sessions (id, plugin_uri, started_at) VALUES (?, ?, ?)`,
		id, pluginURI, time.Now().UTC().Format(time.RFC3339Nano),
	)

	return err
}

// Record appends one event. A zero CreatedAt is stamped with the current time.
func (r *Recorder) Record(ev Event) error {
	at := ev.CreatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	_, err := r.db.Exec(
		`INSERT INTO events (session_id, request_id, kind, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		ev.Session, ev.RequestID, ev.Kind, ev.Detail, at.Format(time.RFC3339Nano),
	)

	return err
}

// Events returns the events of a session in insertion order.
func (r *Recorder) Events(sessionID string) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT session_id, request_id, kind, detail, created_at FROM events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event

	for rows.Next() {
		var (
			ev Event
			at string
		)

		if err := rows.Scan(&ev.Session, &ev.RequestID, &ev.Kind, &ev.Detail, &at); err != nil {
			return nil, err
		}

		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			ev.CreatedAt = t
		}

		out = append(out, ev)
	}

	return out, rows.Err()
}

// Close closes the underlying database.
func (r *Recorder) Close() error {
	return r.db.Close()
}
