// Package store provides optional persistence for session transcripts.
// The response cache is deliberately memory-only; transcripts are the one
// thing worth keeping across restarts.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	// SQLite driver (registers as "sqlite").
	_ "modernc.org/sqlite"
)

// TranscriptEntry is one recorded exchange.
type TranscriptEntry struct {
	ID          string
	SessionID   string
	TraceID     string
	UserMessage string
	Response    string
	RiskLevel   string
	CreatedAt   time.Time
}

// TranscriptStore persists exchanges to SQLite.
type TranscriptStore struct {
	db *sql.DB
}

const transcriptSchema = `
CREATE TABLE IF NOT EXISTS transcript (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL DEFAULT '',
	trace_id TEXT NOT NULL DEFAULT '',
	user_message TEXT NOT NULL,
	response TEXT NOT NULL,
	risk_level TEXT NOT NULL DEFAULT 'low',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcript_session ON transcript (session_id, created_at);
`

// NewTranscriptStore opens (or creates) the transcript database at dsn.
func NewTranscriptStore(dsn string) (*TranscriptStore, error) {
	if dsn == "" {
		return nil, errors.New("transcript DSN is required")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open transcript database")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to connect to transcript database %s", dsn)
	}
	if _, err := db.Exec(transcriptSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to migrate transcript schema")
	}

	return &TranscriptStore{db: db}, nil
}

// Record inserts one exchange and returns its ID. A missing entry ID is
// assigned; a missing timestamp defaults to now.
func (s *TranscriptStore) Record(ctx context.Context, entry TranscriptEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = shortuuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcript (id, session_id, trace_id, user_message, response, risk_level, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.SessionID, entry.TraceID, entry.UserMessage,
		entry.Response, entry.RiskLevel, entry.CreatedAt.UnixMilli())
	if err != nil {
		return "", errors.Wrap(err, "failed to record transcript entry")
	}
	return entry.ID, nil
}

// ListSession returns a session's exchanges in chronological order.
func (s *TranscriptStore) ListSession(ctx context.Context, sessionID string) ([]TranscriptEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, trace_id, user_message, response, risk_level, created_at
		 FROM transcript WHERE session_id = ? ORDER BY created_at ASC`,
		sessionID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list transcripts for session %s", sessionID)
	}
	defer rows.Close()

	var entries []TranscriptEntry
	for rows.Next() {
		var entry TranscriptEntry
		var createdAt int64
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.TraceID,
			&entry.UserMessage, &entry.Response, &entry.RiskLevel, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan transcript entry")
		}
		entry.CreatedAt = time.UnixMilli(createdAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close releases the underlying database handle.
func (s *TranscriptStore) Close() error {
	return s.db.Close()
}
