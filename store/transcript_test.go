package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *TranscriptStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "transcript_test.db")
	s, err := NewTranscriptStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewTranscriptStore_EmptyDSN(t *testing.T) {
	_, err := NewTranscriptStore("")
	assert.Error(t, err)
}

func TestRecordAndListSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, err := s.Record(ctx, TranscriptEntry{
		SessionID:   "sess-1",
		TraceID:     "trace-1",
		UserMessage: "I had a rough day",
		Response:    "That sounds heavy. Want to talk through it?",
		RiskLevel:   "low",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id1, "missing ID must be assigned")

	_, err = s.Record(ctx, TranscriptEntry{
		SessionID:   "sess-1",
		TraceID:     "trace-2",
		UserMessage: "Still thinking about it",
		Response:    "Take your time.",
		RiskLevel:   "low",
	})
	require.NoError(t, err)

	// Another session's entry must not leak in.
	_, err = s.Record(ctx, TranscriptEntry{
		SessionID:   "sess-2",
		UserMessage: "hi",
		Response:    "hello",
		RiskLevel:   "low",
	})
	require.NoError(t, err)

	entries, err := s.ListSession(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "I had a rough day", entries[0].UserMessage)
	assert.Equal(t, "trace-2", entries[1].TraceID)
	assert.False(t, entries[0].CreatedAt.IsZero(), "missing timestamp must be assigned")
}

func TestListSession_Empty(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.ListSession(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
