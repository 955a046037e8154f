package transcript

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalChat/internal/memory"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndCount(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.Record("sess-1", memory.Turn{User: "hi", Bot: "hello"}))
	require.NoError(t, s.Record("sess-1", memory.Turn{User: "bye", Bot: "goodbye"}))

	n, err = s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecentOrderingAndLimit(t *testing.T) {
	s := newTestStore(t)

	turns := []memory.Turn{
		{User: "one", Bot: "1"},
		{User: "two", Bot: "2"},
		{User: "three", Bot: "3"},
	}
	for _, turn := range turns {
		require.NoError(t, s.Record("sess-1", turn))
	}

	entries, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "two", entries[0].User)
	assert.Equal(t, "three", entries[1].User)

	// Asking for more than recorded returns everything, oldest first.
	entries, err = s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "one", entries[0].User)
}

func TestRecentEmpty(t *testing.T) {
	s := newTestStore(t)
	entries, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
