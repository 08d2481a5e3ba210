package kvstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	_, ok := s.Get("anything")
	assert.False(t, ok)
}

func TestSetGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("listOrder", `["A","B"]`))
	require.NoError(t, s.Set("storageUsage", "12345"))

	v, ok := s.Get("listOrder")
	assert.True(t, ok)
	assert.Equal(t, `["A","B"]`, v)

	// Reopen and verify the values survived the round trip.
	s2, err := Open(path)
	require.NoError(t, err)
	v, ok = s2.Get("storageUsage")
	assert.True(t, ok)
	assert.Equal(t, "12345", v)
}

func TestSetOverwrites(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	require.NoError(t, s.Set("k", "one"))
	require.NoError(t, s.Set("k", "two"))

	v, _ := s.Get("k")
	assert.Equal(t, "two", v)
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Delete("k")) // absent key is a no-op

	_, ok := s.Get("k")
	assert.False(t, ok)

	s2, err := Open(path)
	require.NoError(t, err)
	_, ok = s2.Get("k")
	assert.False(t, ok)
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)

	_, ok := s.Get("k")
	assert.False(t, ok)

	// The store is still writable after recovering from corruption.
	require.NoError(t, s.Set("k", "v"))
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
