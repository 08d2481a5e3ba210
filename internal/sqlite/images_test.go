package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hueboard/hueboard/pkg/types"
)

func newTestImagesStore(t *testing.T) *ImagesStore {
	t.Helper()
	return NewImagesStore(newTestPool(t))
}

func TestImagesPutGetRoundTrip(t *testing.T) {
	s := newTestImagesStore(t)

	records := []types.ImageRecord{
		{ID: "a", Data: "payload-a"},
		{ID: "b", Data: "payload-b"},
	}
	ids, err := s.PutMany(records)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	got, err := s.GetMany([]string{"b", "a"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "payload-b", got[0].Data)
	assert.Equal(t, "payload-a", got[1].Data)
}

func TestImagesPutOverwrites(t *testing.T) {
	s := newTestImagesStore(t)

	require.NoError(t, s.Put("a", "old"))
	require.NoError(t, s.Put("a", "new"))

	data, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "new", data)
}

func TestImagesGetMissReturnsEmptyData(t *testing.T) {
	s := newTestImagesStore(t)

	require.NoError(t, s.Put("a", "payload"))

	got, err := s.GetMany([]string{"a", "missing"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "payload", got[0].Data)
	assert.Equal(t, "missing", got[1].ID)
	assert.Empty(t, got[1].Data)
}

func TestImagesPutEmptyIDFailsBatch(t *testing.T) {
	s := newTestImagesStore(t)

	_, err := s.PutMany([]types.ImageRecord{
		{ID: "ok", Data: "x"},
		{ID: "", Data: "y"},
	})
	require.ErrorIs(t, err, types.ErrInvalidKey)

	// The whole batch rolled back.
	data, err := s.Get("ok")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestImagesDeleteMany(t *testing.T) {
	s := newTestImagesStore(t)

	require.NoError(t, s.Put("a", "x"))
	require.NoError(t, s.Put("b", "y"))

	results, err := s.DeleteMany([]string{"a", "missing", "b"})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, results)

	removed, err := s.Delete("a")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestNewImageIDUnique(t *testing.T) {
	a := NewImageID()
	b := NewImageID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
