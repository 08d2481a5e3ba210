package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hueboard/hueboard/pkg/types"
)

func newTestSwatchStore(t *testing.T) *SwatchStore {
	t.Helper()
	return NewSwatchStore(newTestPool(t))
}

func TestSwatchSaveDeduplicates(t *testing.T) {
	s := newTestSwatchStore(t)
	red := types.HSLColor{Hue: 0, Saturation: 100, Lightness: 50}

	inserted, err := s.Save(red, "favs", "p1", 0)
	require.NoError(t, err)
	assert.True(t, inserted)

	// Same triple under the same key is a no-op.
	inserted, err = s.Save(red, "favs", "p1", 0)
	require.NoError(t, err)
	assert.False(t, inserted)

	swatches, err := s.Load("favs", "p1", 0)
	require.NoError(t, err)
	require.Len(t, swatches, 1)
	assert.Equal(t, red, swatches[0].Color())
	assert.NotEmpty(t, swatches[0].Timestamp)

	// Same triple under a different variant is a fresh record.
	inserted, err = s.Save(red, "favs", "p1", 1)
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestSwatchSaveManyCollapsesBatchDuplicates(t *testing.T) {
	s := newTestSwatchStore(t)
	red := types.HSLColor{Hue: 0, Saturation: 100, Lightness: 50}
	blue := types.HSLColor{Hue: 240, Saturation: 80, Lightness: 40}

	inserted, err := s.SaveMany([]types.HSLColor{red, blue, red}, "favs", "p1", 0)
	require.NoError(t, err)
	assert.True(t, inserted)

	swatches, err := s.Load("favs", "p1", 0)
	require.NoError(t, err)
	assert.Len(t, swatches, 2)
}

func TestSwatchSaveValidation(t *testing.T) {
	s := newTestSwatchStore(t)
	red := types.HSLColor{Hue: 0, Saturation: 100, Lightness: 50}

	_, err := s.Save(red, "", "p1", 0)
	assert.ErrorIs(t, err, types.ErrInvalidKey)

	_, err = s.Save(red, "favs", "", 0)
	assert.ErrorIs(t, err, types.ErrInvalidKey)

	_, err = s.Save(red, "favs", "p1", -1)
	assert.ErrorIs(t, err, types.ErrVariantIndex)

	inserted, err := s.SaveMany(nil, "favs", "p1", 0)
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestSwatchDelete(t *testing.T) {
	s := newTestSwatchStore(t)
	red := types.HSLColor{Hue: 0, Saturation: 100, Lightness: 50}

	_, err := s.Save(red, "favs", "p1", 0)
	require.NoError(t, err)
	swatches, err := s.Load("favs", "p1", 0)
	require.NoError(t, err)
	require.Len(t, swatches, 1)

	removed, err := s.Delete(swatches[0].ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Gone now; a second delete reports false.
	removed, err = s.Delete(swatches[0].ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSwatchDeleteByVariant(t *testing.T) {
	s := newTestSwatchStore(t)

	for hue := 0; hue < 3; hue++ {
		_, err := s.Save(types.HSLColor{Hue: hue * 40, Saturation: 60, Lightness: 50}, "favs", "p1", 1)
		require.NoError(t, err)
	}
	_, err := s.Save(types.HSLColor{Hue: 300, Saturation: 60, Lightness: 50}, "favs", "p1", 2)
	require.NoError(t, err)

	require.NoError(t, s.DeleteByVariant("favs", "p1", 1))

	swatches, err := s.Load("favs", "p1", 1)
	require.NoError(t, err)
	assert.Empty(t, swatches)

	// Sibling variant untouched.
	swatches, err = s.Load("favs", "p1", 2)
	require.NoError(t, err)
	assert.Len(t, swatches, 1)
}

func TestSwatchRenumberFrom(t *testing.T) {
	s := newTestSwatchStore(t)

	// One swatch per variant 0..2, distinguishable by hue.
	for idx := 0; idx < 3; idx++ {
		_, err := s.Save(types.HSLColor{Hue: idx * 100, Saturation: 60, Lightness: 50}, "favs", "p1", idx)
		require.NoError(t, err)
	}

	// Variant 1 is removed from the product: drop its swatches, then
	// shift everything past it down by one.
	require.NoError(t, s.DeleteByVariant("favs", "p1", 1))
	require.NoError(t, s.RenumberFrom("favs", "p1", 2))

	at0, err := s.Load("favs", "p1", 0)
	require.NoError(t, err)
	require.Len(t, at0, 1)
	assert.Equal(t, 0, at0[0].Hue)

	at1, err := s.Load("favs", "p1", 1)
	require.NoError(t, err)
	require.Len(t, at1, 1)
	assert.Equal(t, 200, at1[0].Hue, "the old variant 2 swatch moved to index 1")

	at2, err := s.Load("favs", "p1", 2)
	require.NoError(t, err)
	assert.Empty(t, at2)
}

func TestSwatchRenumberScopedToProduct(t *testing.T) {
	s := newTestSwatchStore(t)
	red := types.HSLColor{Hue: 0, Saturation: 100, Lightness: 50}

	_, err := s.Save(red, "favs", "p1", 3)
	require.NoError(t, err)
	_, err = s.Save(red, "favs", "p2", 3)
	require.NoError(t, err)

	require.NoError(t, s.RenumberFrom("favs", "p1", 1))

	moved, err := s.Load("favs", "p1", 2)
	require.NoError(t, err)
	assert.Len(t, moved, 1)

	untouched, err := s.Load("favs", "p2", 3)
	require.NoError(t, err)
	assert.Len(t, untouched, 1)
}

func TestSwatchTimestampIsRFC3339(t *testing.T) {
	s := newTestSwatchStore(t)

	_, err := s.Save(types.HSLColor{Hue: 1, Saturation: 2, Lightness: 3}, "favs", "p1", 0)
	require.NoError(t, err)

	swatches, err := s.Load("favs", "p1", 0)
	require.NoError(t, err)
	require.Len(t, swatches, 1)
	_, err = time.Parse(time.RFC3339, swatches[0].Timestamp)
	assert.NoError(t, err)
}
