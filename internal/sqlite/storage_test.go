package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hueboard/hueboard/internal/quota"
	"github.com/hueboard/hueboard/pkg/types"
)

func TestOpenValidatesConfig(t *testing.T) {
	_, err := Open(types.Config{})
	assert.ErrorIs(t, err, types.ErrDataDirEmpty)

	_, err = Open(types.Config{DataDir: t.TempDir(), DebounceWindow: -time.Second})
	assert.ErrorIs(t, err, types.ErrWindowNegative)
}

func TestOpenCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	st, err := Open(types.Config{DataDir: dir})
	require.NoError(t, err)
	defer st.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenIsLazy(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(types.Config{DataDir: dir})
	require.NoError(t, err)
	defer st.Close()

	// No database file exists until a store is first touched.
	_, err = os.Stat(filepath.Join(dir, "product_lists.db"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, st.Images.Put("a", "x"))
	_, err = os.Stat(filepath.Join(dir, "product_lists.db"))
	assert.NoError(t, err)
}

func TestCloseFlushesPendingChanges(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(types.Config{DataDir: dir, DebounceWindow: time.Hour})
	require.NoError(t, err)
	require.NoError(t, st.Lists.CreateList("favs"))

	// The hour-long window has not elapsed; Close must flush anyway.
	require.NoError(t, st.Close())

	st2, err := Open(types.Config{DataDir: dir})
	require.NoError(t, err)
	defer st2.Close()
	state, err := st2.Lists.LoadAll()
	require.NoError(t, err)
	assert.Contains(t, state, "favs")
}

func TestCloseIdempotent(t *testing.T) {
	st, err := Open(types.Config{DataDir: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, st.Close())
	require.NoError(t, st.Close())
}

func TestEstimateTracksRecordedUsage(t *testing.T) {
	st, err := Open(types.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	defer st.Close()

	est := st.Estimate()
	assert.Equal(t, quota.Quota, est.Quota)
	assert.Zero(t, est.Usage)
	assert.Equal(t, quota.Quota, est.Available)

	require.NoError(t, st.Lists.CreateList("favs"))
	est = st.Estimate()
	assert.Positive(t, est.Usage)
	assert.Equal(t, quota.Quota-est.Usage, est.Available)
}

func TestOperationsFailAfterClose(t *testing.T) {
	st, err := Open(types.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	err = st.Images.Put("a", "x")
	assert.ErrorIs(t, err, types.ErrStorageClosed)

	_, err = st.Swatches.Load("favs", "p1", 0)
	assert.ErrorIs(t, err, types.ErrStorageClosed)
}
