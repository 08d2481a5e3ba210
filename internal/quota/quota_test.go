package quota

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hueboard/hueboard/internal/kvstate"
)

func newAccountant(t *testing.T) *Accountant {
	t.Helper()
	kv, err := kvstate.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return NewAccountant(kv)
}

func TestEstimateDefaultsToZeroUsage(t *testing.T) {
	a := newAccountant(t)

	est := a.Estimate()
	assert.Equal(t, Quota, est.Quota)
	assert.Equal(t, int64(0), est.Usage)
	assert.Equal(t, Quota, est.Available)
}

func TestRecordUsageRoundTrip(t *testing.T) {
	a := newAccountant(t)

	require.NoError(t, a.RecordUsage(12345))

	est := a.Estimate()
	assert.Equal(t, int64(12345), est.Usage)
	assert.Equal(t, Quota-12345, est.Available)
}

func TestRecordUsageOverwrites(t *testing.T) {
	a := newAccountant(t)

	require.NoError(t, a.RecordUsage(100))
	require.NoError(t, a.RecordUsage(200))

	assert.Equal(t, int64(200), a.Estimate().Usage)
}

func TestEstimateIgnoresCorruptCounter(t *testing.T) {
	kv, err := kvstate.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	require.NoError(t, kv.Set("storageUsage", "not-a-number"))

	a := NewAccountant(kv)
	assert.Equal(t, int64(0), a.Estimate().Usage)
}

func TestObjectSize(t *testing.T) {
	assert.Equal(t, int64(2), ObjectSize(map[string]any{}))
	assert.Equal(t, int64(len(`{"a":1}`)), ObjectSize(map[string]int{"a": 1}))
	assert.Equal(t, int64(0), ObjectSize(func() {})) // unserializable
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{50 * 1024 * 1024, "50 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}
