// Package quota tracks an advisory storage usage estimate against a
// fixed quota. Usage is a persisted counter updated by callers after
// lists mutations, not a scan of the database, so the numbers are an
// intentionally cheap approximation for UI display. Nothing here blocks
// a write for exceeding the quota.
package quota

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/hueboard/hueboard/internal/kvstate"
	"github.com/hueboard/hueboard/pkg/types"
)

// Quota is the fixed advisory storage limit.
const Quota int64 = 50 * 1024 * 1024 // 50 MiB

// usageKey is the kvstate entry holding the persisted byte counter.
const usageKey = "storageUsage"

// Accountant reads and writes the persisted usage counter.
type Accountant struct {
	kv *kvstate.Store
}

// NewAccountant returns an Accountant backed by the given state store.
func NewAccountant(kv *kvstate.Store) *Accountant {
	return &Accountant{kv: kv}
}

// Estimate returns the quota, the persisted usage, and the remainder.
// A missing or unparseable counter reads as zero usage.
func (a *Accountant) Estimate() types.StorageEstimate {
	var usage int64
	if raw, ok := a.kv.Get(usageKey); ok {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n >= 0 {
			usage = n
		}
	}
	return types.StorageEstimate{
		Quota:     Quota,
		Usage:     usage,
		Available: Quota - usage,
	}
}

// RecordUsage overwrites the persisted counter with bytes.
func (a *Accountant) RecordUsage(bytes int64) error {
	if err := a.kv.Set(usageKey, strconv.FormatInt(bytes, 10)); err != nil {
		return fmt.Errorf("recording usage: %w", err)
	}
	return nil
}

// ObjectSize returns the serialized JSON byte length of v: the cheap
// upper-bound proxy callers feed to RecordUsage. Unserializable values
// count as zero.
func ObjectSize(v any) int64 {
	data, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return int64(len(data))
}

// FormatSize renders a byte count for display, e.g. "1.5 MB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	// Two decimals, trailing zeros trimmed: 1.50 -> "1.5", 2.00 -> "2".
	rounded := math.Round(size*100) / 100
	return fmt.Sprintf("%s %s", strconv.FormatFloat(rounded, 'f', -1, 64), units[i])
}
