package types

// StorageEstimate is the advisory usage report shown in the UI. Usage is
// a persisted counter maintained by callers, not a scan of the actual
// database, so it is intentionally approximate.
type StorageEstimate struct {
	Quota     int64 `json:"quota"`
	Usage     int64 `json:"usage"`
	Available int64 `json:"available"`
}
