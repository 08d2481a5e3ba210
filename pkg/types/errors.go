package types

import "errors"

// Storage lifecycle and operation errors.
var (
	// ErrStorageClosed is returned by operations issued after Close.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrNotFound is returned when a keyed record does not exist and the
	// operation treats that as a failure. Batch reads do not: a read miss
	// surfaces as an absent value, not as ErrNotFound.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidKey is returned for an empty or malformed record key.
	ErrInvalidKey = errors.New("invalid record key")

	// ErrListNotFound is returned when a named list does not exist.
	ErrListNotFound = errors.New("list not found")

	// ErrProductNotFound is returned when a product id is not present in
	// the addressed list.
	ErrProductNotFound = errors.New("product not found in list")

	// ErrVariantIndex is returned when a variant index is out of range
	// for the addressed product.
	ErrVariantIndex = errors.New("variant index out of range")
)
