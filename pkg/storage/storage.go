// Package storage provides the public API for the hueboard storage
// engine. It exposes the open function and the engine's version while
// keeping implementation details internal.
//
// Example:
//
//	store, err := storage.Open(types.Config{DataDir: ".hueboard-db"})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
package storage

import (
	"github.com/hueboard/hueboard/internal/sqlite"
	"github.com/hueboard/hueboard/pkg/types"
)

// Version is the engine version reported by the CLI.
const Version = "v0.1.0"

// Storage is the handle returned by Open. It exposes the Lists, Images,
// and Swatches stores plus the storage estimate.
type Storage = sqlite.Storage

// Open validates cfg and opens the storage engine rooted at its data
// directory. The caller must Close the returned Storage.
func Open(cfg types.Config) (*Storage, error) {
	return sqlite.Open(cfg)
}
