// Shared helpers for hueboard CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hueboard/hueboard/pkg/storage"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// withStorage opens the engine, loads the lists state, runs fn, and
// closes the engine (flushing any pending list changes).
func withStorage(fn func(store *storage.Storage) error) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Lists.LoadAll(); err != nil {
		return fmt.Errorf("load lists: %w", err)
	}
	return fn(store)
}

// parseIndex parses a non-negative integer argument.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid index %q (expected non-negative integer)", arg)
	}
	return n, nil
}
