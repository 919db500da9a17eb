// Package storage persists entity collections as one indented JSON array file
// per entity type. Files are rewritten wholesale after every mutation; there
// is no incremental writing and no cross-file atomicity.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LoadList reads the collection stored in dir/file. A missing or unreadable
// file is replaced with the seed data, which is also written back so the next
// start finds a well-formed file. In-memory state built after this call is
// never discarded because of a later save failure.
func LoadList[T any](logger zerolog.Logger, dir, file string, seed func() []T) []T {
	path := filepath.Join(dir, file)
	raw, err := os.ReadFile(path)
	if err == nil {
		var items []T
		if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil && items != nil {
			return items
		} else if jsonErr != nil {
			logger.Warn().Str("file", path).Err(jsonErr).Msg("corrupt data file, falling back to seed data")
		}
	} else if !os.IsNotExist(err) {
		logger.Warn().Str("file", path).Err(err).Msg("unreadable data file, falling back to seed data")
	}

	items := seed()
	if err := SaveList(logger, dir, file, items); err != nil {
		logger.Warn().Str("file", path).Err(err).Msg("could not write seed data, continuing in-memory only")
	}
	return items
}

// SaveList rewrites dir/file with the full collection.
func SaveList[T any](logger zerolog.Logger, dir, file string, items []T) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", file, err)
	}
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	logger.Debug().Str("file", path).Int("count", len(items)).Msg("collection persisted")
	return nil
}
