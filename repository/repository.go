// Package repository implements the JSON-file data access layer for the
// application. Each collection lives in one file that is read in full and
// rewritten in full on every mutation; a per-collection mutex serializes
// the read-modify-write cycle so concurrent writers cannot lose updates.
package repository

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	appointmentsFile = "appointments.json"
	accountsFile     = "accounts.json"
	configFile       = "config.json"
)

// readJSONFile loads and decodes path into out. A missing, unreadable or
// corrupt file reports false so callers fall back to an empty collection.
func readJSONFile(path string, out any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read data file, using fallback", "path", path, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("Failed to parse data file, using fallback", "path", path, "error", err)
		return false
	}

	return true
}

// writeJSONFile encodes v and rewrites path wholesale, creating the data
// directory on first write. Output is indented to stay hand-editable.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
