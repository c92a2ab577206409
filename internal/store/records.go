package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tops240200-jpg/lostandfound/internal/model"
)

// Load reads the persisted item collection from path. A missing document is
// not an error and yields an empty collection. A document that cannot be read
// or parsed also yields an empty collection, but the condition is logged so
// operators can tell data loss from an empty store.
func Load(path string) []model.Item {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("item collection unreadable, starting empty", "path", path, "error", err)
		}
		return nil
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("item collection malformed, starting empty", "path", path, "error", err)
		return nil
	}
	return items
}

// Save serializes the full item collection and replaces the document at path
// atomically: the JSON is written to a temporary file in the same directory
// and renamed over the destination, so a crash mid-write never leaves a
// half-written document behind.
func Save(path string, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing items: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".items-*.json")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing items: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("syncing items: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing item collection: %w", err)
	}
	return nil
}
