// Package assets manages the image files backing item listings: admission
// policy, storage under generated names, cascade deletion and orphan cleanup.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/tops240200-jpg/lostandfound/internal/imaging"
)

// Asset admission errors.
var (
	ErrTooLarge          = errors.New("image too large")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrCorrupt           = errors.New("corrupt image")
)

// Manager stores and deletes image assets in a single directory.
type Manager struct {
	dir     string
	maxSize int64
	allowed map[string]bool
}

// NewManager creates a Manager writing to dir, rejecting uploads whose
// declared size exceeds maxSize or whose extension is not in extensions.
func NewManager(dir string, maxSize int64, extensions []string) *Manager {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}
	return &Manager{dir: dir, maxSize: maxSize, allowed: allowed}
}

// Store validates an uploaded image and writes it to the asset directory
// under a fresh UUID name, keeping the original extension. The image is
// decoded and re-encoded on the way in, so stored bytes are normalized and
// anything undecodable is rejected before it ever hits disk.
// Returns the stored asset's path.
func (m *Manager) Store(data []byte, fileName string, declaredSize int64) (string, error) {
	if declaredSize > m.maxSize {
		return "", fmt.Errorf("%w: %s exceeds the %s limit",
			ErrTooLarge, humanize.IBytes(uint64(declaredSize)), humanize.IBytes(uint64(m.maxSize)))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if ext == "" || !m.allowed[ext] {
		return "", fmt.Errorf("%w: %q (allowed: %s)", ErrUnsupportedFormat, ext, m.allowedList())
	}

	encoded, err := imaging.Reencode(data, ext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("creating asset directory: %w", err)
	}

	path := filepath.Join(m.dir, uuid.New().String()+"."+ext)
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return "", fmt.Errorf("storing asset: %w", err)
	}
	return path, nil
}

// Delete removes the asset at path. Absence is not an error; other failures
// are logged and swallowed, matching the fire-and-forget cascade semantics
// of item deletion.
func (m *Manager) Delete(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("removing asset", "path", path, "error", err)
	}
}

// Sweep removes asset files that are not referenced by any live item.
// inUse maps asset paths (as returned by Store) to true. Returns the number
// of files removed.
func (m *Manager) Sweep(inUse map[string]bool) (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading asset directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		if inUse[path] {
			continue
		}
		if err := os.Remove(path); err != nil {
			slog.Warn("removing orphaned asset", "path", path, "error", err)
			continue
		}
		slog.Info("removed orphaned asset", "path", path)
		removed++
	}
	return removed, nil
}

func (m *Manager) allowedList() string {
	exts := make([]string, 0, len(m.allowed))
	for ext := range m.allowed {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
