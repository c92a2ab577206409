package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testExtensions = []string{"jpg", "jpeg", "png", "gif"}

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(filepath.Join(t.TempDir(), "uploads"), 5<<20, testExtensions)
}

func TestStoreValidJPEG(t *testing.T) {
	m := newTestManager(t)
	data := createTestJPEG(64, 64)

	path, err := m.Store(data, "photo.jpg", int64(len(data)))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Errorf("expected .jpg suffix, got %s", path)
	}
	if filepath.Base(path) == "photo.jpg" {
		t.Error("stored name should be generated, not the upload name")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stored asset missing: %v", err)
	}
}

func TestStoreUppercaseExtension(t *testing.T) {
	m := newTestManager(t)
	data := createTestJPEG(16, 16)

	path, err := m.Store(data, "PHOTO.JPG", int64(len(data)))
	if err != nil {
		t.Fatalf("Store with uppercase extension: %v", err)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Errorf("extension should be lowercased: %s", path)
	}
}

func TestStoreTooLarge(t *testing.T) {
	m := newTestManager(t)
	data := createTestJPEG(16, 16)

	_, err := m.Store(data, "big.jpg", 6<<20)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	// Nothing may reach the asset directory.
	if entries, _ := os.ReadDir(m.dir); len(entries) != 0 {
		t.Errorf("asset directory should be empty, found %d entries", len(entries))
	}
}

func TestStoreUnsupportedExtension(t *testing.T) {
	m := newTestManager(t)
	data := createTestJPEG(16, 16)

	for _, name := range []string{"image.bmp", "image.webp", "noextension"} {
		_, err := m.Store(data, name, int64(len(data)))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Store(%q): expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestStoreCorruptData(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Store([]byte("definitely not pixels"), "fake.png", 21)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if entries, _ := os.ReadDir(m.dir); len(entries) != 0 {
		t.Errorf("asset directory should be empty, found %d entries", len(entries))
	}
}

func TestStoreGeneratesUniqueNames(t *testing.T) {
	m := newTestManager(t)
	data := createTestJPEG(16, 16)

	first, err := m.Store(data, "same.jpg", int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Store(data, "same.jpg", int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("two stores of the same upload collided: %s", first)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	m := newTestManager(t)
	data := createTestJPEG(16, 16)

	path, err := m.Store(data, "photo.jpg", int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}

	m.Delete(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("asset should be gone after Delete, stat err = %v", err)
	}

	// Deleting again (or deleting nothing) must not panic or fail.
	m.Delete(path)
	m.Delete("")
}

func TestSweepRemovesOrphans(t *testing.T) {
	m := newTestManager(t)
	data := createTestJPEG(16, 16)

	kept, err := m.Store(data, "kept.jpg", int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	orphan, err := m.Store(data, "orphan.jpg", int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}

	removed, err := m.Sweep(map[string]bool{kept: true})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if _, err := os.Stat(kept); err != nil {
		t.Errorf("referenced asset was swept: %v", err)
	}
	if _, err := os.Stat(orphan); !os.IsNotExist(err) {
		t.Errorf("orphan should be gone, stat err = %v", err)
	}
}

func TestSweepMissingDirectory(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "never-created"), 5<<20, testExtensions)
	removed, err := m.Sweep(nil)
	if err != nil {
		t.Fatalf("Sweep on missing directory: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed, got %d", removed)
	}
}
