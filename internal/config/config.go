package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the policy values for the listing store. All of these were
// hard-coded constants in the first version of the system; they are
// configurable here but the defaults reproduce the original policy.
type Config struct {
	DataFile          string   `toml:"data_file"`
	UploadDir         string   `toml:"upload_dir"`
	PageSize          int      `toml:"page_size"`
	MaxImageSize      int64    `toml:"max_image_size"`
	AllowedExtensions []string `toml:"allowed_extensions"`
	LogFile           string   `toml:"log_file,omitempty"`
}

// Default returns the stock configuration: ten listings per page, images up
// to 5 MiB in the common web formats.
func Default() *Config {
	return &Config{
		DataFile:          filepath.Join("data", "lost_items.json"),
		UploadDir:         "uploads",
		PageSize:          10,
		MaxImageSize:      5 << 20,
		AllowedExtensions: []string{"jpg", "jpeg", "png", "gif"},
	}
}

// Read decodes a Config from the provided reader. Fields left unset fall
// back to their defaults.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Write encodes a Config to the provided writer.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Load reads the configuration at path. A missing file is not an error: the
// defaults apply, matching the zero-setup behavior of the original system.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Init writes cfg to path, refusing to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return Write(f, cfg)
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.DataFile == "" {
		c.DataFile = def.DataFile
	}
	if c.UploadDir == "" {
		c.UploadDir = def.UploadDir
	}
	if c.PageSize < 1 {
		c.PageSize = def.PageSize
	}
	if c.MaxImageSize < 1 {
		c.MaxImageSize = def.MaxImageSize
	}
	if len(c.AllowedExtensions) == 0 {
		c.AllowedExtensions = def.AllowedExtensions
	}
}
