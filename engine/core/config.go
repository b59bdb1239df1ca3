package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/lumen/engine/colors"
	"github.com/hubastard/lumen/engine/resources"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config for the engine run.
type Config struct {
	Title      string       `yaml:"title"`
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	VSync      bool         `yaml:"vsync"`
	Samples    int          `yaml:"samples"` // MSAA samples, 0 disables
	ClearColor colors.Color `yaml:"clear_color"`
	GLDebug    bool         `yaml:"gl_debug"` // route driver debug output to the log

	MaxQueuedEvents int `yaml:"max_queued_events"`

	// AssetRoot is the directory resource paths are relative to. A relative
	// root in a config file is resolved against the file's directory.
	AssetRoot string             `yaml:"asset_root"`
	Resources resources.Manifest `yaml:"resources"`
}

func DefaultConfig() Config {
	return Config{
		Title:           "lumen",
		Width:           800,
		Height:          600,
		VSync:           true,
		ClearColor:      colors.DarkGray,
		MaxQueuedEvents: DefaultMaxQueuedEvents,
		AssetRoot:       "assets",
	}
}

// LoadConfig reads a YAML config over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.AssetRoot != "" && !filepath.IsAbs(cfg.AssetRoot) {
		cfg.AssetRoot = filepath.Join(filepath.Dir(path), cfg.AssetRoot)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxQueuedEvents <= 0:
		return fmt.Errorf("%w: max_queued_events must be positive, got %d", ErrInvalidConfig, c.MaxQueuedEvents)
	case c.Samples < 0:
		return fmt.Errorf("%w: samples must not be negative", ErrInvalidConfig)
	case c.AssetRoot == "":
		return fmt.Errorf("%w: asset_root is empty", ErrInvalidConfig)
	}
	return nil
}
