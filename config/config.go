// Package config loads the TOML-backed tuning knobs for the executor,
// the terminal inspector, and the graphical viewer.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration document, TOML-tagged and split into
// per-concern sectioned structs.
type Config struct {
	Executor  ExecutorSection  `toml:"executor"`
	Inspector InspectorSection `toml:"inspector"`
	Viewer    ViewerSection    `toml:"viewer"`
}

// ExecutorSection tunes the block-parallel scheduler (package parallel).
type ExecutorSection struct {
	MaxWorkers      int  `toml:"max_workers"` // 0 means GOMAXPROCS
	BlockSizeCap    int  `toml:"block_size_cap"`
	StrictMode      bool `toml:"strict_mode"`
	EnableProfiling bool `toml:"enable_profiling"`
}

// InspectorSection configures the terminal inspector (package inspect).
type InspectorSection struct {
	PageRows     int    `toml:"page_rows"`
	PageCols     int    `toml:"page_cols"`
	NumberFormat string `toml:"number_format"` // hex, dec
	ColorOutput  bool   `toml:"color_output"`
}

// ViewerSection configures the graphical heatmap viewer (package viewer).
type ViewerSection struct {
	CellSizePx int    `toml:"cell_size_px"`
	Palette    string `toml:"palette"` // grayscale, blackwhite
}

// DefaultConfig returns a Config populated with the defaults every field
// falls back to when no file (or no matching section) is present.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Executor.MaxWorkers = 0
	cfg.Executor.BlockSizeCap = 65536
	cfg.Executor.StrictMode = true
	cfg.Executor.EnableProfiling = false

	cfg.Inspector.PageRows = 24
	cfg.Inspector.PageCols = 8
	cfg.Inspector.NumberFormat = "hex"
	cfg.Inspector.ColorOutput = true

	cfg.Viewer.CellSizePx = 4
	cfg.Viewer.Palette = "grayscale"

	return cfg
}

// LoadConfig reads path as TOML over top of DefaultConfig's values. A
// missing file is not an error: the defaults are returned unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path as TOML, creating or truncating the file.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) // #nosec G304 -- caller-supplied config path
	if err != nil {
		return fmt.Errorf("config: failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: failed to encode %s: %w", path, err)
	}
	return nil
}
