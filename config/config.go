// Package config loads the asciid configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// ErrInvalid reports a configuration value out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the user-tunable settings. Zero values in the file fall back to
// the defaults.
type Config struct {
	Rows         int     `json:"rows"`
	Cols         int     `json:"cols"`
	CellWidth    float64 `json:"cell_width"`
	CellHeight   float64 `json:"cell_height"`
	HistoryLimit int     `json:"history_limit"`
	DBPath       string  `json:"db_path"`
}

const (
	defaultRows         = 100
	defaultCols         = 250
	defaultHistoryLimit = 1000
	configName          = "config.json"
	dbName              = "asciid.db"
)

// UnlimitedHistory as history_limit keeps every version. Zero means the default.
const UnlimitedHistory = -1

// HistoryCapacity returns the version limit for history.NewWithLimit, where
// zero means unbounded.
func (c Config) HistoryCapacity() int {
	if c.HistoryLimit == UnlimitedHistory {
		return 0
	}
	return c.HistoryLimit
}

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "asciid"), nil
}

// DefaultPath returns the location of the configuration file.
func DefaultPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, configName), nil
}

// Default returns the built-in configuration. Terminal cells are one unit wide
// and tall.
func Default() Config {
	cfg := Config{
		Rows:         defaultRows,
		Cols:         defaultCols,
		CellWidth:    1,
		CellHeight:   1,
		HistoryLimit: defaultHistoryLimit,
		DBPath:       dbName,
	}
	if root, err := configRoot(); err == nil {
		cfg.DBPath = filepath.Join(root, dbName)
	}
	return cfg
}

// Load reads the configuration at path. A missing file yields the defaults,
// which are written to path for the user to edit.
func Load(path string) (Config, error) {
	cfg, exists, err := readConfig(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if !exists {
		cfg = Default()
		if err := Save(path, cfg); err != nil {
			log.Printf("[CONFIG] Failed to write default config: %v", err)
		} else {
			log.Printf("[CONFIG] Wrote default config to %s", path)
		}
		return cfg, nil
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values are usable.
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalid, c.Rows, c.Cols)
	case c.CellWidth <= 0 || c.CellHeight <= 0:
		return fmt.Errorf("%w: cell size %vx%v", ErrInvalid, c.CellWidth, c.CellHeight)
	case c.HistoryLimit < UnlimitedHistory:
		return fmt.Errorf("%w: history limit %d", ErrInvalid, c.HistoryLimit)
	}
	return nil
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}
		return Config{}, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Rows == 0 {
		cfg.Rows = def.Rows
	}
	if cfg.Cols == 0 {
		cfg.Cols = def.Cols
	}
	if cfg.CellWidth == 0 {
		cfg.CellWidth = def.CellWidth
	}
	if cfg.CellHeight == 0 {
		cfg.CellHeight = def.CellHeight
	}
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}
	if cfg.DBPath == "" {
		cfg.DBPath = def.DBPath
	}
}
