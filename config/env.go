// Package config loads grid settings from the environment and column
// definitions from YAML, and opens the configured width store.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/go-theft-auto/grid"
)

// Storage drivers accepted in GRID_STORAGE_DRIVER.
const (
	DriverNone   = "none"
	DriverInmem  = "inmem"
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Settings are the environment-level grid knobs.
type Settings struct {
	RowHeight     float64 `env:"GRID_ROW_HEIGHT" envDefault:"40"`
	HeaderHeight  float64 `env:"GRID_HEADER_HEIGHT" envDefault:"50"`
	BufferSize    int     `env:"GRID_BUFFER_SIZE" envDefault:"10"`
	StorageKey    string  `env:"GRID_STORAGE_KEY" envDefault:"ngx-simple-datatable-column-widths"`
	StorageDriver string  `env:"GRID_STORAGE_DRIVER" envDefault:"inmem"`
	StoragePath   string  `env:"GRID_STORAGE_PATH"`
	ColumnsFile   string  `env:"GRID_COLUMNS_FILE"`
	Verbose       bool    `env:"GRID_VERBOSE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates Settings from the environment.
func Load() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks value ranges and the storage driver.
func (s Settings) Validate() error {
	var errs []error
	if s.RowHeight <= 0 {
		errs = append(errs, fmt.Errorf("GRID_ROW_HEIGHT must be positive, got %v", s.RowHeight))
	}
	if s.HeaderHeight < 0 {
		errs = append(errs, fmt.Errorf("GRID_HEADER_HEIGHT must not be negative, got %v", s.HeaderHeight))
	}
	if s.BufferSize < 0 {
		errs = append(errs, fmt.Errorf("GRID_BUFFER_SIZE must not be negative, got %d", s.BufferSize))
	}
	switch s.StorageDriver {
	case DriverNone, DriverInmem:
	case DriverBadger, DriverSQLite:
		if s.StoragePath == "" {
			errs = append(errs, fmt.Errorf("GRID_STORAGE_PATH is required for the %s driver", s.StorageDriver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown GRID_STORAGE_DRIVER %q", s.StorageDriver))
	}
	return errors.Join(errs...)
}

// Apply copies the row metrics and storage key into cfg.
func (s Settings) Apply(cfg *grid.Config) {
	cfg.RowHeight = s.RowHeight
	cfg.HeaderHeight = s.HeaderHeight
	cfg.BufferSize = s.BufferSize
	cfg.StorageKey = s.StorageKey
}
