// Package config loads a JSONC options file whose fields (durability,
// cache size, free-slot threshold) correspond to those of filedict.Config.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Durability values accepted in the "durability" field.
const (
	DurabilitySync  = "sync"
	DurabilityAsync = "async"
)

var (
	// ErrInvalidJSONC is returned when the config file isn't valid JSONC.
	ErrInvalidJSONC = errors.New("config: invalid JSONC")

	// ErrInvalidValue is returned when a field parses but fails validation.
	ErrInvalidValue = errors.New("config: invalid value")
)

// File is the on-disk shape of a filedict config file.
type File struct {
	Durability  string `json:"durability,omitempty"`
	CacheSize   int    `json:"cache_size,omitempty"`
	FreeSlotMin int    `json:"free_slot_min,omitempty"`
}

// Default returns the built-in defaults: sync durability, a 256-entry
// cache generation limit, and a 5-byte free-slot threshold (free slots
// of 5 bytes or fewer are not tracked).
func Default() File {
	return File{
		Durability:  DurabilitySync,
		CacheSize:   256,
		FreeSlotMin: 5,
	}
}

// Load reads and parses a JSONC config file at path, merging it over
// [Default]. A missing file is not an error; Load returns the defaults.
func Load(path string) (File, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return File{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return File{}, fmt.Errorf("%w: %s: %w", ErrInvalidJSONC, path, err)
	}

	overlay := Default()
	if err := json.Unmarshal(standardized, &overlay); err != nil {
		return File{}, fmt.Errorf("%w: %s: %w", ErrInvalidJSONC, path, err)
	}

	if overlay.Durability != "" {
		cfg.Durability = overlay.Durability
	}

	if overlay.CacheSize != 0 {
		cfg.CacheSize = overlay.CacheSize
	}

	if overlay.FreeSlotMin != 0 {
		cfg.FreeSlotMin = overlay.FreeSlotMin
	}

	if err := Validate(cfg); err != nil {
		return File{}, fmt.Errorf("%w: %s: %w", ErrInvalidValue, path, err)
	}

	return cfg, nil
}

// Validate checks that cfg's fields hold legal values.
func Validate(cfg File) error {
	if cfg.Durability != DurabilitySync && cfg.Durability != DurabilityAsync {
		return fmt.Errorf("durability must be %q or %q, got %q", DurabilitySync, DurabilityAsync, cfg.Durability)
	}

	if cfg.CacheSize < 0 {
		return errors.New("cache_size must be >= 0")
	}

	if cfg.FreeSlotMin < 0 {
		return errors.New("free_slot_min must be >= 0")
	}

	return nil
}
