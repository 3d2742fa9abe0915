package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"

	"emigrant-atlas/internal/choropleth"
	"emigrant-atlas/internal/geo"
)

// Environment variables that override file values.
const (
	EnvGeoJSON     = "ATLAS_GEOJSON"
	EnvData        = "ATLAS_DATA"
	EnvTables      = "ATLAS_TABLES"
	EnvMaxDistance = "ATLAS_MAX_DISTANCE"
	EnvTopN        = "ATLAS_TOP_N"
	EnvWorkers     = "ATLAS_WORKERS"
)

// ReferenceConfig locates the reference geometry and its property keys.
type ReferenceConfig struct {
	GeoJSON     string   `toml:"geojson"`
	IDKeys      []string `toml:"id_keys"`
	NameKeys    []string `toml:"name_keys"`
	DisplayKeys []string `toml:"display_keys"`
}

// DataConfig locates the data document.
type DataConfig struct {
	Path string `toml:"path"`
}

// TablesConfig locates the alias/fallback tables and bounds fuzzy matching.
type TablesConfig struct {
	// Path to a tables YAML file; empty means the embedded defaults.
	Path string `toml:"path"`
	// MaxDistance overrides the tables' fuzzy cut-off when set.
	MaxDistance *int `toml:"max_distance"`
}

// MapConfig controls the color scale and the ranking.
type MapConfig struct {
	Low         string `toml:"low"`
	High        string `toml:"high"`
	TopN        int    `toml:"top_n"`
	LegendSteps int    `toml:"legend_steps"`
}

// ConcurrencyConfig bounds the parallel passes of a multi-year run.
type ConcurrencyConfig struct {
	// Workers bounds the parallel per-year passes; 0 means no bound.
	Workers int `toml:"workers"`
}

// Config is the full configuration of a run.
type Config struct {
	Reference   ReferenceConfig   `toml:"reference"`
	Data        DataConfig        `toml:"data"`
	Tables      TablesConfig      `toml:"tables"`
	Map         MapConfig         `toml:"map"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Reference: ReferenceConfig{GeoJSON: "countries.geojson"},
		Data:      DataConfig{Path: "destinations.json"},
		Map: MapConfig{
			Low:         choropleth.DefaultLow,
			High:        choropleth.DefaultHigh,
			TopN:        choropleth.DefaultTopN,
			LegendSteps: choropleth.DefaultLegendSteps,
		},
		Concurrency: ConcurrencyConfig{Workers: 4},
	}
}

// Load reads a TOML file over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}

		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	num := func(key string) (int, bool, error) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return 0, false, nil
		}

		n, err := cast.ToIntE(strings.TrimSpace(v))
		if err != nil {
			return 0, false, fmt.Errorf("invalid %s %q: %w", key, v, err)
		}

		return n, true, nil
	}

	str(EnvGeoJSON, &c.Reference.GeoJSON)
	str(EnvData, &c.Data.Path)
	str(EnvTables, &c.Tables.Path)

	if n, ok, err := num(EnvMaxDistance); err != nil {
		return err
	} else if ok {
		c.Tables.MaxDistance = &n
	}

	if n, ok, err := num(EnvTopN); err != nil {
		return err
	} else if ok {
		c.Map.TopN = n
	}

	if n, ok, err := num(EnvWorkers); err != nil {
		return err
	} else if ok {
		c.Concurrency.Workers = n
	}

	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Reference.GeoJSON == "" {
		errs = append(errs, errors.New("reference.geojson is required"))
	}

	if c.Tables.MaxDistance != nil && *c.Tables.MaxDistance < 0 {
		errs = append(errs, fmt.Errorf("tables.max_distance must not be negative, got %d", *c.Tables.MaxDistance))
	}

	if c.Map.TopN < 0 {
		errs = append(errs, fmt.Errorf("map.top_n must not be negative, got %d", c.Map.TopN))
	}

	if c.Concurrency.Workers < 0 {
		errs = append(errs, fmt.Errorf("concurrency.workers must not be negative, got %d", c.Concurrency.Workers))
	}

	return errors.Join(errs...)
}

// Keys returns the registry property keys; empty lists take geo defaults.
func (c *Config) Keys() geo.Keys {
	return geo.Keys{
		ID:      c.Reference.IDKeys,
		Names:   c.Reference.NameKeys,
		Display: c.Reference.DisplayKeys,
	}
}
