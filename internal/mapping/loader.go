package mapping

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tables/default.yaml
var defaultTables []byte

// Default returns the embedded default tables.
func Default() *Tables {
	t, err := Parse(defaultTables)
	if err != nil {
		panic(fmt.Sprintf("embedded default tables are invalid: %v", err))
	}

	return t
}

// LoadFile loads and parses a YAML tables file from the given path.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into Tables.
func Parse(data []byte) (*Tables, error) {
	var t Tables

	err := yaml.Unmarshal(data, &t)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tables YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&t)

	return &t, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(t *Tables) {
	if t.Version == "" {
		t.Version = "1"
	}

	if t.MaxFuzzyDistance == nil {
		d := t.Distance()
		t.MaxFuzzyDistance = &d
	}

	if t.Aliases == nil {
		t.Aliases = map[string]string{}
	}

	if t.Fallbacks == nil {
		t.Fallbacks = map[string]string{}
	}
}

// Marshal serializes Tables to YAML.
func Marshal(t *Tables) ([]byte, error) {
	return yaml.Marshal(t)
}

// WriteFile writes Tables to the given path.
func WriteFile(t *Tables, path string) error {
	data, err := Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal tables: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write tables file %s: %w", path, err)
	}

	return nil
}
