// Package config loads the TOML configuration and applies ATLAS_* environment
// overrides on top of it.
package config
