// Package config loads, normalizes, and validates muscat configuration.
//
// Configuration is a TOML file, by default at ~/.config/muscat/config.toml.
// Every setting has a default so the tool runs without a config file. Load
// expands ~ in path settings and rejects unusable values before any command
// touches the catalog.
package config
