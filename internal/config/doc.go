// Package config provides configuration structures and utilities for osintkit.
// It defines the main options for provider lookups, the API key ring loaded
// from the environment or a secrets file, and the optional .osintkit YAML
// settings file.
package config
