package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".osintkit"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Duration is a time.Duration that unmarshals from YAML strings such
// as "45s" or "24h".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// File represents the structure of the .osintkit configuration file.
// All fields are optional; zero values leave the built-in defaults alone.
type File struct {
	// Timeout is the per-request timeout, e.g. "45s".
	Timeout Duration `yaml:"timeout,omitempty"`

	// Limit caps results from search endpoints.
	Limit int `yaml:"limit,omitempty"`

	// Batch is the concurrency for multi-target lookups.
	Batch int `yaml:"batch,omitempty"`

	// CacheTTL is how long cached provider responses stay fresh, e.g. "24h".
	CacheTTL Duration `yaml:"cacheTTL,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// KeysFile points at a keys.env secrets file.
	KeysFile string `yaml:"keysFile,omitempty"`
}

// ApplyTo overlays the file's non-zero settings onto cfg.
// CLI flags are applied after the file, so flags win over file values.
func (f *File) ApplyTo(cfg *Config) {
	if f.Timeout > 0 {
		cfg.Timeout = time.Duration(f.Timeout)
	}
	if f.Limit > 0 {
		cfg.Limit = f.Limit
	}
	if f.Batch > 0 {
		cfg.BatchSize = f.Batch
	}
	if f.CacheTTL > 0 {
		cfg.CacheTTL = time.Duration(f.CacheTTL)
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.KeysFile != "" && cfg.KeysFile == "" {
		cfg.KeysFile = f.KeysFile
	}
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .osintkit in the current directory
//  3. Look for .osintkit in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
