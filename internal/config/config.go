package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the timeouts and limits the upstream provider APIs are
// comfortable with; none of them are rate-limit sensitive at defaults.
const (
	// DefaultTimeout is the per-request timeout for provider API calls.
	// Thirty seconds is generous for every provider we talk to; Perplexity
	// completions are the slowest and typically finish well under it.
	DefaultTimeout = 30 * time.Second

	// DefaultLimit is the default maximum number of results to request
	// from search-style endpoints (Shodan favicon search, Hunter emails).
	DefaultLimit = 25

	// DefaultBatchSize is the number of concurrent lookups when several
	// targets are given on the command line. Providers rate-limit per
	// key, so this stays deliberately small.
	DefaultBatchSize = 4

	// DefaultCacheTTL is how long a cached provider response stays fresh.
	// OSINT data ages slowly; a day avoids burning API credits on
	// repeated lookups within a working session.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultUserAgent identifies osintkit in HTTP requests to providers
	// that care (Reddit rejects blank or generic agents).
	DefaultUserAgent = "osintkit/1.0 (+https://github.com/glitchsec/osintkit)"

	// DefaultMaxBodySize limits the response body size read from any
	// provider. 5MB is far above any legitimate API response and
	// prevents memory exhaustion from a misbehaving endpoint.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "osintkit"
)

// Config holds all configuration options for osintkit.
// This struct is populated from CLI flags and the optional .osintkit file
// and passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FaviconConfig, BriefConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Timeout is the per-request timeout for provider API calls.
	Timeout time.Duration

	// Limit caps the number of results requested from search endpoints.
	Limit int

	// BatchSize is the number of concurrent lookups for multi-target
	// invocations.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON output instead of the console format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output instead of the console
	// format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for results.
	// When set, output is written to this file instead of stdout.
	ReportFile string

	// Targets is the list of positional lookup targets (URLs, IPs,
	// domains, names depending on the command).
	Targets []string

	// Keys holds the provider API credentials.
	Keys Keyring

	// KeysFile is the path to the keys.env secrets file, when the user
	// pointed at one explicitly.
	KeysFile string

	// CacheTTL is how long cached provider responses stay fresh.
	// Zero disables the cache.
	CacheTTL time.Duration

	// NoCache bypasses the lookup cache entirely for this invocation.
	NoCache bool

	// DBDir is the directory holding the SQLite lookup cache.
	// Defaults to the XDG data directory.
	DBDir string

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeouts, limits).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		Limit:       DefaultLimit,
		BatchSize:   DefaultBatchSize,
		CacheTTL:    DefaultCacheTTL,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for osintkit.
// On Linux: ~/.local/share/osintkit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for osintkit.
// On Linux: ~/.config/osintkit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any network I/O.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	// Zero or negative timeout would cause immediate request failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Limit <= 0 {
		return ErrInvalidLimit
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
