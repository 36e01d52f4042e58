package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variable names for provider credentials.
const (
	EnvShodanKey     = "SHODAN_API_KEY"
	EnvCensysKey     = "CENSYS_API_KEY"
	EnvCensysOrgID   = "CENSYS_ORG_ID"
	EnvHunterKey     = "HUNTER_API_KEY"
	EnvApolloKey     = "APOLLO_API_KEY"
	EnvPerplexityKey = "PERPLEXITY_API_KEY"
	EnvRapidAPIKey   = "RAPIDAPI_KEY"

	// EnvKeysFile points at a keys.env secrets file to load credentials from.
	EnvKeysFile = "OSINTKIT_KEYS"
)

// DefaultKeysFileName is the secrets file name searched for in the XDG
// config directory when no explicit path is given.
const DefaultKeysFileName = "keys.env"

// Keyring holds API credentials for all supported providers.
// Empty fields mean the provider is not configured; commands that need a
// provider check for its key before any network I/O.
type Keyring struct {
	Shodan      string
	Censys      string
	CensysOrgID string
	Hunter      string
	Apollo      string
	Perplexity  string
	RapidAPI    string
}

// LoadKeyring builds a Keyring from the process environment, optionally
// pre-loaded from a keys.env secrets file.
//
// The file is located in this order:
//  1. The explicit path argument (error if it does not exist)
//  2. The OSINTKIT_KEYS environment variable
//  3. keys.env in the XDG config directory (silently skipped if absent)
//
// Values from the file take precedence over the inherited environment,
// matching the behavior of sourcing a secrets file before running.
func LoadKeyring(path string) (Keyring, error) {
	vars := map[string]string{}

	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvKeysFile)
	}
	if path == "" {
		candidate := filepath.Join(XDGConfigDir(), DefaultKeysFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	if path != "" {
		fileVars, err := parseKeysFile(path)
		if err != nil {
			if explicit || !os.IsNotExist(err) {
				return Keyring{}, fmt.Errorf("failed to load keys file %s: %w", path, err)
			}
		} else {
			vars = fileVars
		}
	}

	get := func(name string) string {
		if v, ok := vars[name]; ok {
			return v
		}
		return os.Getenv(name)
	}

	return Keyring{
		Shodan:      get(EnvShodanKey),
		Censys:      get(EnvCensysKey),
		CensysOrgID: get(EnvCensysOrgID),
		Hunter:      get(EnvHunterKey),
		Apollo:      get(EnvApolloKey),
		Perplexity:  get(EnvPerplexityKey),
		RapidAPI:    get(EnvRapidAPIKey),
	}, nil
}

// parseKeysFile reads a KEY=VALUE secrets file.
// Blank lines and lines starting with '#' are ignored. Values may be
// wrapped in single or double quotes, which are stripped.
func parseKeysFile(path string) (map[string]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided secrets path is intentional
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vars := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		vars[key] = value
	}

	return vars, scanner.Err()
}

// Require returns the key for the named environment variable, or a
// wrapped ErrMissingAPIKey identifying what to set.
func require(key, provider, envName string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w for %s (set %s)", ErrMissingAPIKey, provider, envName)
	}
	return key, nil
}

// RequireShodan returns the Shodan API key or a missing-key error.
func (k Keyring) RequireShodan() (string, error) {
	return require(k.Shodan, "Shodan", EnvShodanKey)
}

// RequireCensys returns the Censys token or a missing-key error.
func (k Keyring) RequireCensys() (string, error) {
	return require(k.Censys, "Censys", EnvCensysKey)
}

// RequireHunter returns the Hunter.io API key or a missing-key error.
func (k Keyring) RequireHunter() (string, error) {
	return require(k.Hunter, "Hunter.io", EnvHunterKey)
}

// RequireApollo returns the Apollo.io API key or a missing-key error.
func (k Keyring) RequireApollo() (string, error) {
	return require(k.Apollo, "Apollo.io", EnvApolloKey)
}

// RequirePerplexity returns the Perplexity API key or a missing-key error.
func (k Keyring) RequirePerplexity() (string, error) {
	return require(k.Perplexity, "Perplexity", EnvPerplexityKey)
}

// RequireRapidAPI returns the RapidAPI key or a missing-key error.
func (k Keyring) RequireRapidAPI() (string, error) {
	return require(k.RapidAPI, "RapidAPI", EnvRapidAPIKey)
}
