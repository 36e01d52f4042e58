package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/database"
	"github.com/glitchsec/osintkit/internal/log"
	"github.com/spf13/cobra"
)

// parseRootFlags returns a root command with its flags parsed, ready to
// be handed to buildConfig.
func parseRootFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	root := NewRootCmd()
	if err := root.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error = %v", args, err)
	}
	return root
}

// emptyKeysFile returns the path of an empty keys.env, to pin credential
// loading to the test environment instead of any user-level secrets file.
func emptyKeysFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "keys.env")
	if err := os.WriteFile(path, []byte("# empty\n"), 0600); err != nil {
		t.Fatalf("failed to write keys file: %v", err)
	}
	return path
}

func TestBuildConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		root := parseRootFlags(t, "--keys", emptyKeysFile(t))

		cfg, err := buildConfig(root, []string{"example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}

		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("Timeout = %v, want %v", cfg.Timeout, config.DefaultTimeout)
		}
		if cfg.Limit != config.DefaultLimit {
			t.Errorf("Limit = %d, want %d", cfg.Limit, config.DefaultLimit)
		}
		if len(cfg.Targets) != 1 || cfg.Targets[0] != "example.com" {
			t.Errorf("Targets = %v", cfg.Targets)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		root := parseRootFlags(t,
			"--keys", emptyKeysFile(t),
			"--timeout", "5s",
			"--limit", "3",
			"--json",
			"--no-cache",
		)

		cfg, err := buildConfig(root, []string{"example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}

		if cfg.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
		}
		if cfg.Limit != 3 {
			t.Errorf("Limit = %d, want 3", cfg.Limit)
		}
		if !cfg.JSONReport {
			t.Error("JSONReport not set")
		}
		if !cfg.NoCache {
			t.Error("NoCache not set")
		}
	})

	t.Run("conflicting report formats rejected", func(t *testing.T) {
		root := parseRootFlags(t, "--keys", emptyKeysFile(t), "--json", "--markdown")

		if _, err := buildConfig(root, []string{"example.com"}); err == nil {
			t.Error("expected error for --json with --markdown")
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		root := parseRootFlags(t,
			"--keys", emptyKeysFile(t),
			"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		)

		if _, err := buildConfig(root, []string{"example.com"}); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("config file values applied", func(t *testing.T) {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "osintkit.yaml")
		content := "timeout: 45s\nlimit: 7\n"
		if err := os.WriteFile(cfgPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		root := parseRootFlags(t, "--keys", emptyKeysFile(t), "--config", cfgPath)

		cfg, err := buildConfig(root, []string{"example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Timeout != 45*time.Second {
			t.Errorf("Timeout = %v, want 45s", cfg.Timeout)
		}
		if cfg.Limit != 7 {
			t.Errorf("Limit = %d, want 7", cfg.Limit)
		}
	})

	t.Run("flags win over config file", func(t *testing.T) {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "osintkit.yaml")
		if err := os.WriteFile(cfgPath, []byte("timeout: 45s\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		root := parseRootFlags(t,
			"--keys", emptyKeysFile(t),
			"--config", cfgPath,
			"--timeout", "5s",
		)

		cfg, err := buildConfig(root, []string{"example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want flag value 5s", cfg.Timeout)
		}
	})

	t.Run("keys file loaded", func(t *testing.T) {
		keysPath := filepath.Join(t.TempDir(), "keys.env")
		if err := os.WriteFile(keysPath, []byte("SHODAN_API_KEY=test-key\n"), 0600); err != nil {
			t.Fatalf("failed to write keys file: %v", err)
		}

		root := parseRootFlags(t, "--keys", keysPath)

		cfg, err := buildConfig(root, []string{"example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Keys.Shodan != "test-key" {
			t.Errorf("Keys.Shodan = %q, want 'test-key'", cfg.Keys.Shodan)
		}
	})
}

func TestCachedLookup(t *testing.T) {
	t.Parallel()

	type payload struct {
		Value string `json:"value"`
	}

	logger := log.NewSecureLogger(os.Stderr, false)

	t.Run("caches fetch results", func(t *testing.T) {
		t.Parallel()

		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer db.Close()

		ctx := context.Background()
		calls := 0
		fetch := func() (payload, error) {
			calls++
			return payload{Value: "fresh"}, nil
		}

		got, cached, err := cachedLookup(ctx, db, time.Hour, "shodan", "host:1.2.3.4", logger, fetch)
		if err != nil {
			t.Fatalf("cachedLookup() error = %v", err)
		}
		if cached {
			t.Error("first lookup should not be cached")
		}
		if got.Value != "fresh" {
			t.Errorf("Value = %q", got.Value)
		}

		got, cached, err = cachedLookup(ctx, db, time.Hour, "shodan", "host:1.2.3.4", logger, fetch)
		if err != nil {
			t.Fatalf("cachedLookup() second call error = %v", err)
		}
		if !cached {
			t.Error("second lookup should hit the cache")
		}
		if got.Value != "fresh" {
			t.Errorf("cached Value = %q", got.Value)
		}
		if calls != 1 {
			t.Errorf("fetch called %d times, want 1", calls)
		}
	})

	t.Run("nil database always fetches", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		calls := 0
		fetch := func() (payload, error) {
			calls++
			return payload{Value: "direct"}, nil
		}

		for range 2 {
			_, cached, err := cachedLookup(ctx, nil, time.Hour, "shodan", "q", logger, fetch)
			if err != nil {
				t.Fatalf("cachedLookup() error = %v", err)
			}
			if cached {
				t.Error("nil db should never report a cache hit")
			}
		}
		if calls != 2 {
			t.Errorf("fetch called %d times, want 2", calls)
		}
	})

	t.Run("fetch errors pass through", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("provider down")
		_, _, err := cachedLookup(context.Background(), nil, time.Hour, "shodan", "q", logger,
			func() (payload, error) {
				return payload{}, wantErr
			})
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
	})
}

func TestOpenOutput(t *testing.T) {
	t.Parallel()

	t.Run("creates nested output file", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.ReportFile = filepath.Join(t.TempDir(), "reports", "out.json")

		cmd := &cobra.Command{}
		f, closeFn, err := openOutput(cmd, cfg)
		if err != nil {
			t.Fatalf("openOutput() error = %v", err)
		}
		defer closeFn()

		if _, err := f.WriteString("data"); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		closeFn()

		info, err := os.Stat(cfg.ReportFile)
		if err != nil {
			t.Fatalf("output file missing: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want 0600", perm)
		}
	})

	t.Run("defaults to stdout", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cmd := &cobra.Command{}

		f, closeFn, err := openOutput(cmd, cfg)
		if err != nil {
			t.Fatalf("openOutput() error = %v", err)
		}
		defer closeFn()

		if f != os.Stdout {
			t.Error("expected stdout when no report file configured")
		}
	})
}
