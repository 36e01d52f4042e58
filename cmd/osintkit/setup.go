package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/database"
	"github.com/glitchsec/osintkit/internal/log"
	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/glitchsec/osintkit/internal/report"
	"github.com/spf13/cobra"
)

// buildConfig creates a Config from the persistent flags shared by every
// command. The optional .osintkit file is applied first, so flags win.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file, error when it is
	// missing. Otherwise silently fall back to defaults.
	explicitConfigPath := configPath != ""
	found := config.FindConfigFile(configPath)
	if found != "" {
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cf.ApplyTo(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("limit") {
		if cfg.Limit, err = flags.GetInt("limit"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose, err = flags.GetBool("verbose")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = flags.GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = flags.GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = flags.GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoCache, err = flags.GetBool("no-cache")
	if err != nil {
		return nil, err
	}

	keysFile, err := flags.GetString("keys")
	if err != nil {
		return nil, err
	}
	if keysFile != "" {
		cfg.KeysFile = keysFile
	}

	cfg.Keys, err = config.LoadKeyring(cfg.KeysFile)
	if err != nil {
		return nil, err
	}

	cfg.Targets = args

	// History takes no targets; everything else does, and cobra's Args
	// validators have already enforced that. Validate catches flag
	// combinations cobra cannot, like --json with --markdown.
	if len(cfg.Targets) > 0 {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("configuration error: %w", err)
		}
	}

	return cfg, nil
}

// setupLogger creates a structured logger that redacts credential-bearing
// attributes before they reach the terminal.
func setupLogger(cfg *config.Config) *slog.Logger {
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// newProviderClient builds the shared HTTP client for provider wrappers
// from the resolved configuration.
func newProviderClient(cfg *config.Config) *osint.Client {
	return osint.NewClient(
		osint.WithTimeout(cfg.Timeout),
		osint.WithUserAgent(cfg.UserAgent),
		osint.WithMaxBodySize(cfg.MaxBodySize),
	)
}

// openCache opens the lookup cache unless --no-cache was given.
// A cache open failure is not fatal; lookups just go straight to the
// providers. Callers must handle a nil return.
func openCache(cfg *config.Config, logger *slog.Logger) *database.LookupDB {
	if cfg.NoCache || cfg.CacheTTL == 0 {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("lookup cache unavailable, querying providers directly",
			"dir", cfg.DBDir, "error", err)
		return nil
	}
	return db
}

// closeCache closes the cache if it was opened.
func closeCache(db *database.LookupDB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("failed to close lookup cache", "error", err)
	}
}

// cachedLookup returns a fresh cached response for provider/query when one
// exists, otherwise calls fetch and stores the result. The bool reports
// whether the value came from the cache. Cache write failures are logged
// and swallowed; the lookup itself already succeeded.
func cachedLookup[T any](ctx context.Context, db *database.LookupDB, ttl time.Duration,
	provider, query string, logger *slog.Logger, fetch func() (T, error)) (T, bool, error) {
	var cached T

	if db != nil {
		found, err := db.GetRecentLookup(ctx, provider, query, ttl, &cached)
		if err != nil {
			logger.Warn("cache read failed", "provider", provider, "error", err)
		} else if found {
			return cached, true, nil
		}
	}

	fresh, err := fetch()
	if err != nil {
		return fresh, false, err
	}

	if db != nil {
		if err := db.SaveLookup(ctx, provider, query, fresh); err != nil {
			logger.Warn("cache write failed", "provider", provider, "error", err)
		}
	}

	return fresh, false, nil
}

// openOutput returns the destination for results: the --output file when
// given, otherwise the command's stdout. The returned closer is a no-op
// for stdout.
func openOutput(cmd *cobra.Command, cfg *config.Config) (*os.File, func(), error) {
	if cfg.ReportFile == "" {
		if f, ok := cmd.OutOrStdout().(*os.File); ok {
			return f, func() {}, nil
		}
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may contain personal data; keep them owner-readable only.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// writeBrief renders a brief in the format selected by the report flags.
func writeBrief(cmd *cobra.Command, cfg *config.Config, b *model.Brief) error {
	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewConsoleWriter(output)
	}

	_, err = w.WriteBrief(b)
	return err
}

// writeValue renders an arbitrary result value in the format selected by
// the report flags. The console format has no generic rendering for
// non-brief values, so it falls back to pretty JSON.
func writeValue(cmd *cobra.Command, cfg *config.Config, v any) error {
	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if cfg.MarkdownReport {
		_, err := report.NewMarkdownWriter(output).WriteValue(v)
		return err
	}

	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
