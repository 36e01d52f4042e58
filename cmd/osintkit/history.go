package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/glitchsec/osintkit/internal/database"
	"github.com/glitchsec/osintkit/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show cached provider lookups",
		Long: `History lists the provider responses cached in the local lookup
database, newest first. The cache lives in the XDG data directory and
is what lets repeated lookups avoid spending API credits.

Examples:
  # Last 25 lookups across all providers
  osintkit history

  # Only Shodan lookups
  osintkit history --provider shodan

  # Drop cache entries older than a week
  osintkit history --purge 168h`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("provider", "p", "", "Only show lookups for this provider")
	cmd.Flags().StringP("query", "q", "", "Only show lookups whose query contains this substring")
	cmd.Flags().Duration("purge", 0, "Delete cache entries older than this age and exit")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd, nil)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	provider, err := cmd.Flags().GetString("provider")
	if err != nil {
		return err
	}
	queryFilter, err := cmd.Flags().GetString("query")
	if err != nil {
		return err
	}
	purge, err := cmd.Flags().GetDuration("purge")
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open lookup cache: %w", err)
	}
	defer closeCache(db, logger)

	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)

	if purge > 0 {
		removed, err := db.PurgeOlderThan(ctx, purge)
		if err != nil {
			return fmt.Errorf("purge failed: %w", err)
		}
		w.Successf("Removed %d cache entries older than %s", removed, purge)
		return nil
	}

	records, err := db.History(ctx, provider, cfg.Limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if queryFilter != "" {
		filtered := records[:0]
		for _, rec := range records {
			if strings.Contains(rec.Query, queryFilter) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if cfg.JSONReport || cfg.MarkdownReport {
		return writeValue(cmd, cfg, records)
	}

	if len(records) == 0 {
		w.Warnf("No cached lookups")
		return nil
	}

	providers, err := db.ListProviders(ctx)
	if err == nil && len(providers) > 0 {
		w.Infof("Providers with cached data: %s", strings.Join(providers, ", "))
	}

	w.Successf("%d cached lookups", len(records))
	for _, rec := range records {
		age := time.Since(rec.Timestamp).Round(time.Minute)
		w.Itemf("[%s] %s (%s ago)", rec.Provider, rec.Query, age)
	}

	return nil
}
