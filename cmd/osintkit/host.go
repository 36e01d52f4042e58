package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/database"
	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/glitchsec/osintkit/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// hostResult is the serializable output of a host lookup: one record per
// engine that returned data.
type hostResult struct {
	IP      string             `json:"ip"`
	Records []model.HostRecord `json:"records"`
}

// NewHostCmd creates the host command.
func NewHostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host <ip> [ip...]",
		Short: "Look up hosts in internet scan engines",
		Long: `Host queries Shodan and Censys for everything they have indexed about
an IP address: open ports, hostnames, the owning organization and ASN,
location, and known vulnerabilities.

Engines without a configured API key are skipped. At least one of
SHODAN_API_KEY or CENSYS_API_KEY must be set.

Examples:
  # Look up a single host
  osintkit host 93.184.216.34

  # Look up several hosts, output JSON
  osintkit host --json 93.184.216.34 151.101.1.140

  # Only ask Censys
  osintkit host --provider censys 93.184.216.34`,
		Args: cobra.MinimumNArgs(1),
		RunE: runHostCmd,
	}

	cmd.Flags().StringP("provider", "p", "all",
		"Engine to query: shodan, censys, or all")

	return cmd
}

// runHostCmd executes the host command.
func runHostCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
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
	if provider != "all" && provider != "shodan" && provider != "censys" {
		return fmt.Errorf("unknown provider %q (want shodan, censys, or all)", provider)
	}

	for _, target := range cfg.Targets {
		if net.ParseIP(target) == nil {
			return fmt.Errorf("invalid IP address: %s", target)
		}
	}

	db := openCache(cfg, logger)
	defer closeCache(db, logger)

	client := newProviderClient(cfg)

	var shodan *osint.Shodan
	if key, err := cfg.Keys.RequireShodan(); err == nil && provider != "censys" {
		shodan = osint.NewShodan(client, key)
	}
	var censys *osint.Censys
	if key, err := cfg.Keys.RequireCensys(); err == nil && provider != "shodan" {
		censys = osint.NewCensys(client, key, cfg.Keys.CensysOrgID)
	}
	if shodan == nil && censys == nil {
		return errors.New("host lookup requires a Shodan or Censys API key (set SHODAN_API_KEY or CENSYS_API_KEY)")
	}

	// Targets are independent, so they fan out concurrently. Results
	// land in their argument positions to keep the output order stable.
	results := make([]hostResult, len(cfg.Targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BatchSize)
	for i, ip := range cfg.Targets {
		g.Go(func() error {
			res, err := lookupHost(gctx, cfg, db, logger, shodan, censys, ip)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if cfg.JSONReport || cfg.MarkdownReport {
		if len(results) == 1 {
			return writeValue(cmd, cfg, results[0])
		}
		return writeValue(cmd, cfg, results)
	}
	return printHostResults(cmd, cfg, results)
}

// lookupHost queries each configured engine for one IP. A not-found from
// one engine is fine as long as some engine knows the host.
func lookupHost(ctx context.Context, cfg *config.Config, db *database.LookupDB,
	logger *slog.Logger, shodan *osint.Shodan, censys *osint.Censys, ip string) (*hostResult, error) {
	res := &hostResult{IP: ip}

	if shodan != nil {
		record, cached, err := cachedLookup(ctx, db, cfg.CacheTTL, shodan.Name(), "host:"+ip, logger,
			func() (*model.HostRecord, error) {
				return shodan.Host(ctx, ip)
			})
		switch {
		case err == nil:
			logger.Debug("shodan host lookup done", "ip", ip, "cached", cached)
			res.Records = append(res.Records, *record)
		case errors.Is(err, osint.ErrNotFound):
			logger.Debug("shodan has no record", "ip", ip)
		default:
			return nil, fmt.Errorf("shodan lookup for %s failed: %w", ip, err)
		}
	}

	if censys != nil {
		record, cached, err := cachedLookup(ctx, db, cfg.CacheTTL, censys.Name(), "host:"+ip, logger,
			func() (*model.HostRecord, error) {
				return censys.Host(ctx, ip)
			})
		switch {
		case err == nil:
			logger.Debug("censys host lookup done", "ip", ip, "cached", cached)
			res.Records = append(res.Records, *record)
		case errors.Is(err, osint.ErrNotFound):
			logger.Debug("censys has no record", "ip", ip)
		default:
			return nil, fmt.Errorf("censys lookup for %s failed: %w", ip, err)
		}
	}

	return res, nil
}

// printHostResults renders host lookups for the terminal.
func printHostResults(cmd *cobra.Command, cfg *config.Config, results []hostResult) error {
	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)

	for _, res := range results {
		if len(res.Records) == 0 {
			w.Warnf("No engine has a record for %s", res.IP)
			continue
		}
		w.Infof("Host %s", res.IP)
		for _, record := range res.Records {
			printHostRecord(w, record)
			w.Field("Last update", record.LastUpdate)
		}
	}

	return nil
}
