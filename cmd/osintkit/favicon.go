package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/database"
	"github.com/glitchsec/osintkit/internal/favicon"
	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/glitchsec/osintkit/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// faviconResult is the serializable output of a favicon lookup.
type faviconResult struct {
	Target      string             `json:"target"`
	Fingerprint model.Fingerprint  `json:"fingerprint"`
	Queries     faviconQueries     `json:"queries"`
	Matches     []model.HostRecord `json:"matches,omitempty"`
	Total       int                `json:"total_matches,omitempty"`
}

// faviconQueries holds the ready-to-paste pivot filters for each engine.
type faviconQueries struct {
	Shodan    string `json:"shodan"`
	Censys    string `json:"censys,omitempty"`
	FOFA      string `json:"fofa"`
	ShodanURL string `json:"shodan_url"`
}

// NewFaviconCmd creates the favicon command.
func NewFaviconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favicon <url|file|mmh3-hash> [target...]",
		Short: "Fingerprint a favicon and pivot on its hash",
		Long: `Favicon fetches a site's favicon, computes its MMH3, MD5, and SHA256
fingerprints, and prints ready-to-paste search filters for Shodan,
Censys, and FOFA.

The MMH3 hash follows the Shodan convention: MurmurHash3 over the
base64 encoding of the icon, wrapped at 76 columns. This makes the
printed filter match what Shodan indexes for the same icon.

The target may be a URL (the favicon is discovered from the page's
link tags, falling back to /favicon.ico), a local icon file, or a
bare MMH3 hash to pivot on directly.

Examples:
  # Fingerprint a site's favicon
  osintkit favicon https://example.com

  # Hash a local icon file
  osintkit favicon ./favicon.ico

  # Run the pivot searches against Shodan and Censys
  osintkit favicon --pivot https://example.com

  # Pivot on a known MMH3 hash
  osintkit favicon --pivot -- -1848946384

  # Fingerprint several sites at once
  osintkit favicon https://example.com https://example.org`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFaviconCmd,
	}

	cmd.Flags().BoolP("pivot", "p", false,
		"Search Shodan and Censys for hosts serving the same favicon")

	return cmd
}

// runFaviconCmd executes the favicon command.
func runFaviconCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	pivot, err := cmd.Flags().GetBool("pivot")
	if err != nil {
		return err
	}

	db := openCache(cfg, logger)
	defer closeCache(db, logger)

	// Targets are independent, so they fan out concurrently. Results
	// land in their argument positions to keep the output order stable.
	results := make([]*faviconResult, len(cfg.Targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BatchSize)
	for i, target := range cfg.Targets {
		g.Go(func() error {
			fp, err := resolveFingerprint(gctx, cfg, target)
			if err != nil {
				return err
			}

			res := &faviconResult{
				Target:      target,
				Fingerprint: fp,
				Queries: faviconQueries{
					Shodan:    fp.ShodanQuery(),
					Censys:    fp.CensysQuery(),
					FOFA:      fp.FOFAQuery(),
					ShodanURL: fp.ShodanURL(),
				},
			}

			if pivot {
				res.Matches, res.Total, err = pivotFavicon(gctx, cfg, db, logger, fp)
				if err != nil {
					return err
				}
			}

			results[i] = res
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
	return printFaviconResults(cmd, cfg, results)
}

// resolveFingerprint turns the target argument into a favicon fingerprint.
// A bare integer is treated as an MMH3 hash, an existing file path is
// hashed directly, and anything else is fetched as a URL.
func resolveFingerprint(ctx context.Context, cfg *config.Config, target string) (model.Fingerprint, error) {
	if hash, err := strconv.ParseInt(target, 10, 32); err == nil {
		return favicon.FromMMH3(int32(hash)), nil
	}

	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		data, err := os.ReadFile(target) //nolint:gosec // User-provided icon path is intentional
		if err != nil {
			return model.Fingerprint{}, fmt.Errorf("failed to read icon file: %w", err)
		}
		fp := favicon.Hash(data)
		fp.SourceURL = target
		return fp, nil
	}

	fetcher := favicon.NewFetcher(nil,
		favicon.WithMaxBodySize(cfg.MaxBodySize),
	)
	fp, err := fetcher.Fetch(ctx, target)
	if err != nil {
		if errors.Is(err, favicon.ErrNoFavicon) {
			return model.Fingerprint{}, fmt.Errorf("no favicon found at %s", target)
		}
		return model.Fingerprint{}, err
	}
	return fp, nil
}

// pivotFavicon searches the scan engines for hosts serving the favicon.
// Each engine needs its own credential; engines without a configured key
// are skipped rather than failing the whole pivot. The engines are
// independent, so their searches run concurrently.
func pivotFavicon(ctx context.Context, cfg *config.Config, db *database.LookupDB,
	logger *slog.Logger, fp model.Fingerprint) ([]model.HostRecord, int, error) {
	client := newProviderClient(cfg)

	var shodanMatches, censysMatches []model.HostRecord
	var shodanTotal int
	var searched bool

	g, gctx := errgroup.WithContext(ctx)

	if key, err := cfg.Keys.RequireShodan(); err == nil {
		searched = true
		shodan := osint.NewShodan(client, key)
		query := fp.ShodanQuery()

		g.Go(func() error {
			type shodanPivot struct {
				Matches []model.HostRecord `json:"matches"`
				Total   int                `json:"total"`
			}
			res, hit, err := cachedLookup(gctx, db, cfg.CacheTTL, shodan.Name(), query, logger,
				func() (shodanPivot, error) {
					m, t, err := shodan.Search(gctx, query, cfg.Limit)
					return shodanPivot{Matches: m, Total: t}, err
				})
			if err != nil {
				return fmt.Errorf("shodan pivot failed: %w", err)
			}
			logger.Debug("shodan pivot done", "total", res.Total, "cached", hit)
			shodanMatches = res.Matches
			shodanTotal = res.Total
			return nil
		})
	} else {
		logger.Debug("skipping shodan pivot", "reason", err)
	}

	// The Censys pivot keys on the SHA256 digest, which is only known
	// when we hashed real icon bytes. A bare MMH3 target cannot pivot
	// through Censys.
	if query := fp.CensysQuery(); query != "" {
		if key, err := cfg.Keys.RequireCensys(); err == nil {
			searched = true
			censys := osint.NewCensys(client, key, cfg.Keys.CensysOrgID)

			g.Go(func() error {
				res, hit, err := cachedLookup(gctx, db, cfg.CacheTTL, censys.Name(), query, logger,
					func() ([]model.HostRecord, error) {
						return censys.Search(gctx, query, cfg.Limit)
					})
				if err != nil {
					return fmt.Errorf("censys pivot failed: %w", err)
				}
				logger.Debug("censys pivot done", "hits", len(res), "cached", hit)
				censysMatches = res
				return nil
			})
		} else {
			logger.Debug("skipping censys pivot", "reason", err)
		}
	}

	if !searched {
		return nil, 0, errors.New("pivot requires a Shodan or Censys API key (set SHODAN_API_KEY or CENSYS_API_KEY)")
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	matches := append(shodanMatches, censysMatches...)
	return matches, shodanTotal + len(censysMatches), nil
}

// printFaviconResults renders fingerprints and pivot results for the
// terminal.
func printFaviconResults(cmd *cobra.Command, cfg *config.Config, results []*faviconResult) error {
	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)
	for _, res := range results {
		printFaviconResult(w, res)
	}
	return nil
}

// printFaviconResult renders one fingerprint and its pivot results.
func printFaviconResult(w *report.ConsoleWriter, res *faviconResult) {
	w.Infof("Favicon fingerprint for %s", res.Target)
	if res.Fingerprint.SourceURL != "" {
		w.Field("Icon", res.Fingerprint.SourceURL)
	}
	w.Fieldf("MMH3", "%d", res.Fingerprint.MMH3)
	w.Field("MD5", res.Fingerprint.MD5)
	w.Field("SHA256", res.Fingerprint.SHA256)
	if res.Fingerprint.Size > 0 {
		w.Fieldf("Size", "%d bytes", res.Fingerprint.Size)
	}

	w.Infof("Pivot queries")
	w.Field("Shodan", res.Queries.Shodan)
	w.Field("Censys", res.Queries.Censys)
	w.Field("FOFA", res.Queries.FOFA)
	w.Field("Link", res.Queries.ShodanURL)

	if len(res.Matches) == 0 {
		return
	}

	w.Successf("%d matching hosts (%d total across engines)", len(res.Matches), res.Total)
	for _, host := range res.Matches {
		printHostRecord(w, host)
	}
}

// printHostRecord renders one host match in console format.
func printHostRecord(w *report.ConsoleWriter, host model.HostRecord) {
	label := host.IP
	if host.Port > 0 {
		label = fmt.Sprintf("%s:%d", host.IP, host.Port)
	}
	w.Resultf("%s", label)
	w.Field("Org", host.Organization)
	w.Field("ASN", host.ASN)
	w.Field("ISP", host.ISP)
	if host.Country != "" {
		w.Field("Location", joinNonEmpty(host.City, host.Country))
	}
	if len(host.Hostnames) > 0 {
		w.Fieldf("Hostnames", "%v", host.Hostnames)
	}
	if len(host.Ports) > 0 {
		w.Fieldf("Ports", "%v", host.Ports)
	}
	if len(host.Vulns) > 0 {
		w.Fieldf("Vulns", "%v", host.Vulns)
	}
	w.Field("Source", host.Source)
}

// joinNonEmpty joins the non-empty parts with ", ".
func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
