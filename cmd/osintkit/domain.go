package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/database"
	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/glitchsec/osintkit/internal/recon"
	"github.com/glitchsec/osintkit/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// domainResult is the serializable output of a domain lookup.
type domainResult struct {
	Domain     string              `json:"domain"`
	DNS        map[string][]string `json:"dns,omitempty"`
	Whois      *model.WhoisInfo    `json:"whois,omitempty"`
	Subdomains []string            `json:"subdomains,omitempty"`
	Emails     *model.DomainSearch `json:"emails,omitempty"`
}

// NewDomainCmd creates the domain command.
func NewDomainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain <domain> [domain...]",
		Short: "Profile a domain: DNS, WHOIS, subdomains, and email addresses",
		Long: `Domain builds a reconnaissance profile for a domain.

DNS records (A, MX, NS, TXT) are resolved locally and WHOIS is queried
over port 43 following registry referrals; neither needs an API key.
With a Shodan key, known subdomains are listed from Shodan's passive
DNS. With a Hunter.io key, published email addresses and the company's
address pattern are included.

Examples:
  # Keyless recon: DNS and WHOIS only
  osintkit domain example.com

  # Full profile with subdomains and emails
  SHODAN_API_KEY=... HUNTER_API_KEY=... osintkit domain example.com

  # Skip WHOIS for speed
  osintkit domain --no-whois example.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDomainCmd,
	}

	cmd.Flags().Bool("no-whois", false, "Skip the WHOIS lookup")
	cmd.Flags().Bool("no-dns", false, "Skip local DNS resolution")

	return cmd
}

// runDomainCmd executes the domain command.
func runDomainCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	noWhois, err := cmd.Flags().GetBool("no-whois")
	if err != nil {
		return err
	}
	noDNS, err := cmd.Flags().GetBool("no-dns")
	if err != nil {
		return err
	}

	db := openCache(cfg, logger)
	defer closeCache(db, logger)

	// Validate every target before spending lookups on any of them.
	domains := make([]string, len(cfg.Targets))
	for i, target := range cfg.Targets {
		domain := normalizeDomain(target)
		if domain == "" {
			return fmt.Errorf("invalid domain: %s", target)
		}
		domains[i] = domain
	}

	// Domains are independent, so they fan out concurrently. Results
	// land in their argument positions to keep the output order stable.
	results := make([]domainResult, len(domains))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BatchSize)
	for i, domain := range domains {
		g.Go(func() error {
			res, err := lookupDomain(gctx, cfg, db, logger, domain, noDNS, noWhois)
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
	return printDomainResults(cmd, cfg, results)
}

// normalizeDomain strips URL scheme, path, and port from a domain
// argument so users can paste URLs directly.
func normalizeDomain(target string) string {
	d := strings.TrimSpace(strings.ToLower(target))
	for _, prefix := range []string{"https://", "http://"} {
		d = strings.TrimPrefix(d, prefix)
	}
	if i := strings.IndexAny(d, "/:"); i >= 0 {
		d = d[:i]
	}
	if d == "" || !strings.Contains(d, ".") {
		return ""
	}
	return d
}

// lookupDomain assembles the recon profile for one domain. DNS and WHOIS
// failures are logged but not fatal; a domain with no DNS may still have
// WHOIS history worth seeing.
func lookupDomain(ctx context.Context, cfg *config.Config, db *database.LookupDB,
	logger *slog.Logger, domain string, noDNS, noWhois bool) (*domainResult, error) {
	res := &domainResult{Domain: domain}

	if !noDNS {
		resolver := recon.NewResolver()
		records, err := resolver.Lookup(ctx, domain)
		if err != nil {
			logger.Warn("DNS resolution failed", "domain", domain, "error", err)
		} else {
			res.DNS = records
		}
	}

	if !noWhois {
		whois := recon.NewWhoisClient()
		info, err := whois.Lookup(ctx, domain)
		if err != nil {
			logger.Warn("WHOIS lookup failed", "domain", domain, "error", err)
		} else {
			res.Whois = info
		}
	}

	client := newProviderClient(cfg)

	if key, err := cfg.Keys.RequireShodan(); err == nil {
		shodan := osint.NewShodan(client, key)

		type passiveDNS struct {
			Subdomains []string            `json:"subdomains"`
			Records    map[string][]string `json:"records"`
		}
		pd, cached, err := cachedLookup(ctx, db, cfg.CacheTTL, shodan.Name(), "domain:"+domain, logger,
			func() (passiveDNS, error) {
				subdomains, records, err := shodan.Domain(ctx, domain)
				return passiveDNS{Subdomains: subdomains, Records: records}, err
			})
		switch {
		case err == nil:
			logger.Debug("shodan domain lookup done", "domain", domain, "subdomains", len(pd.Subdomains), "cached", cached)
			sort.Strings(pd.Subdomains)
			res.Subdomains = pd.Subdomains
			res.DNS = mergePassiveDNS(res.DNS, pd.Records)
		case errors.Is(err, osint.ErrNotFound):
			logger.Debug("shodan has no DNS data", "domain", domain)
		default:
			return nil, fmt.Errorf("shodan domain lookup failed: %w", err)
		}
	}

	if key, err := cfg.Keys.RequireHunter(); err == nil {
		hunter := osint.NewHunter(client, key)

		emails, cached, err := cachedLookup(ctx, db, cfg.CacheTTL, hunter.Name(), "domain:"+domain, logger,
			func() (*model.DomainSearch, error) {
				return hunter.DomainSearch(ctx, domain, cfg.Limit)
			})
		switch {
		case err == nil:
			logger.Debug("hunter domain search done", "domain", domain, "cached", cached)
			res.Emails = emails
		case errors.Is(err, osint.ErrNotFound):
			logger.Debug("hunter has no data", "domain", domain)
		default:
			return nil, fmt.Errorf("hunter domain search failed: %w", err)
		}
	}

	return res, nil
}

// mergePassiveDNS fills record types the local resolver did not answer
// with Shodan's apex records. It stands in entirely when local DNS
// resolution is skipped; locally resolved types always win.
func mergePassiveDNS(local, passive map[string][]string) map[string][]string {
	for rtype, values := range passive {
		if _, ok := local[rtype]; ok {
			continue
		}
		if local == nil {
			local = make(map[string][]string)
		}
		sort.Strings(values)
		local[rtype] = values
	}
	return local
}

// printDomainResults renders domain profiles for the terminal.
func printDomainResults(cmd *cobra.Command, cfg *config.Config, results []domainResult) error {
	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)

	for _, res := range results {
		w.Infof("Domain %s", res.Domain)

		if len(res.DNS) > 0 {
			w.Infof("DNS")
			common := []string{"A", "MX", "NS", "TXT"}
			for _, rtype := range common {
				if values, ok := res.DNS[rtype]; ok {
					w.Field(rtype, strings.Join(values, ", "))
				}
			}
			var rest []string
			for rtype := range res.DNS {
				if !slices.Contains(common, rtype) {
					rest = append(rest, rtype)
				}
			}
			sort.Strings(rest)
			for _, rtype := range rest {
				w.Field(rtype, strings.Join(res.DNS[rtype], ", "))
			}
		}

		if wi := res.Whois; wi != nil {
			w.Infof("WHOIS")
			w.Field("Registrar", wi.Registrar)
			w.Field("Created", wi.CreationDate)
			w.Field("Expires", wi.ExpiryDate)
		}

		if len(res.Subdomains) > 0 {
			w.Successf("%d known subdomains", len(res.Subdomains))
			for _, sub := range res.Subdomains {
				w.Itemf("%s.%s", sub, res.Domain)
			}
		}

		if e := res.Emails; e != nil && len(e.Emails) > 0 {
			w.Successf("%d email addresses (%d known to Hunter)", len(e.Emails), e.TotalEmails)
			for _, hit := range e.Emails {
				if hit.Name != "" {
					w.Itemf("%s (%s)", hit.Email, hit.Name)
				} else {
					w.Itemf("%s", hit.Email)
				}
			}
			w.Field("Pattern", e.Pattern)
		}
	}

	return nil
}
