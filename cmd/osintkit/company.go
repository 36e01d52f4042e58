package main

import (
	"fmt"
	"log/slog"

	"github.com/glitchsec/osintkit/internal/brief"
	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/glitchsec/osintkit/internal/recon"
	"github.com/spf13/cobra"
)

// NewCompanyCmd creates the company command.
func NewCompanyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company <name> [name...]",
		Short: "Assemble an intelligence brief on a company",
		Long: `Company runs every applicable provider step for a company and assembles
the results into one brief: a Perplexity background summary, Apollo
firmographics, LinkedIn company data, Hunter.io email addresses, and
DNS and WHOIS records for the company's domain.

The --domain flag unlocks the domain-keyed steps (Apollo, Hunter,
DNS, WHOIS). Without it only the background and LinkedIn search run.

Steps whose provider key is missing are skipped, and a failing step
does not abort the rest; the brief records which sections are
incomplete. DNS and WHOIS need no key at all.

Examples:
  # Brief with domain-keyed lookups
  osintkit company "Acme Corp" --domain acme.example

  # JSON output to a file
  osintkit company "Acme Corp" --domain acme.example --json -o acme.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCompanyCmd,
	}

	cmd.Flags().String("domain", "", "Company domain for Apollo, Hunter, DNS, and WHOIS lookups")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent briefs when multiple names are given")

	return cmd
}

// runCompanyCmd executes the company command.
func runCompanyCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	domain, err := cmd.Flags().GetString("domain")
	if err != nil {
		return err
	}
	if domain != "" {
		domain = normalizeDomain(domain)
		if domain == "" {
			return fmt.Errorf("invalid domain")
		}
	}
	if batch, err := cmd.Flags().GetInt("batch"); err == nil && batch > 0 {
		cfg.BatchSize = batch
	}

	k := cfg.Keys
	if k.Perplexity == "" && k.Apollo == "" && k.RapidAPI == "" && k.Hunter == "" && domain == "" {
		return fmt.Errorf("no provider keys configured and no --domain for keyless recon; set at least one of %s, %s, %s, or %s",
			config.EnvPerplexityKey, config.EnvApolloKey, config.EnvRapidAPIKey, config.EnvHunterKey)
	}

	seed := func(b *model.Brief) {
		b.Domain = domain
	}

	factory := func() *brief.Pipeline {
		return buildCompanyPipeline(cfg, logger, domain != "", seed)
	}

	briefs, err := runBriefs(ctx, cfg, logger, factory, model.BriefCompany, cfg.Targets)
	if err != nil {
		return err
	}

	for _, b := range briefs {
		if err := writeBrief(cmd, cfg, b); err != nil {
			return err
		}
	}
	return nil
}

// buildCompanyPipeline assembles the company steps for which credentials
// exist. The domain-keyed steps are only added when a domain is known up
// front; they would otherwise fail for every subject.
func buildCompanyPipeline(cfg *config.Config, logger *slog.Logger, haveDomain bool,
	seed func(*model.Brief)) *brief.Pipeline {
	client := newProviderClient(cfg)

	p := brief.New(
		brief.WithLogger(logger),
		brief.WithContinueOnError(true),
	)

	if seed != nil {
		p.AddStep(seedStep{seed: seed})
	}
	if key, err := cfg.Keys.RequirePerplexity(); err == nil {
		p.AddStep(brief.NewBackgroundStep(osint.NewPerplexity(client, key)))
	}
	if key, err := cfg.Keys.RequireApollo(); err == nil && haveDomain {
		p.AddStep(brief.NewCompanyEnrichStep(osint.NewApollo(client, key)))
	}
	if key, err := cfg.Keys.RequireRapidAPI(); err == nil && haveDomain {
		p.AddStep(brief.NewLinkedInCompanyStep(osint.NewLinkedIn(client, key)))
	}
	if key, err := cfg.Keys.RequireHunter(); err == nil && haveDomain {
		p.AddStep(brief.NewDomainEmailsStep(osint.NewHunter(client, key), cfg.Limit))
	}
	if haveDomain {
		p.AddStep(brief.NewDNSStep(recon.NewResolver()))
		p.AddStep(brief.NewWhoisStep(recon.NewWhoisClient(
			recon.WithWhoisTimeout(cfg.Timeout),
		)))
	}

	return p
}
