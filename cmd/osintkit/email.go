package main

import (
	"fmt"

	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/glitchsec/osintkit/internal/report"
	"github.com/spf13/cobra"
)

// NewEmailCmd creates the email command.
func NewEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email <domain>",
		Short: "Find email addresses for a domain via Hunter.io",
		Long: `Email lists the published email addresses Hunter.io knows for a domain,
along with the company's address pattern.

With --first and --last, it instead runs Hunter's email finder to
predict a specific person's address and report the confidence score.

Requires HUNTER_API_KEY.

Examples:
  # List known addresses for a domain
  osintkit email example.com

  # Predict one person's address
  osintkit email example.com --first Jane --last Smith`,
		Args: cobra.ExactArgs(1),
		RunE: runEmailCmd,
	}

	cmd.Flags().String("first", "", "First name for the email finder")
	cmd.Flags().String("last", "", "Last name for the email finder")

	return cmd
}

// runEmailCmd executes the email command.
func runEmailCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	first, err := cmd.Flags().GetString("first")
	if err != nil {
		return err
	}
	last, err := cmd.Flags().GetString("last")
	if err != nil {
		return err
	}
	if (first == "") != (last == "") {
		return fmt.Errorf("--first and --last must be given together")
	}

	domain := normalizeDomain(cfg.Targets[0])
	if domain == "" {
		return fmt.Errorf("invalid domain: %s", cfg.Targets[0])
	}

	key, err := cfg.Keys.RequireHunter()
	if err != nil {
		return err
	}

	db := openCache(cfg, logger)
	defer closeCache(db, logger)

	hunter := osint.NewHunter(newProviderClient(cfg), key)

	// Finder mode: predict one person's address.
	if first != "" {
		query := fmt.Sprintf("finder:%s:%s %s", domain, first, last)
		match, cached, err := cachedLookup(ctx, db, cfg.CacheTTL, hunter.Name(), query, logger,
			func() (*model.EmailMatch, error) {
				return hunter.EmailFinder(ctx, domain, first, last)
			})
		if err != nil {
			return fmt.Errorf("email finder failed: %w", err)
		}
		logger.Debug("email finder done", "domain", domain, "cached", cached)

		if cfg.JSONReport || cfg.MarkdownReport {
			return writeValue(cmd, cfg, match)
		}
		return printEmailMatch(cmd, cfg, first, last, match)
	}

	search, cached, err := cachedLookup(ctx, db, cfg.CacheTTL, hunter.Name(), "domain:"+domain, logger,
		func() (*model.DomainSearch, error) {
			return hunter.DomainSearch(ctx, domain, cfg.Limit)
		})
	if err != nil {
		return fmt.Errorf("domain search failed: %w", err)
	}
	logger.Debug("domain search done", "domain", domain, "cached", cached)

	if cfg.JSONReport || cfg.MarkdownReport {
		return writeValue(cmd, cfg, search)
	}
	return printDomainSearch(cmd, cfg, search)
}

// printEmailMatch renders an email finder result for the terminal.
func printEmailMatch(cmd *cobra.Command, cfg *config.Config, first, last string, match *model.EmailMatch) error {
	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)

	if match.Email == "" {
		w.Warnf("No address found for %s %s", first, last)
		return nil
	}

	w.Successf("Predicted address for %s %s", first, last)
	w.Field("Email", match.Email)
	w.Fieldf("Confidence", "%d%%", match.Score)
	w.Field("Position", match.Position)
	w.Fieldf("Sources", "%d", match.Sources)

	return nil
}

// printDomainSearch renders a Hunter domain search for the terminal.
func printDomainSearch(cmd *cobra.Command, cfg *config.Config, search *model.DomainSearch) error {
	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)

	if len(search.Emails) == 0 {
		w.Warnf("No addresses known for %s", search.Domain)
		return nil
	}

	w.Successf("%d addresses for %s (%d known in total)",
		len(search.Emails), search.Domain, search.TotalEmails)
	w.Field("Organization", search.Organization)
	w.Field("Pattern", search.Pattern)
	for _, hit := range search.Emails {
		w.Itemf("%s", hit.Email)
		w.Field("Name", hit.Name)
		w.Field("Position", hit.Position)
		if hit.Confidence > 0 {
			w.Fieldf("Confidence", "%d%%", hit.Confidence)
		}
	}

	return nil
}
