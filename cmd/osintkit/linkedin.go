package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/glitchsec/osintkit/internal/report"
	"github.com/spf13/cobra"
)

// NewLinkedInCmd creates the linkedin command group.
func NewLinkedInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkedin",
		Short: "LinkedIn profile and company lookups via RapidAPI",
		Long: `LinkedIn wraps the Fresh LinkedIn Profile Data API on RapidAPI.

All subcommands require RAPIDAPI_KEY.`,
	}

	cmd.AddCommand(newLinkedInFindCmd())
	cmd.AddCommand(newLinkedInProfileCmd())
	cmd.AddCommand(newLinkedInCompanyCmd())

	return cmd
}

// newLinkedInFindCmd creates the linkedin find subcommand.
func newLinkedInFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <name>",
		Short: "Find LinkedIn profile URLs for a person",
		Long: `Find searches for a person's LinkedIn profile URLs, ranked by
relevance. Adding --company narrows the search considerably for
common names.

Examples:
  osintkit linkedin find "Jane Smith" --company "Acme Corp"`,
		Args: cobra.ExactArgs(1),
		RunE: runLinkedInFindCmd,
	}

	cmd.Flags().String("company", "", "Employer name to narrow the search")

	return cmd
}

func runLinkedInFindCmd(cmd *cobra.Command, args []string) error {
	cfg, linkedin, logger, err := linkedInSetup(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	company, err := cmd.Flags().GetString("company")
	if err != nil {
		return err
	}

	name := cfg.Targets[0]
	profiles, err := linkedin.FindProfiles(ctx, name, company)
	if err != nil {
		return fmt.Errorf("profile search failed: %w", err)
	}

	if cfg.JSONReport || cfg.MarkdownReport {
		return writeValue(cmd, cfg, profiles)
	}

	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)
	if len(profiles.URLs) == 0 {
		w.Warnf("No profiles found for %s", name)
		return nil
	}
	w.Successf("%d profile URLs for %s", len(profiles.URLs), name)
	for _, u := range profiles.URLs {
		w.Itemf("%s", u)
	}
	return nil
}

// newLinkedInProfileCmd creates the linkedin profile subcommand.
func newLinkedInProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <linkedin-url>",
		Short: "Enrich a LinkedIn profile URL",
		Long: `Profile pulls the public details of a LinkedIn profile: headline,
location, current position, work history, education, and skills.

Examples:
  osintkit linkedin profile https://www.linkedin.com/in/janesmith`,
		Args: cobra.ExactArgs(1),
		RunE: runLinkedInProfileCmd,
	}
}

func runLinkedInProfileCmd(cmd *cobra.Command, args []string) error {
	cfg, linkedin, logger, err := linkedInSetup(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	profile, err := linkedin.EnrichProfile(ctx, cfg.Targets[0])
	if err != nil {
		return fmt.Errorf("profile enrichment failed: %w", err)
	}

	if cfg.JSONReport || cfg.MarkdownReport {
		return writeValue(cmd, cfg, profile)
	}

	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)
	printLinkedInProfile(w, profile)
	return nil
}

// printLinkedInProfile renders an enriched profile for the terminal.
func printLinkedInProfile(w *report.ConsoleWriter, p *model.LinkedInProfile) {
	w.Infof("LinkedIn profile: %s", p.Name)
	w.Field("Headline", p.Headline)
	w.Field("Location", p.Location)
	w.Field("Company", p.CurrentCompany)
	w.Field("Title", p.CurrentTitle)
	if p.Connections > 0 {
		w.Fieldf("Connections", "%d", p.Connections)
	}

	if len(p.Experience) > 0 {
		w.Infof("Experience")
		for _, e := range p.Experience {
			line := e.Title
			if e.Company != "" {
				line += " at " + e.Company
			}
			if e.Duration != "" {
				line += " (" + e.Duration + ")"
			}
			w.Itemf("%s", line)
		}
	}

	if len(p.Education) > 0 {
		w.Infof("Education")
		for _, e := range p.Education {
			line := e.School
			if e.Degree != "" {
				line += ", " + e.Degree
			}
			if e.Field != "" {
				line += " in " + e.Field
			}
			w.Itemf("%s", line)
		}
	}

	if len(p.Skills) > 0 {
		w.Field("Skills", strings.Join(p.Skills, ", "))
	}
}

// newLinkedInCompanyCmd creates the linkedin company subcommand.
func newLinkedInCompanyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "company <linkedin-url|domain>",
		Short: "Look up a company's LinkedIn page",
		Long: `Company pulls a company's public LinkedIn details. The argument may be
the company's LinkedIn URL or its website domain.

Examples:
  osintkit linkedin company https://www.linkedin.com/company/acme
  osintkit linkedin company acme.example`,
		Args: cobra.ExactArgs(1),
		RunE: runLinkedInCompanyCmd,
	}
}

func runLinkedInCompanyCmd(cmd *cobra.Command, args []string) error {
	cfg, linkedin, logger, err := linkedInSetup(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	target := cfg.Targets[0]

	var company *model.LinkedInCompany
	if strings.Contains(target, "linkedin.com/") {
		company, err = linkedin.CompanyByURL(ctx, target)
	} else {
		domain := normalizeDomain(target)
		if domain == "" {
			return fmt.Errorf("invalid company URL or domain: %s", target)
		}
		company, err = linkedin.CompanyByDomain(ctx, domain)
	}
	if err != nil {
		return fmt.Errorf("company lookup failed: %w", err)
	}

	if cfg.JSONReport || cfg.MarkdownReport {
		return writeValue(cmd, cfg, company)
	}

	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)
	w.Infof("LinkedIn company: %s", company.Name)
	w.Field("Website", company.Website)
	w.Field("Industry", company.Industry)
	w.Field("Headquarters", company.Headquarters)
	if company.EmployeeCount > 0 {
		w.Fieldf("Employees", "%d", company.EmployeeCount)
	} else {
		w.Field("Employees", company.EmployeeRange)
	}
	if company.Founded > 0 {
		w.Fieldf("Founded", "%d", company.Founded)
	}
	if len(company.Specialties) > 0 {
		w.Field("Specialties", strings.Join(company.Specialties, ", "))
	}
	w.Field("Page", company.URL)
	return nil
}

// linkedInSetup performs the shared setup for linkedin subcommands:
// config, logging, and the provider with its RapidAPI key.
func linkedInSetup(cmd *cobra.Command, args []string) (*config.Config, *osint.LinkedIn,
	*slog.Logger, error) {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := setupLogger(cfg)

	key, err := cfg.Keys.RequireRapidAPI()
	if err != nil {
		return nil, nil, nil, err
	}

	linkedin := osint.NewLinkedIn(newProviderClient(cfg), key)
	return cfg, linkedin, logger, nil
}
