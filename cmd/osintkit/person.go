package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glitchsec/osintkit/internal/brief"
	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/spf13/cobra"
)

// NewPersonCmd creates the person command.
func NewPersonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person <name> [name...]",
		Short: "Assemble an intelligence brief on a person",
		Long: `Person runs every applicable provider step for a person and assembles
the results into one brief: a Perplexity background summary, Apollo
contact matching, LinkedIn profile discovery and enrichment, a
Hunter.io email prediction, and optionally Reddit activity.

Steps whose provider key is missing are skipped, and a failing step
does not abort the rest; the brief records which sections are
incomplete.

Multiple names are processed concurrently.

Examples:
  # Basic brief from whatever keys are configured
  osintkit person "Jane Smith"

  # Narrow the search with employer context
  osintkit person "Jane Smith" --company "Acme Corp" --domain acme.example

  # Include Reddit activity and write Markdown
  osintkit person "Jane Smith" --reddit janesmith42 --markdown -o brief.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPersonCmd,
	}

	cmd.Flags().String("company", "", "Employer name to narrow provider searches")
	cmd.Flags().String("domain", "", "Employer domain for email and DNS lookups")
	cmd.Flags().String("reddit", "", "Reddit username to include activity for")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent briefs when multiple names are given")

	return cmd
}

// runPersonCmd executes the person command.
func runPersonCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	company, err := cmd.Flags().GetString("company")
	if err != nil {
		return err
	}
	domain, err := cmd.Flags().GetString("domain")
	if err != nil {
		return err
	}
	redditUser, err := cmd.Flags().GetString("reddit")
	if err != nil {
		return err
	}
	if batch, err := cmd.Flags().GetInt("batch"); err == nil && batch > 0 {
		cfg.BatchSize = batch
	}

	k := cfg.Keys
	if k.Perplexity == "" && k.Apollo == "" && k.RapidAPI == "" && k.Hunter == "" && redditUser == "" {
		return fmt.Errorf("no provider keys configured; set at least one of %s, %s, %s, or %s",
			config.EnvPerplexityKey, config.EnvApolloKey, config.EnvRapidAPIKey, config.EnvHunterKey)
	}

	seed := func(b *model.Brief) {
		b.Company = company
		b.Domain = domain
	}

	factory := func() *brief.Pipeline {
		return buildPersonPipeline(cfg, logger, redditUser, seed)
	}

	briefs, err := runBriefs(ctx, cfg, logger, factory, model.BriefPerson, cfg.Targets)
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

// buildPersonPipeline assembles the person steps for which credentials
// exist. Step order matters: Apollo and LinkedIn can discover the
// employer domain, which the Hunter email step then keys on.
func buildPersonPipeline(cfg *config.Config, logger *slog.Logger, redditUser string,
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
	if key, err := cfg.Keys.RequireApollo(); err == nil {
		p.AddStep(brief.NewPersonMatchStep(osint.NewApollo(client, key)))
	}
	if key, err := cfg.Keys.RequireRapidAPI(); err == nil {
		p.AddStep(brief.NewLinkedInPersonStep(osint.NewLinkedIn(client, key)))
	}
	if key, err := cfg.Keys.RequireHunter(); err == nil {
		p.AddStep(brief.NewEmailStep(osint.NewHunter(client, key)))
	}
	if redditUser != "" {
		p.AddStep(brief.NewRedditStep(osint.NewReddit(client), redditUser))
	}

	return p
}

// runBriefs executes the pipeline for each subject, sequentially for a
// single subject and through the batch processor otherwise.
func runBriefs(ctx context.Context, cfg *config.Config, logger *slog.Logger,
	factory func() *brief.Pipeline, kind model.BriefKind, subjects []string) ([]*model.Brief, error) {
	if len(subjects) == 1 {
		b := model.NewBrief(kind, subjects[0])

		start := time.Now()
		if err := factory().Execute(ctx, b); err != nil {
			return nil, err
		}
		logger.Info("brief assembled",
			"subject", subjects[0],
			"steps", len(b.PerformedSteps),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
		return []*model.Brief{b}, nil
	}

	bp := brief.NewBatchProcessor(factory,
		brief.WithConcurrency(cfg.BatchSize),
		brief.WithBatchLogger(logger),
	)

	return bp.ProcessBatch(ctx, kind, subjects)
}

// seedStep primes a brief with user-supplied context (employer, domain)
// before the provider steps run.
type seedStep struct {
	seed func(*model.Brief)
}

func (s seedStep) Name() string { return "seed" }

func (s seedStep) Do(_ context.Context, b *model.Brief) error {
	s.seed(b)
	return nil
}
