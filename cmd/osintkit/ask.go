package main

import (
	"fmt"
	"strings"

	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/glitchsec/osintkit/internal/report"
	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask Perplexity a research question with citations",
		Long: `Ask sends a question to Perplexity's online model and prints the
answer along with the citation URLs it was grounded on.

Requires PERPLEXITY_API_KEY. Answers are not cached; each invocation
is a fresh query.

Examples:
  osintkit ask "Who is the CEO of Acme Corp?"

  # Constrain the answer style
  osintkit ask --system "Answer in one sentence." "What does Acme Corp sell?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAskCmd,
	}

	cmd.Flags().String("system", "", "System prompt to steer the answer")

	return cmd
}

// runAskCmd executes the ask command.
func runAskCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	system, err := cmd.Flags().GetString("system")
	if err != nil {
		return err
	}

	key, err := cfg.Keys.RequirePerplexity()
	if err != nil {
		return err
	}

	question := strings.Join(cfg.Targets, " ")
	perplexity := osint.NewPerplexity(newProviderClient(cfg), key)

	var answer *model.Answer
	if system != "" {
		answer, err = perplexity.AskWithSystem(ctx, system, question)
	} else {
		answer, err = perplexity.Ask(ctx, question)
	}
	if err != nil {
		return err
	}

	logger.Debug("answer received",
		"citations", len(answer.Citations),
		"cost", answer.Cost,
	)

	if cfg.JSONReport || cfg.MarkdownReport {
		return writeValue(cmd, cfg, answer)
	}
	return printAnswer(cmd, cfg, answer)
}

// printAnswer renders a Perplexity answer for the terminal.
func printAnswer(cmd *cobra.Command, cfg *config.Config, answer *model.Answer) error {
	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)

	fmt.Fprintln(output, answer.Content)
	if len(answer.Citations) > 0 {
		w.Infof("Citations")
		for _, c := range answer.Citations {
			w.Itemf("%s", c)
		}
	}

	return nil
}
