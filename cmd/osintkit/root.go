// Package main provides the entry point for the osintkit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/glitchsec/osintkit/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for osintkit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "osintkit",
		Short: "OSINT reconnaissance toolkit for authorized assessments",
		Long: `osintkit gathers open-source intelligence for authorized security
assessments and red team engagements.

It hashes favicons for infrastructure pivoting across Shodan, Censys,
and FOFA, looks up hosts and domains in internet scan engines, and
assembles intelligence briefs on people and companies from public
APIs (Apollo, Hunter, LinkedIn, Perplexity, Reddit).

Provider API keys are read from the environment or from a keys.env
file (see 'osintkit init'). Results are cached locally so repeated
lookups do not burn API credits.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.PersistentFlags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.PersistentFlags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")
	cmd.PersistentFlags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each provider API request")
	cmd.PersistentFlags().IntP("limit", "l", config.DefaultLimit,
		"Maximum number of results from search endpoints")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .osintkit in current or home directory)")
	cmd.PersistentFlags().StringP("keys", "k", "",
		"Path to a keys.env secrets file with provider API keys")
	cmd.PersistentFlags().Bool("no-cache", false,
		"Bypass the local lookup cache for this invocation")

	// Add subcommands
	cmd.AddCommand(NewFaviconCmd())
	cmd.AddCommand(NewHostCmd())
	cmd.AddCommand(NewDomainCmd())
	cmd.AddCommand(NewEmailCmd())
	cmd.AddCommand(NewPersonCmd())
	cmd.AddCommand(NewCompanyCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewLinkedInCmd())
	cmd.AddCommand(NewSocialCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
