package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/osintkit.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = ".osintkit"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new osintkit configuration file",
		Long: `Initialize creates a new .osintkit configuration file in the current directory.

The generated file includes:
- Default settings for timeouts, result limits, and cache lifetime
- Commented documentation for every option
- The list of provider API key environment variables

Examples:
  # Create .osintkit in current directory
  osintkit init

  # Create config file at a specific path
  osintkit init -o myconfig.yaml

  # Force overwrite existing file
  osintkit init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
// The destination comes from the global --output flag, defaulting to
// .osintkit in the current directory.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = configFileName
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/osintkit.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure settings such as:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Request timeouts and result limits")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Cache lifetime for provider responses")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The path to your keys.env secrets file")

	return nil
}
