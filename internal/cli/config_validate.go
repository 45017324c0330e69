package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avenka29/Hackathon-NCSU/internal/config"
)

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Validates the configuration after the global file, project file, .env and
environment variables have been applied. This checks the service URL, timeout
and concurrency, logging and output settings, and every roster entry.`,
		Example: `  scamflight config validate
  scamflight config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cmd.Printf("Configuration is valid\n")

			if verbose {
				printVerboseDetails(cmd, cfg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Service: %s (timeout %s, %d concurrent)\n",
		cfg.Service.BaseURL, cfg.Service.Timeout, cfg.Service.MaxConcurrency)
	cmd.Printf("  Default scenario: %s\n", cfg.Service.DefaultScenario)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project config: %s\n", dir)
	}
	cmd.Printf("  People: %d\n", len(cfg.People))
}
