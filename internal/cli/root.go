package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/config"
	"github.com/avenka29/Hackathon-NCSU/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	debug      bool
	serviceURL string
	projectDir string
	output     string
}

// NewRootCmd creates the root Cobra command for the scamflight CLI. It
// loads configuration, wires logging and tracing, and registers the
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "scamflight",
		Short: "Review simulated scam calls and coach trainees",
		Long: `scamflight is the review console for phishing-awareness call simulations.

It lists the calls placed by the Call Simulation Service, expands any call to
show how it went, what sensitive data was shared and the full transcript, and
requests coaching feedback for the trainee.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, flags); err != nil {
				return err
			}
			result := setupLogging(cmd, flags.debug)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&flags.serviceURL, "service-url", "",
		"Call Simulation Service URL (overrides config and "+config.EnvServiceURL+")")
	cmd.PersistentFlags().StringVar(&flags.projectDir, "project-dir", "",
		"project directory holding .scamflight/config.yaml")
	cmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "",
		"output format: table, plain or json (default from config)")

	cmd.AddCommand(
		NewAuditCmd(),
		NewCallsCmd(),
		newCallCmd(),
		newScenariosCmd(),
		newServiceCmd(),
		newConfigCmd(),
		NewVersionCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Review every call interactively
  scamflight audit

  # Print every call with its details as JSON
  scamflight audit --expand-all -o json

  # Review the calls placed to one trainee
  scamflight calls --person alice

  # Start a new simulated call
  scamflight call start --phone +15551230001 --scenario irs

  # Get coaching feedback for a call
  scamflight call feedback CA1234

  # Point at a remote service
  scamflight --service-url https://calls.example.com audit`

// loadConfig resolves the project directory, loads the merged config and
// applies flag overrides to the global instance.
func loadConfig(cmd *cobra.Command, flags *rootFlags) error {
	ctx := cmd.Context()

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	projectDir := config.ResolveProjectDir(ctx, flags.projectDir, wd)
	config.SetResolvedProjectDir(projectDir)

	cfg := config.NewWithProjectDir(ctx, projectDir)
	if flags.serviceURL != "" {
		cfg.Service.BaseURL = strings.TrimRight(flags.serviceURL, "/")
	}
	if flags.output != "" {
		format := strings.ToLower(flags.output)
		if !config.ValidOutputFormat(format) {
			return fmt.Errorf("unsupported output format: %s", flags.output)
		}
		cfg.Output.DefaultFormat = format
	}

	config.SetGlobalConfig(cfg)
	return nil
}

// newServiceClient builds a client for the configured service.
func newServiceClient(cmd *cobra.Command) *callsim.Client {
	svc := config.GetServiceConfig()
	client := callsim.NewClient(svc.BaseURL, svc.Timeout)
	client.UserAgent = "scamflight/" + cmd.Root().Version
	return client
}
