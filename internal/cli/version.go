package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/avenka29/Hackathon-NCSU/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := map[string]string{
				"version":    cmd.Root().Version,
				"commit":     version.GetGitCommit(),
				"build_date": version.GetBuildDate(),
				"go":         runtime.Version(),
			}
			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			cmd.Printf("scamflight %s (commit %s, built %s, %s)\n",
				info["version"], info["commit"], info["build_date"], info["go"])
			return nil
		},
	}
}
