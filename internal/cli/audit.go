package cli

import (
	"github.com/spf13/cobra"
)

// NewAuditCmd creates the audit command, which lists every call.
func NewAuditCmd() *cobra.Command {
	var expandAll bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Review every simulated call",
		Long: `Lists every call the Call Simulation Service has recorded, in the order
the service returns them.

On a terminal this opens an interactive list: Enter expands a call, f asks for
coaching feedback, r reloads and q quits. The expanded call's details open in a
pane below the list that ctrl+d and ctrl+u scroll. Details are fetched the
first time a call is expanded and reused afterwards.

When the output is piped, or with --output plain/json, the list is printed.
--expand-all then fetches every call's details and prints them too.`,
		Example: `  # Interactive review
  scamflight audit

  # Everything as JSON
  scamflight audit --expand-all --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderCallList(cmd.Context(), cmd.OutOrStdout(), newServiceClient(cmd), callListRequest{
				title:     "Call audit",
				expandAll: expandAll,
			})
		},
	}

	cmd.Flags().BoolVar(&expandAll, "expand-all", false,
		"fetch and print the details of every call (non-interactive output)")

	return cmd
}
