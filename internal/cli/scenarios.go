package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avenka29/Hackathon-NCSU/internal/tui"
)

const scenarioDescriptionWidth = 60

func newScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "scenarios", Short: "Training scenarios the service can play"}
	cmd.AddCommand(NewScenariosListCmd())
	return cmd
}

// NewScenariosListCmd creates the scenarios list command.
func NewScenariosListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available scam scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scenarios, err := newServiceClient(cmd).ListScenarios(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), scenarios)
			}
			if len(scenarios) == 0 {
				cmd.Println("No scenarios available.")
				return nil
			}

			cmd.Println(tui.HeaderStyle.Render(fmt.Sprintf("%-20s %-28s %-10s %s", "ID", "Name", "Difficulty", "Description")))
			for _, s := range scenarios {
				desc := strings.TrimSpace(s.Description)
				if r := []rune(desc); len(r) > scenarioDescriptionWidth {
					desc = string(r[:scenarioDescriptionWidth-1]) + "…"
				}
				cmd.Printf("%-20s %-28s %-10s %s\n", s.ID, s.Name, s.Difficulty, desc)
			}
			return nil
		},
	}
}
