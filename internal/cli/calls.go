package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/config"
)

// NewCallsCmd creates the calls command, which lists the calls placed to
// one phone number.
func NewCallsCmd() *cobra.Command {
	var (
		phone     string
		personID  string
		expandAll bool
	)

	cmd := &cobra.Command{
		Use:   "calls",
		Short: "Review the calls placed to one trainee",
		Long: `Lists the calls placed to a phone number, in the order the service
returns them.

--person looks the phone number up in the people roster of the config file.
The interactive list also lets you start a new call to the trainee with c.`,
		Example: `  scamflight calls --phone +15551230001
  scamflight calls --person alice --expand-all -o plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, title, err := resolveTarget(phone, personID)
			if err != nil {
				return err
			}
			return renderCallList(cmd.Context(), cmd.OutOrStdout(), newServiceClient(cmd), callListRequest{
				title:     title,
				phone:     target,
				expandAll: expandAll,
			})
		},
	}

	addTargetFlags(cmd, &phone, &personID)
	cmd.MarkFlagsOneRequired("phone", "person")
	cmd.Flags().BoolVar(&expandAll, "expand-all", false,
		"fetch and print the details of every call (non-interactive output)")

	return cmd
}

func addTargetFlags(cmd *cobra.Command, phone, personID *string) {
	cmd.Flags().StringVar(phone, "phone", "", "trainee phone number, e.g. +15551230001")
	cmd.Flags().StringVar(personID, "person", "", "trainee id from the people roster")
	cmd.MarkFlagsMutuallyExclusive("phone", "person")
}

// resolveTarget turns --phone or --person into a validated phone number and
// a screen title.
func resolveTarget(phone, personID string) (string, string, error) {
	if personID != "" {
		person, err := config.GetGlobalConfig().FindPerson(personID)
		if err != nil {
			return "", "", err
		}
		phone = person.Phone
		if err = callsim.ValidatePhoneNumber(phone); err != nil {
			return "", "", fmt.Errorf("person %s: %w", personID, err)
		}
		return phone, fmt.Sprintf("Calls to %s (%s)", person.Name, phone), nil
	}

	if err := callsim.ValidatePhoneNumber(phone); err != nil {
		return "", "", err
	}
	return phone, "Calls to " + phone, nil
}
