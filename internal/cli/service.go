package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/tui"
)

func newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "service", Short: "Call Simulation Service diagnostics"}
	cmd.AddCommand(NewServiceStatusCmd())
	return cmd
}

// serviceStatus is the JSON form of service status.
type serviceStatus struct {
	URL        string `json:"url"`
	Name       string `json:"name,omitempty"`
	Version    string `json:"version,omitempty"`
	Healthy    bool   `json:"healthy"`
	Compatible bool   `json:"compatible"`
	Error      string `json:"error,omitempty"`
}

// NewServiceStatusCmd creates the service status command. It exits
// non-zero when the service is unreachable, unhealthy or too old.
func NewServiceStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the service is reachable, healthy and compatible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client := newServiceClient(cmd)
			status := serviceStatus{URL: client.BaseURL}

			var errs []error
			info, err := client.ServiceInfo(ctx)
			if err != nil {
				errs = append(errs, err)
			} else {
				status.Name, status.Version = info.Name, info.Version
				if err = callsim.CheckCompatibility(info); err != nil {
					errs = append(errs, err)
				} else {
					status.Compatible = true
				}
			}

			if err = client.Health(ctx); err != nil {
				errs = append(errs, err)
			} else {
				status.Healthy = true
			}

			result := errors.Join(errs...)
			if result != nil {
				status.Error = result.Error()
			}

			if jsonOutput() {
				if writeErr := writeJSON(cmd.OutOrStdout(), status); writeErr != nil {
					return writeErr
				}
				return result
			}

			cmd.Printf("%s %s\n", tui.LabelStyle.Render("Service:   "), status.URL)
			if status.Name != "" {
				cmd.Printf("%s %s %s\n", tui.LabelStyle.Render("Running:   "), status.Name, status.Version)
			}
			cmd.Printf("%s %s\n", tui.LabelStyle.Render("Healthy:   "), yesNo(status.Healthy))
			cmd.Printf("%s %s (needs >= %s)\n", tui.LabelStyle.Render("Compatible:"),
				yesNo(status.Compatible), callsim.MinServiceVersion)
			return result
		},
	}
}

func yesNo(ok bool) string {
	if ok {
		return tui.OKStyle.Render("yes")
	}
	return tui.CriticalStyle.Render("no")
}
