package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/config"
	"github.com/avenka29/Hackathon-NCSU/internal/engine"
	"github.com/avenka29/Hackathon-NCSU/internal/tui"
	"github.com/avenka29/Hackathon-NCSU/internal/tui/detail"
)

// ErrCallNotFound is returned when the service does not know a call SID.
var ErrCallNotFound = errors.New("call not found")

// callError names missing calls plainly and wraps anything else with action.
func callError(action, sid string, err error) error {
	if callsim.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrCallNotFound, sid)
	}
	return fmt.Errorf("%s %s: %w", action, sid, err)
}

// newCallCmd creates the call command group for working with one call.
func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "call", Short: "Start, inspect and coach a single call"}
	cmd.AddCommand(
		NewCallStartCmd(), NewCallShowCmd(),
		NewCallFeedbackCmd(), NewCallStatusCmd(),
	)
	return cmd
}

// NewCallStartCmd creates the call start command.
func NewCallStartCmd() *cobra.Command {
	var (
		phone    string
		personID string
		scenario string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Place a simulated scam call to a trainee",
		Example: `  scamflight call start --phone +15551230001
  scamflight call start --person alice --scenario irs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, _, err := resolveTarget(phone, personID)
			if err != nil {
				return err
			}
			if scenario == "" {
				scenario = config.GetServiceConfig().DefaultScenario
			}

			resp, err := newServiceClient(cmd).InitiateCall(cmd.Context(), callsim.InitiateRequest{
				PhoneNumber: target,
				ScenarioID:  scenario,
			})
			if err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).Str("call_sid", resp.CallSID).Str("scenario", scenario).Msg("call initiated")

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			cmd.Printf("Call %s started (%s)\n", resp.CallSID, engine.HumanizeStatus(resp.Status))
			if resp.Message != "" {
				cmd.Println(resp.Message)
			}
			return nil
		},
	}

	addTargetFlags(cmd, &phone, &personID)
	cmd.MarkFlagsOneRequired("phone", "person")
	cmd.Flags().StringVar(&scenario, "scenario", "", "scenario id (default from config)")

	return cmd
}

// NewCallShowCmd creates the call show command.
func NewCallShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show SID",
		Short:   "Show how a call went, what was shared and the transcript",
		Example: `  scamflight call show CA1234`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sid := args[0]
			client := newServiceClient(cmd)
			stores := detail.NewCallStores(client)

			rec, err := stores.Audit.Load(ctx, sid)
			if err != nil {
				return callError("loading call", sid, err)
			}

			summary, err := client.GetCallStatus(ctx, sid)
			if err != nil {
				logger.Debug().Ctx(ctx).Err(err).Str("call_sid", sid).Msg("status unavailable, using audit session")
				summary = rec.Session
			}
			if summary.CallSID == "" {
				summary.CallSID = sid
			}

			row := tui.BuildRowView(summary, stores, false, true)
			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), tui.NewCallReport(row))
			}
			return tui.RenderCallDetailText(cmd.OutOrStdout(), row, tui.TerminalWidth())
		},
	}
}

// feedbackResult is the JSON form of call feedback.
type feedbackResult struct {
	CallSID  string `json:"call_sid"`
	Feedback string `json:"feedback"`
}

// NewCallFeedbackCmd creates the call feedback command.
func NewCallFeedbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feedback SID",
		Short: "Ask for coaching feedback on a call",
		Long: `Generates coaching feedback for the trainee from the call transcript.

The call's details are loaded first: feedback is only requested for calls with
a recorded transcript.`,
		Example: `  scamflight call feedback CA1234`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sid := args[0]
			stores := detail.NewCallStores(newServiceClient(cmd))

			if _, err := stores.Audit.Load(ctx, sid); err != nil {
				return callError("loading call", sid, err)
			}

			feedback, err := stores.Feedback.Load(ctx, sid)
			if errors.Is(err, detail.ErrTranscriptUnavailable) {
				return fmt.Errorf("call %s has no transcript, so no feedback can be generated", sid)
			}
			if err != nil {
				return callError("getting feedback for", sid, err)
			}

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), feedbackResult{CallSID: sid, Feedback: feedback})
			}
			cmd.Println(tui.HeaderStyle.Render("Coaching feedback for " + sid))
			cmd.Println(strings.TrimSpace(feedback))
			return nil
		},
	}
}

// NewCallStatusCmd creates the call status command.
func NewCallStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status SID",
		Short:   "Show the live status of a call",
		Example: `  scamflight call status CA1234`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := newServiceClient(cmd).GetCallStatus(cmd.Context(), args[0])
			if err != nil {
				return callError("getting status of", args[0], err)
			}

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), summary)
			}

			status := engine.HumanizeStatus(summary.Status)
			cmd.Printf("%s %s\n", tui.LabelStyle.Render("Call:    "), summary.CallSID)
			cmd.Printf("%s %s\n", tui.LabelStyle.Render("Status:  "), tui.ToneStyle(engine.StatusTone(summary.Status)).Render(status))
			cmd.Printf("%s %s\n", tui.LabelStyle.Render("Phone:   "), summary.PhoneNumber)
			cmd.Printf("%s %s\n", tui.LabelStyle.Render("Scenario:"), summary.ScenarioID)
			cmd.Printf("%s %s\n", tui.LabelStyle.Render("Started: "), engine.FormatTimestamp(summary.StartedAt.Time))
			if !summary.EndedAt.IsZero() {
				cmd.Printf("%s %s\n", tui.LabelStyle.Render("Ended:   "), engine.FormatTimestamp(summary.EndedAt.Time))
			}
			if summary.CurrentTurn != nil {
				cmd.Printf("%s %d\n", tui.LabelStyle.Render("Turn:    "), *summary.CurrentTurn)
			}
			return nil
		},
	}
}
