package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/config"
	"github.com/avenka29/Hackathon-NCSU/internal/tui"
	"github.com/avenka29/Hackathon-NCSU/internal/tui/detail"
)

// callListRequest describes one list screen: all calls, or the calls to a
// single phone number.
type callListRequest struct {
	title     string
	phone     string
	expandAll bool
}

// renderCallList routes a call list to the interactive TUI or to plain/JSON
// output depending on the output format and the terminal.
func renderCallList(ctx context.Context, w io.Writer, api callsim.API, req callListRequest) error {
	format := config.GetDefaultOutputFormat()

	if format == config.OutputTable && tui.DetectOutputMode(false, false, false) == tui.OutputModeInteractive {
		return runCallListTUI(ctx, newCallListModel(ctx, api, req))
	}

	calls, err := api.ListCalls(ctx, req.phone)
	if err != nil {
		return fmt.Errorf("loading calls: %w", err)
	}

	stores := detail.NewCallStores(api)
	if req.expandAll {
		loadAudits(ctx, stores, calls, config.GetServiceConfig().MaxConcurrency)
	}

	rows := make([]tui.RowView, 0, len(calls))
	for _, c := range calls {
		rows = append(rows, tui.BuildRowView(c, stores, false, req.expandAll))
	}

	if format == config.OutputJSON {
		return tui.RenderCallsJSON(w, rows)
	}
	return tui.RenderCallsText(w, req.title, rows, tui.TerminalWidth())
}

func newCallListModel(ctx context.Context, api callsim.API, req callListRequest) *tui.CallListModel {
	opts := []tui.CallListOption{
		tui.WithTitle(req.title),
		tui.WithDefaultScenario(config.GetServiceConfig().DefaultScenario),
	}
	if req.phone == "" {
		return tui.NewAuditModel(ctx, api, opts...)
	}
	return tui.NewPersonCallsModel(ctx, api, req.phone, opts...)
}

func runCallListTUI(ctx context.Context, model *tui.CallListModel) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	if err := model.Err(); err != nil {
		return fmt.Errorf("loading calls: %w", err)
	}
	return nil
}

// loadAudits fills the audit cache for every call with at most limit
// requests in flight. A failed call is left in the cache as an error for
// its own row and does not stop the others.
func loadAudits(ctx context.Context, stores detail.CallStores, calls []callsim.CallSummary, limit int) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for _, c := range calls {
		g.Go(func() error {
			if _, err := stores.Audit.Load(gCtx, c.CallSID); err != nil {
				logger.Debug().Ctx(gCtx).Str("call_sid", c.CallSID).Err(err).Msg("audit load failed")
			}
			return nil
		})
	}

	_ = g.Wait()
}
