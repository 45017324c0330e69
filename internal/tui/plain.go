package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/engine"
	"github.com/avenka29/Hackathon-NCSU/internal/tui/detail"
)

// CallReport is the JSON form of one call row.
type CallReport struct {
	Call               callsim.CallSummary       `json:"call"`
	StatusLabel        string                    `json:"status_label"`
	Duration           string                    `json:"duration,omitempty"`
	VulnerabilityCount *int                      `json:"vulnerability_count,omitempty"`
	Matches            []engine.MatchView        `json:"matches,omitempty"`
	Transcript         []callsim.TranscriptEntry `json:"transcript,omitempty"`
	Feedback           string                    `json:"feedback,omitempty"`
	Error              string                    `json:"error,omitempty"`
}

// NewCallReport converts a row into its JSON form. Detail fields are only
// set when the audit record was loaded.
func NewCallReport(row RowView) CallReport {
	report := CallReport{
		Call:        row.Summary,
		StatusLabel: row.Status,
		Duration:    row.Duration,
		Matches:     row.Matches,
		Transcript:  row.Transcript,
		Feedback:    row.Feedback,
	}
	if row.AuditState == detail.Present {
		count := row.VulnerabilityCount
		report.VulnerabilityCount = &count
	}
	if row.AuditErr != nil {
		report.Error = errorText(row.AuditErr)
	}
	return report
}

// RenderCallsJSON writes rows as an indented JSON array.
func RenderCallsJSON(w io.Writer, rows []RowView) error {
	reports := make([]CallReport, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, NewCallReport(row))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encoding calls: %w", err)
	}
	return nil
}

// RenderCallsText writes rows as a non-interactive list. Expanded rows
// include their detail block.
func RenderCallsText(w io.Writer, title string, rows []RowView, width int) error {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %d calls", len(rows))))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(SubtleStyle.Render("No calls yet."))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(renderColumnHeader())
	b.WriteString("\n")
	for _, row := range rows {
		row.Selected = false
		b.WriteString(renderSummaryLine(row))
		b.WriteString("\n")
		if row.Expanded {
			hint := "Run: scamflight call feedback " + row.Summary.CallSID
			b.WriteString(renderCallDetail(row, "", width, hint))
			b.WriteString("\n\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderCallDetailText writes the full detail of a single call.
func RenderCallDetailText(w io.Writer, row RowView, width int) error {
	row.Expanded = true
	row.Selected = false
	hint := "Run: scamflight call feedback " + row.Summary.CallSID
	out := renderSummaryLine(row) + "\n" + renderCallDetail(row, "", width, hint) + "\n"
	_, err := io.WriteString(w, out)
	return err
}

func asAPIError(err error) *callsim.APIError {
	var apiErr *callsim.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
