package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/engine"
	"github.com/avenka29/Hackathon-NCSU/internal/tui/detail"
)

// Column widths for the call list.
const (
	colWidthSID      = 18
	colWidthPhone    = 16
	colWidthScenario = 16
	colWidthStatus   = 12

	// detailIndent prefixes every line of an expanded row.
	detailIndent = "    "

	// wrapMargin keeps wrapped text clear of the terminal edge.
	wrapMargin = 8

	interactiveFeedbackHint = "[f] Get feedback"

	markerCollapsed = "▸"
	markerExpanded  = "▾"
)

func (m *CallListModel) renderListView() string {
	var b strings.Builder

	title := HeaderStyle.Render(m.title)
	count := SubtleStyle.Render(fmt.Sprintf("  %d calls", len(m.calls)))
	if m.refreshing {
		count += SubtleStyle.Render("  refreshing...")
	}
	b.WriteString(title + count + "\n")

	if m.notice != "" {
		if m.noticeIsError {
			b.WriteString(CriticalStyle.Render(m.notice))
		} else {
			b.WriteString(InfoStyle.Render(m.notice))
		}
		b.WriteString("\n")
	}

	if len(m.calls) == 0 {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("No calls yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(renderColumnHeader())
		b.WriteString("\n")
		b.WriteString(m.virtualList.View())
		b.WriteString("\n")
		if _, ok := m.disclosure.Expanded(); ok {
			m.syncDetail()
			b.WriteString(SubtleStyle.Render(strings.Repeat("─", max(m.width, 1))))
			b.WriteString("\n")
			b.WriteString(m.detailPane.View())
			b.WriteString("\n")
		}
	}

	if m.prompting {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("Scenario: "))
		b.WriteString(m.scenarioInput.View())
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("[Enter] Start call  [Esc] Cancel"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(m.helpText()))
	return b.String()
}

func (m *CallListModel) helpText() string {
	help := "[↑↓/jk] Navigate  [Enter] Expand  [f] Feedback"
	if _, ok := m.disclosure.Expanded(); ok {
		help += "  [^d/^u] Scroll"
	}
	if m.phone != "" {
		help += "  [c] New call"
	}
	return help + "  [r] Reload  [q] Quit"
}

func renderColumnHeader() string {
	header := fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s  %s",
		colWidthSID, "Call",
		colWidthPhone, "Phone",
		colWidthScenario, "Scenario",
		colWidthStatus, "Status",
		"Started",
	)
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true).
		Render(header)
}

// renderListError is the page-level banner shown when the list cannot load.
func renderListError(title string, err error) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(BannerStyle.Render(fmt.Sprintf("Could not load calls: %v", err)))
	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render("[r] Retry  [q] Quit"))
	return b.String()
}

func renderSummaryLine(row RowView) string {
	marker := markerCollapsed
	if row.Expanded {
		marker = markerExpanded
	}

	s := row.Summary
	status := fmt.Sprintf("%-*s", colWidthStatus, truncate(row.Status, colWidthStatus))
	line := fmt.Sprintf("%s %-*s  %-*s  %-*s  ",
		marker,
		colWidthSID, truncate(s.CallSID, colWidthSID),
		colWidthPhone, truncate(s.PhoneNumber, colWidthPhone),
		colWidthScenario, truncate(s.ScenarioID, colWidthScenario),
	)
	started := engine.FormatTimestamp(s.StartedAt.Time)

	if row.Selected {
		return SelectedStyle.Render(line + status + "  " + started)
	}
	return line + ToneStyle(row.Tone).Render(status) + "  " + SubtleStyle.Render(started)
}

// renderCallDetail renders the expanded block for one row. hint tells the
// reader how to request feedback.
func renderCallDetail(row RowView, spinnerFrame string, width int, hint string) string {
	switch row.AuditState {
	case detail.Loading:
		return detailIndent + spinnerFrame + " " + SubtleStyle.Render("Loading call details...")
	case detail.Absent:
		if row.AuditErr != nil {
			return detailIndent + CriticalStyle.Render("Could not load call details: "+errorText(row.AuditErr)) +
				"\n" + detailIndent + SubtleStyle.Render("Collapse and expand the row to try again.")
		}
		return detailIndent + SubtleStyle.Render("Call details not loaded.")
	case detail.Present:
	}

	var b strings.Builder
	renderOutcomeSection(&b, row)
	renderVulnerabilitySection(&b, row)
	renderTranscriptSection(&b, row, width)
	renderFeedbackSection(&b, row, spinnerFrame, width, hint)
	return strings.TrimRight(b.String(), "\n")
}

func renderOutcomeSection(b *strings.Builder, row RowView) {
	b.WriteString(detailIndent + HeaderStyle.Render("How it went") + "\n")

	line := detailIndent + LabelStyle.Render("Status: ") + ToneStyle(row.Tone).Render(row.Status)
	if row.Duration != "" {
		line += "   " + LabelStyle.Render("Duration: ") + ValueStyle.Render(row.Duration)
	}
	if !row.Summary.EndedAt.IsZero() {
		line += "   " + LabelStyle.Render("Ended: ") + ValueStyle.Render(engine.FormatTimestamp(row.Summary.EndedAt.Time))
	}
	b.WriteString(line + "\n")
	b.WriteString(detailIndent + SubtleStyle.Render(row.TranscriptSummary) + "\n")
}

func renderVulnerabilitySection(b *strings.Builder, row RowView) {
	if row.VulnerabilityCount == 0 {
		return
	}

	b.WriteString(detailIndent + WarningStyle.Render("Sensitive data shared") + " " +
		SubtleStyle.Render("("+row.VulnerabilityLabel+")") + "\n")
	for _, mv := range row.Matches {
		line := fmt.Sprintf("%s  • %s  %d%%  %s", detailIndent, mv.Type, mv.Percent, mv.Preview)
		if mv.Turn > 0 {
			line += SubtleStyle.Render(fmt.Sprintf("  (turn %d)", mv.Turn))
		}
		b.WriteString(line + "\n")
	}
}

func renderTranscriptSection(b *strings.Builder, row RowView, width int) {
	if !row.HasTranscript() {
		return
	}

	b.WriteString(detailIndent + HeaderStyle.Render("Transcript") + "\n")
	wrap := lipgloss.NewStyle().Width(max(width-wrapMargin, minHeight))
	for _, entry := range row.Transcript {
		speaker := speakerLabel(entry.Speaker)
		text := wrap.Render(fmt.Sprintf("[%d] %s: %s", entry.Turn, speaker, entry.Text))
		for _, l := range strings.Split(text, "\n") {
			b.WriteString(detailIndent + "  " + l + "\n")
		}
	}
}

func renderFeedbackSection(b *strings.Builder, row RowView, spinnerFrame string, width int, hint string) {
	b.WriteString(detailIndent + HeaderStyle.Render("Coaching feedback") + "\n")

	switch {
	case row.FeedbackState == detail.Present:
		wrap := lipgloss.NewStyle().Width(max(width-wrapMargin, minHeight))
		for _, l := range strings.Split(wrap.Render(row.Feedback), "\n") {
			b.WriteString(detailIndent + "  " + ValueStyle.Render(l) + "\n")
		}
	case row.FeedbackState == detail.Loading:
		b.WriteString(detailIndent + "  " + spinnerFrame + " " + SubtleStyle.Render("Generating feedback...") + "\n")
	case !row.HasTranscript():
		b.WriteString(detailIndent + "  " + SubtleStyle.Render("Feedback needs a transcript.") + "\n")
	default:
		if row.FeedbackErr != nil {
			b.WriteString(detailIndent + "  " + CriticalStyle.Render("Could not get feedback: "+errorText(row.FeedbackErr)) + "\n")
		}
		b.WriteString(detailIndent + "  " + InfoStyle.Render(hint) + "\n")
	}
}

func speakerLabel(s callsim.Speaker) string {
	switch s {
	case callsim.SpeakerScammer:
		return CriticalStyle.Render("Caller")
	case callsim.SpeakerUser:
		return OKStyle.Render("Trainee")
	default:
		return SubtleStyle.Render(string(s))
	}
}

// errorText prefers the service's message over the wrapped error chain.
func errorText(err error) string {
	if apiErr := asAPIError(err); apiErr != nil {
		return apiErr.Message
	}
	return err.Error()
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
