package tui

import (
	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/engine"
	"github.com/avenka29/Hackathon-NCSU/internal/tui/detail"
)

// RowView is everything needed to draw one call row. It is rebuilt from the
// stores on every render and never cached.
type RowView struct {
	Summary  callsim.CallSummary
	Selected bool
	Expanded bool

	// Status is the humanised status and Tone its badge treatment.
	Status string
	Tone   engine.Tone

	AuditState detail.State
	AuditErr   error

	// Fields below are only set once the audit record is present.
	Duration           string
	TranscriptSummary  string
	VulnerabilityCount int
	VulnerabilityLabel string
	Matches            []engine.MatchView
	Transcript         []callsim.TranscriptEntry

	FeedbackState   detail.State
	Feedback        string
	FeedbackErr     error
	FeedbackEnabled bool
}

// HasTranscript reports whether the loaded audit record has transcript lines.
func (r RowView) HasTranscript() bool {
	return len(r.Transcript) > 0
}

// BuildRowView derives the row for summary from the current store contents.
func BuildRowView(summary callsim.CallSummary, stores detail.CallStores, selected, expanded bool) RowView {
	sid := summary.CallSID
	row := RowView{
		Summary:  summary,
		Selected: selected,
		Expanded: expanded,
		Status:   engine.HumanizeStatus(summary.Status),
		Tone:     engine.StatusTone(summary.Status),
	}

	audit := stores.Audit.Get(sid)
	row.AuditState = audit.State
	row.AuditErr = audit.Err

	if audit.State == detail.Present {
		rec := audit.Value
		row.Duration = engine.CallDuration(rec)
		row.TranscriptSummary = engine.TranscriptSummary(rec)
		row.VulnerabilityCount = engine.VulnerabilityCount(rec)
		row.VulnerabilityLabel = engine.VulnerabilityLabel(row.VulnerabilityCount)
		row.Matches = engine.MatchViews(rec)
		row.Transcript = engine.SortedTranscript(rec.Transcript)
	}

	feedback := stores.Feedback.Get(sid)
	row.FeedbackState = feedback.State
	row.FeedbackErr = feedback.Err
	if feedback.State == detail.Present {
		row.Feedback = feedback.Value
	}
	row.FeedbackEnabled = feedback.State == detail.Absent && stores.FeedbackAllowed(sid)

	return row
}
