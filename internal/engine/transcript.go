package engine

import (
	"slices"
	"time"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
)

// missingTimestamp is shown in place of an unset time.
const missingTimestamp = "—"

// timestampLayout is the display layout for call and transcript times.
const timestampLayout = "2006-01-02 15:04:05"

// SortedTranscript returns a copy of entries ordered by ascending turn.
// Entries sharing a turn keep their arrival order.
func SortedTranscript(entries []callsim.TranscriptEntry) []callsim.TranscriptEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b callsim.TranscriptEntry) int {
		return a.Turn - b.Turn
	})
	return sorted
}

// TranscriptSummary is the one-line description shown under "How it went".
func TranscriptSummary(rec callsim.AuditRecord) string {
	if !rec.HasTranscript() {
		return "No transcript was recorded for this call."
	}
	return printer().Sprintf("%d turns recorded. Open the transcript below to review them.", len(rec.Transcript))
}

// FormatTimestamp renders t in local time, or "—" when it is unset.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return missingTimestamp
	}
	return t.Local().Format(timestampLayout)
}
