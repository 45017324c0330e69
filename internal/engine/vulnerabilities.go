package engine

import (
	"math"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
)

// DefaultPreviewRunes is how much of a disclosed value the list shows.
const DefaultPreviewRunes = 24

const ellipsis = "…"

// MatchView is one sensitive-data match flattened for display.
type MatchView struct {
	// Turn is the transcript turn the match came from, or 0 when unknown.
	Turn int `json:"turn,omitempty"`

	Type       string `json:"type"`
	Percent    int    `json:"confidence_percent"`
	Preview    string `json:"preview"`
	DetectedAt string `json:"detected_at,omitempty"`
}

// VulnerabilityCount is the number of sensitive-data events on the record.
func VulnerabilityCount(rec callsim.AuditRecord) int {
	return len(rec.Vulnerabilities)
}

// VulnerabilityLabel pluralises the event count.
func VulnerabilityLabel(count int) string {
	if count == 1 {
		return "1 sensitive data event"
	}
	return printer().Sprintf("%d sensitive data events", count)
}

// MatchConfidencePercent converts a [0,1] confidence into a rounded percentage
// clamped to [0,100].
func MatchConfidencePercent(m callsim.SensitiveMatch) int {
	c := m.Confidence
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	if c > 1 {
		return 100
	}
	return int(math.Round(c * 100))
}

// PreviewValue truncates v to at most limit runes, appending "…" when cut.
// A non-positive limit returns v unchanged.
func PreviewValue(v string, limit int) string {
	if limit <= 0 {
		return v
	}
	runes := []rune(v)
	if len(runes) <= limit {
		return v
	}
	return string(runes[:limit]) + ellipsis
}

// MatchViews flattens every match of every vulnerability event, in event order.
func MatchViews(rec callsim.AuditRecord) []MatchView {
	var views []MatchView
	for _, vuln := range rec.Vulnerabilities {
		turn := 0
		if vuln.Data.Turn != nil {
			turn = *vuln.Data.Turn
		}
		for _, m := range vuln.Data.Matches {
			views = append(views, MatchView{
				Turn:       turn,
				Type:       m.Type,
				Percent:    MatchConfidencePercent(m),
				Preview:    PreviewValue(m.Value, DefaultPreviewRunes),
				DetectedAt: vuln.Timestamp,
			})
		}
	}
	return views
}
