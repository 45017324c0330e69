package engine

import "github.com/charmbracelet/lipgloss"

// Risk thresholds on the 0-10 score scale used by person metrics.
const (
	// RiskLowMax is the highest score still considered low risk.
	RiskLowMax = 3

	// RiskMediumMax is the highest score still considered medium risk.
	RiskMediumMax = 6
)

// RiskBucket is a coarse classification of a risk score for colouring.
type RiskBucket int

// Risk buckets, ordered from least to most severe.
const (
	RiskLow RiskBucket = iota
	RiskMedium
	RiskHigh
)

// ClassifyRisk maps a score to a bucket:
//   - Low: <= 3
//   - Medium: 4-6
//   - High: >= 7
func ClassifyRisk(score int) RiskBucket {
	switch {
	case score <= RiskLowMax:
		return RiskLow
	case score <= RiskMediumMax:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// String returns the bucket name.
func (b RiskBucket) String() string {
	switch b {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Color returns the terminal colour for the bucket (green, amber, red).
func (b RiskBucket) Color() lipgloss.Color {
	switch b {
	case RiskLow:
		return lipgloss.Color("42")
	case RiskMedium:
		return lipgloss.Color("214")
	case RiskHigh:
		return lipgloss.Color("196")
	default:
		return lipgloss.Color("245")
	}
}
