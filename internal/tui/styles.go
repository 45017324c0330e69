package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/avenka29/Hackathon-NCSU/internal/engine"
)

// Palette.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("240")
	ColorOK        = lipgloss.Color("42")
	ColorInfo      = lipgloss.Color("75")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorSpinner   = lipgloss.Color("205")
	ColorHighlight = lipgloss.Color("57")
	ColorSelected  = lipgloss.Color("229")
	ColorBorder    = lipgloss.Color("238")
)

// Shared styles.
//
//nolint:gochecknoglobals // Immutable lipgloss styles shared across views.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	OKStyle       = lipgloss.NewStyle().Foreground(ColorOK)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorInfo)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorSelected).Background(ColorHighlight)
	BoxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCritical).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorCritical).
			Padding(0, 1)
)

// ToneStyle returns the badge style for a status tone.
func ToneStyle(tone engine.Tone) lipgloss.Style {
	switch tone {
	case engine.ToneSuccess:
		return OKStyle
	case engine.ToneInfo:
		return InfoStyle
	case engine.ToneWarning:
		return WarningStyle
	case engine.ToneDanger:
		return CriticalStyle
	case engine.ToneNeutral:
		return SubtleStyle
	default:
		return SubtleStyle
	}
}

// RiskStyle colours text by risk bucket.
func RiskStyle(bucket engine.RiskBucket) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(bucket.Color())
}
