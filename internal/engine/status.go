package engine

import (
	"strings"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
)

// Tone is the visual treatment of a call status badge.
type Tone int

// Status tones.
const (
	ToneNeutral Tone = iota
	ToneSuccess
	ToneInfo
	ToneWarning
	ToneDanger
)

// statusTones maps known statuses to tones. Unknown statuses are neutral.
//
//nolint:gochecknoglobals // Constant lookup table.
var statusTones = map[callsim.CallStatus]Tone{
	callsim.StatusCompleted:  ToneSuccess,
	callsim.StatusInProgress: ToneInfo,
	callsim.StatusInitiated:  ToneNeutral,
	callsim.StatusRinging:    ToneWarning,
	callsim.StatusFailed:     ToneDanger,
	callsim.StatusNoAnswer:   ToneNeutral,
	callsim.StatusBusy:       ToneWarning,
}

// HumanizeStatus replaces underscores with spaces ("no_answer" -> "no answer").
func HumanizeStatus(status callsim.CallStatus) string {
	return strings.ReplaceAll(string(status), "_", " ")
}

// StatusTone returns the tone for status, falling back to ToneNeutral.
func StatusTone(status callsim.CallStatus) Tone {
	if tone, ok := statusTones[status]; ok {
		return tone
	}
	return ToneNeutral
}
