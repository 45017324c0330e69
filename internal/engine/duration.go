package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
)

const (
	// durationField is the key of the call length inside a call_ended event.
	durationField = "duration"

	secondsPerMinute = 60
)

// CallDurationSeconds extracts the call length from the first call_ended
// event. It reports false when the event or its duration is missing or the
// duration is not a finite, non-negative number.
func CallDurationSeconds(rec callsim.AuditRecord) (float64, bool) {
	for _, ev := range rec.Events {
		if ev.EventType != callsim.EventCallEnded {
			continue
		}
		raw, ok := ev.Data[durationField]
		if !ok {
			return 0, false
		}
		return parseSeconds(raw)
	}
	return 0, false
}

// parseSeconds accepts JSON numbers (float64 or json.Number) and numeric
// strings. Booleans, null, objects and blank strings are malformed.
func parseSeconds(raw any) (float64, bool) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}

	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return n, true
}

// FormatDuration renders seconds as "45s" below one minute and "2m 5s" above.
func FormatDuration(seconds float64) string {
	if seconds < secondsPerMinute {
		return formatNumber(seconds) + "s"
	}
	minutes := math.Floor(seconds / secondsPerMinute)
	rest := math.Mod(seconds, secondsPerMinute)
	return formatNumber(minutes) + "m " + formatNumber(rest) + "s"
}

// CallDuration returns the formatted call length, or "" when unknown.
func CallDuration(rec callsim.AuditRecord) string {
	seconds, ok := CallDurationSeconds(rec)
	if !ok {
		return ""
	}
	return FormatDuration(seconds)
}

// formatNumber prints integers without a decimal point and other values
// with the shortest exact representation.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
