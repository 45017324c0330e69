package callsim

import (
	"encoding/json"
)

// CallStatus is the lifecycle status reported by the Call Simulation Service.
// Values the client does not know about are kept verbatim.
type CallStatus string

// Known call statuses.
const (
	StatusInitiated  CallStatus = "initiated"
	StatusRinging    CallStatus = "ringing"
	StatusInProgress CallStatus = "in_progress"
	StatusCompleted  CallStatus = "completed"
	StatusFailed     CallStatus = "failed"
	StatusNoAnswer   CallStatus = "no_answer"
	StatusBusy       CallStatus = "busy"
)

// IsKnown reports whether s is one of the statuses the service documents.
func (s CallStatus) IsKnown() bool {
	switch s {
	case StatusInitiated, StatusRinging, StatusInProgress, StatusCompleted,
		StatusFailed, StatusNoAnswer, StatusBusy:
		return true
	default:
		return false
	}
}

// Speaker identifies who said a transcript line.
type Speaker string

// Known speakers.
const (
	SpeakerScammer Speaker = "scammer"
	SpeakerUser    Speaker = "user"
)

// EventCallEnded is the event whose data carries the call duration.
const EventCallEnded = "call_ended"

// CallSummary is one row of the call list. It is immutable once received.
type CallSummary struct {
	CallSID     string     `json:"call_sid"`
	PhoneNumber string     `json:"phone_number"`
	ScenarioID  string     `json:"scenario_id"`
	Status      CallStatus `json:"status"`
	StartedAt   Timestamp  `json:"started_at"`
	EndedAt     Timestamp  `json:"ended_at"`
	CurrentTurn *int       `json:"current_turn,omitempty"`
}

// UnmarshalJSON accepts current_turn as a number or a numeric string, which
// is how hash-backed session stores tend to return it.
func (c *CallSummary) UnmarshalJSON(data []byte) error {
	type Alias CallSummary
	aux := &struct {
		*Alias

		CurrentTurn json.RawMessage `json:"current_turn,omitempty"`
	}{
		Alias: (*Alias)(c),
	}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	c.CurrentTurn = nil
	if turn, ok := parseLooseInt(aux.CurrentTurn); ok {
		c.CurrentTurn = &turn
	}
	return nil
}

// TranscriptEntry is a single spoken turn. Entries may arrive unsorted.
type TranscriptEntry struct {
	Turn      int       `json:"turn"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp Timestamp `json:"timestamp"`
}

// Event is a raw call event. Data is loosely typed and interpreted by the
// engine package on demand.
type Event struct {
	EventType string         `json:"event_type"`
	Timestamp string         `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// SensitiveMatch is one detected piece of sensitive information.
type SensitiveMatch struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Position   *int    `json:"position,omitempty"`
}

// VulnerabilityData is the payload of a sensitive_data_detected event.
type VulnerabilityData struct {
	Turn    *int             `json:"turn,omitempty"`
	Matches []SensitiveMatch `json:"matches,omitempty"`
}

// VulnerabilityEvent records sensitive information disclosed during a call.
type VulnerabilityEvent struct {
	EventType string            `json:"event_type"`
	Timestamp string            `json:"timestamp"`
	Data      VulnerabilityData `json:"data"`
}

// AuditRecord is the full recorded detail for one call.
type AuditRecord struct {
	CallSID         string               `json:"call_sid"`
	Session         CallSummary          `json:"session"`
	Transcript      []TranscriptEntry    `json:"transcript"`
	Events          []Event              `json:"events"`
	Vulnerabilities []VulnerabilityEvent `json:"vulnerabilities"`
}

// HasTranscript reports whether the record carries any transcript lines.
func (r AuditRecord) HasTranscript() bool {
	return len(r.Transcript) > 0
}

// ScenarioLine is one scripted line of a training scenario.
type ScenarioLine struct {
	Turn     int     `json:"turn"`
	Speaker  Speaker `json:"speaker"`
	Text     string  `json:"text"`
	AudioURL *string `json:"audio_url,omitempty"`
}

// Scenario is a scripted scam conversation the service can play.
type Scenario struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Difficulty  string         `json:"difficulty"`
	Lines       []ScenarioLine `json:"lines"`
}

// InitiateRequest asks the service to place a simulated call.
type InitiateRequest struct {
	PhoneNumber string `json:"phone_number"`
	ScenarioID  string `json:"scenario_id"`
}

// InitiateResponse is returned when a call was accepted.
type InitiateResponse struct {
	CallSID string     `json:"call_sid"`
	Status  CallStatus `json:"status"`
	Message string     `json:"message"`
}

// ServiceInfo is served at the service root.
type ServiceInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type listCallsResponse struct {
	Calls []CallSummary `json:"calls"`
}

type feedbackResponse struct {
	CallSID  string `json:"call_sid"`
	Feedback string `json:"feedback"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// errorBody is the structured error payload. FastAPI-style services use
// "detail"; others use "message".
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}
