package detail

import (
	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
)

// Store names used in log lines.
const (
	AuditStoreName    = "audit"
	FeedbackStoreName = "feedback"
)

// CallStores is the pair of caches one call list owns, both keyed by call SID.
type CallStores struct {
	Audit    *Store[callsim.AuditRecord]
	Feedback *Store[string]
}

// NewCallStores creates fresh audit and feedback stores backed by api.
// Feedback can only be fetched once the call's audit record is cached and
// has a transcript.
func NewCallStores(api callsim.API) CallStores {
	audit := NewStore[callsim.AuditRecord](AuditStoreName, api.GetAudit)
	feedback := NewStore[string](FeedbackStoreName, api.GetFeedback,
		WithPrecondition[string](TranscriptRequired(audit)))
	return CallStores{Audit: audit, Feedback: feedback}
}

// TranscriptRequired returns a precondition satisfied only when audit holds
// a record for the key with at least one transcript entry.
func TranscriptRequired(audit *Store[callsim.AuditRecord]) func(key string) error {
	return func(key string) error {
		rec, ok := audit.Value(key)
		if !ok {
			return ErrAuditUnavailable
		}
		if !rec.HasTranscript() {
			return ErrTranscriptUnavailable
		}
		return nil
	}
}

// FeedbackAllowed reports whether feedback may be requested for sid.
func (c CallStores) FeedbackAllowed(sid string) bool {
	return c.Feedback.Allowed(sid) == nil
}
