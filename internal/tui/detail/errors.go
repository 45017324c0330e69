package detail

import "errors"

// Store errors.
var (
	ErrEmptyKey           = errors.New("key cannot be empty")
	ErrPreconditionFailed = errors.New("fetch precondition not met")
	ErrNotLoaded          = errors.New("value not loaded")

	// ErrAuditUnavailable is returned while a call's audit record is not yet cached.
	ErrAuditUnavailable = errors.New("audit record not loaded")

	// ErrTranscriptUnavailable is returned when feedback is requested for a
	// call whose transcript is empty.
	ErrTranscriptUnavailable = errors.New("call has no transcript")
)
