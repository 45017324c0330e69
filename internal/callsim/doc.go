// Package callsim is the client for the Call Simulation Service.
//
// The service places simulated scam calls, records transcripts and
// sensitive-data detections, and generates coaching feedback. This package
// only consumes it:
//   - list call summaries, optionally filtered by phone number
//   - fetch the audit record and coaching feedback for one call
//   - initiate a call, list scenarios, and probe service health/version
//
// Non-success responses become *APIError values whose message is taken from
// the body's "detail" or "message" field, falling back to "request failed".
package callsim
