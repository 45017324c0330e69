// Package detail provides the lazy, keyed caches behind expandable call rows.
//
// A Store fetches the value for a key only when something asks for it and
// keeps it for the lifetime of the owning screen. Key features:
//   - Tri-state entries (absent, loading, present) with at most one fetch in
//     flight per key
//   - Ensure returns a Bubble Tea command, so fetches run off the update loop
//     and come back as LoadedMsg values applied by Resolve
//   - Load is the blocking equivalent for plain output; concurrent callers
//     share the in-flight fetch
//   - Failed fetches return the key to absent and never disturb other keys
//
// CallStores wires the audit and feedback stores for a call list. Feedback
// is only fetched for calls whose audit record has a transcript.
package detail
