package detail

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avenka29/Hackathon-NCSU/internal/logging"
)

// State is the load state of one key.
type State int

// Key states. A key only moves forward (Absent -> Loading -> Present) except
// for a failed fetch, which returns it to Absent.
const (
	Absent State = iota
	Loading
	Present
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Loading:
		return "loading"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// Fetcher retrieves the value for one key.
type Fetcher[T any] func(ctx context.Context, key string) (T, error)

// Entry is a point-in-time snapshot of one key.
type Entry[T any] struct {
	State State
	Value T

	// Err is the error of the most recent failed fetch, cleared on success.
	Err error
}

// LoadedMsg carries a finished fetch back into the Bubble Tea loop. Only the
// store that issued it will accept it in Resolve.
type LoadedMsg[T any] struct {
	Key   string
	Value T
	Err   error

	origin *Store[T]
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithPrecondition gates fetching. When check returns an error Ensure is a
// no-op and Load fails with ErrPreconditionFailed.
func WithPrecondition[T any](check func(key string) error) Option[T] {
	return func(s *Store[T]) {
		s.precondition = check
	}
}

type entry[T any] struct {
	state State
	value T
	err   error

	// done is closed when the in-flight fetch for this key completes.
	done chan struct{}
}

// Store is a keyed cache that fetches each key at most once at a time and
// keeps successful results for its whole lifetime.
type Store[T any] struct {
	name         string
	fetch        Fetcher[T]
	precondition func(key string) error

	mu      sync.Mutex
	entries map[string]*entry[T]
	fetches int
}

// NewStore creates an empty store. name tags log lines.
func NewStore[T any](name string, fetch Fetcher[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		name:    name,
		fetch:   fetch,
		entries: make(map[string]*entry[T]),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the store name.
func (s *Store[T]) Name() string {
	return s.name
}

// Get returns a snapshot of key. Unknown keys are Absent.
func (s *Store[T]) Get(key string) Entry[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return Entry[T]{State: Absent}
	}
	return Entry[T]{State: e.state, Value: e.value, Err: e.err}
}

// State returns the state of key.
func (s *Store[T]) State(key string) State {
	return s.Get(key).State
}

// Value returns the cached value for key and whether it is Present.
func (s *Store[T]) Value(key string) (T, bool) {
	e := s.Get(key)
	return e.Value, e.State == Present
}

// Err returns the error of the last failed fetch for key, if any.
func (s *Store[T]) Err(key string) error {
	return s.Get(key).Err
}

// Allowed reports whether the precondition currently permits fetching key.
func (s *Store[T]) Allowed(key string) error {
	if s.precondition == nil {
		return nil
	}
	return s.precondition(key)
}

// Ensure starts a fetch for key if it is Absent and allowed. The key is
// marked Loading before Ensure returns, so a second call issues nothing.
// The returned command yields a LoadedMsg[T]; nil means nothing to do.
func (s *Store[T]) Ensure(ctx context.Context, key string) tea.Cmd {
	if key == "" {
		return nil
	}

	s.mu.Lock()
	if err := s.Allowed(key); err != nil {
		s.mu.Unlock()
		logging.FromContext(ctx).Debug().
			Ctx(ctx).
			Str("store", s.name).
			Str("key", key).
			Err(err).
			Msg("fetch not allowed")
		return nil
	}
	if !s.beginLocked(key) {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	return func() tea.Msg {
		value, err := s.run(ctx, key)
		return LoadedMsg[T]{Key: key, Value: value, Err: err, origin: s}
	}
}

// Resolve applies a LoadedMsg issued by this store and reports whether msg
// was one. Failures return the key to Absent; they are never propagated.
func (s *Store[T]) Resolve(msg tea.Msg) bool {
	loaded, ok := msg.(LoadedMsg[T])
	if !ok || loaded.origin != s {
		return false
	}
	s.complete(loaded.Key, loaded.Value, loaded.Err)
	return true
}

// Load returns the value for key, fetching it if needed. Callers arriving
// while a fetch is in flight wait for that fetch instead of starting another.
func (s *Store[T]) Load(ctx context.Context, key string) (T, error) {
	var zero T
	if key == "" {
		return zero, ErrEmptyKey
	}

	s.mu.Lock()
	if err := s.Allowed(key); err != nil {
		s.mu.Unlock()
		return zero, fmt.Errorf("%w: %s %s: %w", ErrPreconditionFailed, s.name, key, err)
	}

	if s.beginLocked(key) {
		s.mu.Unlock()
		value, err := s.run(ctx, key)
		s.complete(key, value, err)
		if err != nil {
			return zero, err
		}
		return value, nil
	}

	e := s.entries[key]
	if e.state == Present {
		value := e.value
		s.mu.Unlock()
		return value, nil
	}
	done := e.done
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-done:
	}

	got := s.Get(key)
	if got.State != Present {
		if got.Err != nil {
			return zero, got.Err
		}
		return zero, fmt.Errorf("%w: %s %s", ErrNotLoaded, s.name, key)
	}
	return got.Value, nil
}

// Len returns the number of keys the store has seen.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Keys returns the known keys in sorted order.
func (s *Store[T]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FetchCount returns how many fetches the store has started.
func (s *Store[T]) FetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

// beginLocked moves an Absent key to Loading. It reports false when the key
// is already Loading or Present. s.mu must be held.
func (s *Store[T]) beginLocked(key string) bool {
	e, ok := s.entries[key]
	if !ok {
		e = &entry[T]{}
		s.entries[key] = e
	}
	if e.state != Absent {
		return false
	}

	e.state = Loading
	e.done = make(chan struct{})
	s.fetches++
	return true
}

// run performs the fetch and logs the outcome.
func (s *Store[T]) run(ctx context.Context, key string) (T, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	value, err := s.fetch(ctx, key)
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("store", s.name).
			Str("key", key).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("detail fetch failed")
		return value, err
	}

	log.Debug().
		Ctx(ctx).
		Str("store", s.name).
		Str("key", key).
		Dur("elapsed", time.Since(start)).
		Msg("detail fetched")
	return value, nil
}

// complete records the result of a fetch and releases waiters.
func (s *Store[T]) complete(key string, value T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.state != Loading {
		return
	}

	if err != nil {
		var zero T
		e.state = Absent
		e.value = zero
		e.err = err
	} else {
		e.state = Present
		e.value = value
		e.err = nil
	}

	if e.done != nil {
		close(e.done)
		e.done = nil
	}
}
