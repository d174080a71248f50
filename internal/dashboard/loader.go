package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
)

// State is the visible state of an attendance view.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateLoaded:
		return "loaded"
	}

	return "unknown"
}

//go:generate mockgen -source=loader.go -destination=fetcher_mock.go -package=dashboard
type Fetcher interface {
	FetchAttendance(ctx context.Context, scope attendance.Scope, now time.Time) ([]attendance.RawDoc, error)
}

// Snapshot is an immutable view of the loader at one point in time.
type Snapshot struct {
	State   State
	Scope   attendance.Scope
	Records []attendance.Record
	Err     error
	Token   uint64
}

// Rows reduces the snapshot records for the given filter and facets.
func (s Snapshot) Rows(filter attendance.Filter, facets attendance.Facets) []attendance.Row {
	return attendance.Reduce(filter.Apply(s.Records), facets)
}

// Loader owns the normalized record set of one dashboard view.
//
// Each Begin issues a new token and empties the set. Only the result of the
// most recently issued token is committed, so a slow earlier fetch can never
// overwrite a later one.
type Loader struct {
	fetcher Fetcher
	now     func() time.Time

	mu      sync.RWMutex
	token   uint64
	state   State
	scope   attendance.Scope
	records []attendance.Record
	err     error
}

// NewLoader creates a loader. now is the client clock used for ScopeToday;
// nil means time.Now.
func NewLoader(fetcher Fetcher, now func() time.Time) *Loader {
	if now == nil {
		now = time.Now
	}

	return &Loader{
		fetcher: fetcher,
		now:     now,
		scope:   attendance.ScopeToday,
	}
}

// Begin starts a new request for scope: the current set is discarded and
// the loader enters StateLoading. The returned token identifies the request.
func (l *Loader) Begin(scope attendance.Scope) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.token++
	l.state = StateLoading
	l.scope = scope
	l.records = nil
	l.err = nil

	return l.token
}

// Run fetches and normalizes the data of request token and commits it if
// token is still the latest. It reports whether the result was committed.
// A failed fetch leaves an empty set and StateError.
func (l *Loader) Run(ctx context.Context, token uint64, scope attendance.Scope) (bool, error) {
	docs, err := l.fetcher.FetchAttendance(ctx, scope, l.now())
	if err != nil {
		err = fmt.Errorf("fetching attendance: %w", err)
		return l.commit(token, nil, err), err
	}

	return l.commit(token, attendance.Normalize(docs), nil), nil
}

// Load is Begin followed by Run.
func (l *Loader) Load(ctx context.Context, scope attendance.Scope) (bool, error) {
	return l.Run(ctx, l.Begin(scope), scope)
}

func (l *Loader) commit(token uint64, records []attendance.Record, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if token != l.token {
		return false
	}

	if err != nil {
		l.state = StateError
		l.records = nil
		l.err = err

		return true
	}

	l.state = StateLoaded
	l.records = records
	l.err = nil

	return true
}

// Snapshot returns the current state. The records slice is a copy.
func (l *Loader) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]attendance.Record, len(l.records))
	copy(records, l.records)

	return Snapshot{
		State:   l.state,
		Scope:   l.scope,
		Records: records,
		Err:     l.err,
		Token:   l.token,
	}
}
