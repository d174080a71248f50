package dashboard

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
)

// Query selects what a dashboard view shows.
type Query struct {
	Scope  attendance.Scope
	Facets attendance.Facets
	Filter attendance.Filter
}

// View is a fully reduced dashboard page.
type View struct {
	Query       Query
	Layout      attendance.Layout
	Rows        []attendance.Row
	Summary     attendance.Summary
	Departments []string
}

// View applies q to the snapshot. The summary counts the filtered records;
// departments are listed from the whole set.
func (s Snapshot) View(q Query) *View {
	filtered := q.Filter.Apply(s.Records)

	return &View{
		Query:       q,
		Layout:      q.Facets.Layout(),
		Rows:        attendance.Reduce(filtered, q.Facets),
		Summary:     attendance.Summarize(filtered),
		Departments: attendance.Departments(s.Records),
	}
}

// Fetch loads q.Scope once and returns the resulting view. It is the
// one-shot form of a Loader used by request handlers and the CLI.
func Fetch(ctx context.Context, f Fetcher, now func() time.Time, q Query) (*View, error) {
	l := NewLoader(f, now)

	if _, err := l.Load(ctx, q.Scope); err != nil {
		return nil, err
	}

	return l.Snapshot().View(q), nil
}
