package attendance

import (
	"slices"
	"strings"
)

// Filter narrows a record set before reduction. Zero values match everything.
type Filter struct {
	Department string
	// Query matches the employee name or ID, case-insensitively.
	Query string
	// Status matches either punch status.
	Status Status
}

// IsZero reports whether the filter matches every record.
func (f Filter) IsZero() bool {
	return f.Department == "" && strings.TrimSpace(f.Query) == "" && f.Status == ""
}

// Apply returns the matching records in their original order. The input
// slice is never modified.
func (f Filter) Apply(records []Record) []Record {
	if f.IsZero() {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}

	return out
}

// Match reports whether a single record passes the filter.
func (f Filter) Match(r Record) bool {
	if f.Department != "" && !strings.EqualFold(r.Department, f.Department) {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(r.Name), q) && !strings.Contains(strings.ToLower(r.EmployeeID), q) {
			return false
		}
	}

	if f.Status != "" && r.CheckInStatus != f.Status && r.CheckOutStatus != f.Status {
		return false
	}

	return true
}

// Departments lists the distinct non-empty departments, sorted.
func Departments(records []Record) []string {
	seen := make(map[string]struct{})

	var out []string

	for _, r := range records {
		if r.Department == "" {
			continue
		}

		if _, ok := seen[r.Department]; ok {
			continue
		}

		seen[r.Department] = struct{}{}
		out = append(out, r.Department)
	}

	slices.Sort(out)

	return out
}
