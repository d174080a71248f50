package attendance

import (
	"fmt"
	"time"
)

// Status is the punctuality label the backend attaches to a punch.
type Status string

const (
	StatusOnTime Status = "ontime"
	StatusLate   Status = "late"
	StatusEarly  Status = "early"
)

// ParseStatus accepts the three punctuality labels; an empty string means any.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case "", StatusOnTime, StatusLate, StatusEarly:
		return st, nil
	}

	return "", fmt.Errorf("unknown status %q", s)
}

// Action labels a single punch in an action row.
type Action string

const (
	ActionCheckIn  Action = "Check In"
	ActionCheckOut Action = "Check Out"
)

// UnknownEmployee is shown when the backend document carries no name.
const UnknownEmployee = "Unknown Employee"

// Scope is the date range selector of the dashboard.
type Scope string

const (
	ScopeToday Scope = "today"
	ScopeAll   Scope = "all"
)

// ParseScope accepts "today" and "all"; an empty string means today.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeToday, "":
		return ScopeToday, nil
	case ScopeAll:
		return ScopeAll, nil
	}

	return "", fmt.Errorf("unknown scope %q", s)
}

// DateParam returns the value of the backend "date" query parameter.
// now is the caller's clock; its location decides what "today" means.
func (s Scope) DateParam(now time.Time) string {
	if s == ScopeAll {
		return "all"
	}

	return now.Format(time.DateOnly)
}

// Label is the scope part of export filenames.
func (s Scope) Label() string {
	if s == ScopeAll {
		return "all-time"
	}

	return "today"
}

// Punch is a check-in or check-out sub-record of a backend document.
type Punch struct {
	Timestamp string `json:"timestamp"`
	Status    Status `json:"status"`
}

// RawDoc is one attendance document per employee per day, as returned by
// GET /attendance.
type RawDoc struct {
	EmployeeID          string   `json:"employee_id"`
	Employees           string   `json:"employees,omitempty"`
	EmployeeName        string   `json:"employee_name,omitempty"`
	Department          string   `json:"department,omitempty"`
	Date                string   `json:"date"`
	DayOfWeek           string   `json:"day_of_week,omitempty"`
	CheckIn             *Punch   `json:"checkin,omitempty"`
	CheckOut            *Punch   `json:"checkout,omitempty"`
	WorkDurationMinutes *float64 `json:"work_duration_minutes,omitempty"`
	Confidence          *float64 `json:"confidence,omitempty"`
}

// Record is the normalized form of a RawDoc. Empty CheckIn or CheckOut
// means the punch is absent.
type Record struct {
	EmployeeID     string
	Name           string
	Department     string
	Date           string
	DayOfWeek      string
	CheckIn        string
	CheckInStatus  Status
	CheckOut       string
	CheckOutStatus Status
	WorkingHours   string
	Confidence     *float64
}

// HasSignal reports whether the record carries at least one punch.
// Records without signal are never displayed, exported or counted.
func (r Record) HasSignal() bool {
	return r.CheckIn != "" || r.CheckOut != ""
}
