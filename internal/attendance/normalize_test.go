package attendance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
)

func TestNormalize(t *testing.T) {
	conf := 0.93
	minutes := 485.0

	type testCase struct {
		name   string
		docs   []attendance.RawDoc
		verify func(t *testing.T, got []attendance.Record)
	}

	tests := []testCase{
		{
			name: "Nil Input",
			docs: nil,
			verify: func(t *testing.T, got []attendance.Record) {
				assert.Empty(t, got)
			},
		},
		{
			name: "Full Document",
			docs: []attendance.RawDoc{{
				EmployeeID:          "E1",
				Employees:           "Ann",
				Department:          "Ops",
				Date:                "2024-01-01",
				DayOfWeek:           "Monday",
				CheckIn:             &attendance.Punch{Timestamp: "2024-01-01T09:05:00Z", Status: attendance.StatusLate},
				CheckOut:            &attendance.Punch{Timestamp: "2024-01-01T17:10:00Z", Status: attendance.StatusOnTime},
				WorkDurationMinutes: &minutes,
				Confidence:          &conf,
			}},
			verify: func(t *testing.T, got []attendance.Record) {
				require.Len(t, got, 1)

				r := got[0]
				assert.Equal(t, "E1", r.EmployeeID)
				assert.Equal(t, "Ann", r.Name)
				assert.Equal(t, "Ops", r.Department)
				assert.Equal(t, "2024-01-01", r.Date)
				assert.Equal(t, "Monday", r.DayOfWeek)
				assert.Equal(t, "2024-01-01T09:05:00Z", r.CheckIn)
				assert.Equal(t, attendance.StatusLate, r.CheckInStatus)
				assert.Equal(t, "2024-01-01T17:10:00Z", r.CheckOut)
				assert.Equal(t, attendance.StatusOnTime, r.CheckOutStatus)
				assert.Equal(t, "8h 5m", r.WorkingHours)
				require.NotNil(t, r.Confidence)
				assert.InDelta(t, 0.93, *r.Confidence, 1e-9)
			},
		},
		{
			name: "Name Fallbacks",
			docs: []attendance.RawDoc{
				{EmployeeID: "E1", EmployeeName: "Bob"},
				{EmployeeID: "E2"},
				{EmployeeID: "E3", Employees: "Cy", EmployeeName: "Ignored"},
				{EmployeeID: "E4", Employees: "Ann "},
				{EmployeeID: "E5", Employees: "  ", EmployeeName: "Ignored"},
			},
			verify: func(t *testing.T, got []attendance.Record) {
				require.Len(t, got, 5)
				assert.Equal(t, "Bob", got[0].Name)
				assert.Equal(t, attendance.UnknownEmployee, got[1].Name)
				assert.Equal(t, "Cy", got[2].Name)
				assert.Equal(t, "Ann ", got[3].Name, "names are kept as sent")
				assert.Equal(t, "  ", got[4].Name, "only an empty name falls back")
			},
		},
		{
			name: "Status Defaults Only For Present Punches",
			docs: []attendance.RawDoc{{
				EmployeeID: "E1",
				CheckIn:    &attendance.Punch{Timestamp: "2024-01-01T09:00:00Z"},
				CheckOut:   &attendance.Punch{},
			}},
			verify: func(t *testing.T, got []attendance.Record) {
				require.Len(t, got, 1)
				assert.Equal(t, attendance.StatusOnTime, got[0].CheckInStatus)
				assert.Empty(t, got[0].CheckOut)
				assert.Empty(t, got[0].CheckOutStatus)
				assert.Empty(t, got[0].WorkingHours)
			},
		},
		{
			name: "Keeps Order And Empty Documents",
			docs: []attendance.RawDoc{
				{EmployeeID: "A"},
				{EmployeeID: "B", CheckIn: &attendance.Punch{Timestamp: "2024-01-01T09:00:00Z"}},
				{EmployeeID: "C"},
			},
			verify: func(t *testing.T, got []attendance.Record) {
				require.Len(t, got, 3)
				assert.Equal(t, "A", got[0].EmployeeID)
				assert.Equal(t, "B", got[1].EmployeeID)
				assert.Equal(t, "C", got[2].EmployeeID)
				assert.False(t, got[0].HasSignal())
				assert.True(t, got[1].HasSignal())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := attendance.Normalize(tt.docs)
			assert.Len(t, got, len(tt.docs))
			tt.verify(t, got)
		})
	}
}

func TestScope(t *testing.T) {
	s, err := attendance.ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, attendance.ScopeToday, s)

	s, err = attendance.ParseScope("all")
	require.NoError(t, err)
	assert.Equal(t, attendance.ScopeAll, s)

	_, err = attendance.ParseScope("week")
	assert.Error(t, err)

	assert.Equal(t, "today", attendance.ScopeToday.Label())
	assert.Equal(t, "all-time", attendance.ScopeAll.Label())
}

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"", "ontime", "late", "early"} {
		s, err := attendance.ParseStatus(in)
		require.NoError(t, err)
		assert.Equal(t, attendance.Status(in), s)
	}

	_, err := attendance.ParseStatus("absent")
	assert.Error(t, err)
}
