package attendance

import (
	"github.com/MrJamesThe3rd/presence/internal/attendance"
	"github.com/MrJamesThe3rd/presence/internal/dashboard"
)

type rowResponse struct {
	EmployeeID string   `json:"employee_id"`
	Name       string   `json:"name"`
	Department string   `json:"department,omitempty"`
	Date       string   `json:"date"`
	DayOfWeek  string   `json:"day_of_week,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`

	Action    attendance.Action `json:"action,omitempty"`
	Status    attendance.Status `json:"status,omitempty"`
	Timestamp string            `json:"timestamp,omitempty"`

	CheckIn        string            `json:"check_in,omitempty"`
	CheckInStatus  attendance.Status `json:"check_in_status,omitempty"`
	CheckOut       string            `json:"check_out,omitempty"`
	CheckOutStatus attendance.Status `json:"check_out_status,omitempty"`
	WorkingHours   string            `json:"working_hours,omitempty"`
}

type viewResponse struct {
	Scope       attendance.Scope   `json:"scope"`
	Layout      string             `json:"layout"`
	Rows        []rowResponse      `json:"rows"`
	Summary     attendance.Summary `json:"summary"`
	Departments []string           `json:"departments"`
}

func toRowResponse(r attendance.Row) rowResponse {
	return rowResponse{
		EmployeeID:     r.EmployeeID,
		Name:           r.Name,
		Department:     r.Department,
		Date:           r.Date,
		DayOfWeek:      r.DayOfWeek,
		Confidence:     r.Confidence,
		Action:         r.Action,
		Status:         r.Status,
		Timestamp:      r.Timestamp,
		CheckIn:        r.CheckIn,
		CheckInStatus:  r.CheckInStatus,
		CheckOut:       r.CheckOut,
		CheckOutStatus: r.CheckOutStatus,
		WorkingHours:   r.WorkingHours,
	}
}

func toViewResponse(v *dashboard.View) viewResponse {
	rows := make([]rowResponse, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = toRowResponse(r)
	}

	departments := v.Departments
	if departments == nil {
		departments = []string{}
	}

	return viewResponse{
		Scope:       v.Query.Scope,
		Layout:      v.Layout.String(),
		Rows:        rows,
		Summary:     v.Summary,
		Departments: departments,
	}
}
