package export

import (
	"github.com/MrJamesThe3rd/presence/internal/attendance"
)

type actionColumns struct {
	EmployeeID string `csv:"Employee ID"`
	Name       string `csv:"Name"`
	Department string `csv:"Department"`
	Date       string `csv:"Date"`
	Day        string `csv:"Day"`
	Action     string `csv:"Action"`
	Status     string `csv:"Status"`
	Time       string `csv:"Time"`
}

type checkInColumns struct {
	EmployeeID string `csv:"Employee ID"`
	Name       string `csv:"Name"`
	Department string `csv:"Department"`
	Date       string `csv:"Date"`
	Day        string `csv:"Day"`
	CheckIn    string `csv:"Check In"`
	Status     string `csv:"Status"`
}

type checkOutColumns struct {
	EmployeeID string `csv:"Employee ID"`
	Name       string `csv:"Name"`
	Department string `csv:"Department"`
	Date       string `csv:"Date"`
	Day        string `csv:"Day"`
	CheckOut   string `csv:"Check Out"`
	Status     string `csv:"Status"`
}

type pairedColumns struct {
	EmployeeID     string `csv:"Employee ID"`
	Name           string `csv:"Name"`
	Department     string `csv:"Department"`
	Date           string `csv:"Date"`
	Day            string `csv:"Day"`
	CheckIn        string `csv:"Check In"`
	CheckInStatus  string `csv:"Check In Status"`
	CheckOut       string `csv:"Check Out"`
	CheckOutStatus string `csv:"Check Out Status"`
	WorkingHours   string `csv:"Working Hours"`
}

// csvRows converts rows to the tagged struct slice of layout, ready for gocsv.
func csvRows(rows []attendance.Row, layout attendance.Layout) any {
	switch layout {
	case attendance.LayoutCheckIns:
		out := make([]checkInColumns, 0, len(rows))
		for _, r := range rows {
			out = append(out, checkInColumns{
				EmployeeID: r.EmployeeID,
				Name:       r.Name,
				Department: r.Department,
				Date:       r.Date,
				Day:        r.DayOfWeek,
				CheckIn:    r.Timestamp,
				Status:     string(r.Status),
			})
		}

		return out
	case attendance.LayoutCheckOuts:
		out := make([]checkOutColumns, 0, len(rows))
		for _, r := range rows {
			out = append(out, checkOutColumns{
				EmployeeID: r.EmployeeID,
				Name:       r.Name,
				Department: r.Department,
				Date:       r.Date,
				Day:        r.DayOfWeek,
				CheckOut:   r.Timestamp,
				Status:     string(r.Status),
			})
		}

		return out
	case attendance.LayoutPaired:
		out := make([]pairedColumns, 0, len(rows))
		for _, r := range rows {
			out = append(out, pairedColumns{
				EmployeeID:     r.EmployeeID,
				Name:           r.Name,
				Department:     r.Department,
				Date:           r.Date,
				Day:            r.DayOfWeek,
				CheckIn:        r.CheckIn,
				CheckInStatus:  string(r.CheckInStatus),
				CheckOut:       r.CheckOut,
				CheckOutStatus: string(r.CheckOutStatus),
				WorkingHours:   r.WorkingHours,
			})
		}

		return out
	}

	out := make([]actionColumns, 0, len(rows))
	for _, r := range rows {
		out = append(out, actionColumns{
			EmployeeID: r.EmployeeID,
			Name:       r.Name,
			Department: r.Department,
			Date:       r.Date,
			Day:        r.DayOfWeek,
			Action:     string(r.Action),
			Status:     string(r.Status),
			Time:       r.Timestamp,
		})
	}

	return out
}
