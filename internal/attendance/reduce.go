package attendance

// Row is one rendered table line or exported CSV line.
//
// Action rows (LayoutActions, LayoutCheckIns, LayoutCheckOuts) use Action,
// Status and Timestamp. Paired rows use the CheckIn/CheckOut pair and
// WorkingHours.
type Row struct {
	Layout     Layout
	EmployeeID string
	Name       string
	Department string
	Date       string
	DayOfWeek  string
	Confidence *float64

	Action    Action
	Status    Status
	Timestamp string

	CheckIn        string
	CheckInStatus  Status
	CheckOut       string
	CheckOutStatus Status
	WorkingHours   string
}

// Reduce expands records into view rows for the given facets. Records
// without any punch are dropped first; the remaining order is preserved.
func Reduce(records []Record, facets Facets) []Row {
	layout := facets.Layout()
	rows := make([]Row, 0, len(records))

	for _, r := range records {
		if !r.HasSignal() {
			continue
		}

		switch layout {
		case LayoutActions:
			if r.CheckIn != "" {
				rows = append(rows, actionRow(r, LayoutActions, ActionCheckIn, r.CheckInStatus, r.CheckIn))
			}

			if r.CheckOut != "" {
				rows = append(rows, actionRow(r, LayoutActions, ActionCheckOut, r.CheckOutStatus, r.CheckOut))
			}
		case LayoutCheckIns:
			if r.CheckIn != "" {
				rows = append(rows, actionRow(r, LayoutCheckIns, ActionCheckIn, r.CheckInStatus, r.CheckIn))
			}
		case LayoutCheckOuts:
			if r.CheckOut != "" {
				rows = append(rows, actionRow(r, LayoutCheckOuts, ActionCheckOut, r.CheckOutStatus, r.CheckOut))
			}
		case LayoutPaired:
			rows = append(rows, pairedRow(r))
		}
	}

	return rows
}

func baseRow(r Record, layout Layout) Row {
	return Row{
		Layout:     layout,
		EmployeeID: r.EmployeeID,
		Name:       r.Name,
		Department: r.Department,
		Date:       r.Date,
		DayOfWeek:  r.DayOfWeek,
		Confidence: r.Confidence,
	}
}

func actionRow(r Record, layout Layout, action Action, status Status, ts string) Row {
	row := baseRow(r, layout)
	row.Action = action
	row.Status = orOnTime(status)
	row.Timestamp = ts

	return row
}

func pairedRow(r Record) Row {
	row := baseRow(r, LayoutPaired)
	row.CheckIn = r.CheckIn
	row.CheckOut = r.CheckOut

	if r.CheckIn != "" {
		row.CheckInStatus = orOnTime(r.CheckInStatus)
	}

	if r.CheckOut != "" {
		row.CheckOutStatus = orOnTime(r.CheckOutStatus)
	}

	row.WorkingHours = WorkingHours(r.CheckIn, r.CheckOut)

	return row
}

// orOnTime covers records built outside Normalize.
func orOnTime(s Status) Status {
	if s == "" {
		return StatusOnTime
	}

	return s
}
