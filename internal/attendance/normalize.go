package attendance

import "math"

// Normalize maps backend documents to records. It never drops, merges or
// reorders documents; filtering happens later in Reduce.
//
// All display defaults live here:
//   - Name falls back to "employees", then "employee_name", then UnknownEmployee.
//   - A punch without status is StatusOnTime. Absent punches have no status.
//   - WorkingHours is rendered from work_duration_minutes when present.
func Normalize(docs []RawDoc) []Record {
	records := make([]Record, len(docs))
	for i, d := range docs {
		records[i] = normalizeDoc(d)
	}

	return records
}

func normalizeDoc(d RawDoc) Record {
	r := Record{
		EmployeeID: d.EmployeeID,
		Name:       displayName(d),
		Department: d.Department,
		Date:       d.Date,
		DayOfWeek:  d.DayOfWeek,
		Confidence: d.Confidence,
	}

	r.CheckIn, r.CheckInStatus = punch(d.CheckIn)
	r.CheckOut, r.CheckOutStatus = punch(d.CheckOut)

	if d.WorkDurationMinutes != nil {
		r.WorkingHours = formatMinutes(*d.WorkDurationMinutes)
	}

	return r
}

// displayName returns the first non-empty name exactly as the backend sent it.
func displayName(d RawDoc) string {
	if d.Employees != "" {
		return d.Employees
	}

	if d.EmployeeName != "" {
		return d.EmployeeName
	}

	return UnknownEmployee
}

func punch(p *Punch) (string, Status) {
	if p == nil || p.Timestamp == "" {
		return "", ""
	}

	if p.Status == "" {
		return p.Timestamp, StatusOnTime
	}

	return p.Timestamp, p.Status
}

func formatMinutes(minutes float64) string {
	total := int64(math.Floor(minutes))
	return formatHoursMinutes(total/60, total%60)
}
