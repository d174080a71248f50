package attendance

import (
	"fmt"
	"time"
)

// NoHours is the working-hours placeholder when a punch is missing.
const NoHours = "-"

// timestampLayouts are tried in order. Zone-less values are read in the local zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateTime,
}

// ParseTimestamp parses an ISO datetime as produced by the backend.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// WorkingHours formats the elapsed wall-clock time between two ISO
// datetimes as "{h}h {m}m". Hours are floored; minutes are the floored
// remainder, which keeps the sign of the difference. A checkout before the
// checkin therefore yields negative parts: -30m gives "-1h -30m", -90m
// gives "-2h -30m" and -90m30s gives "-2h -31m".
func WorkingHours(checkIn, checkOut string) string {
	if checkIn == "" || checkOut == "" {
		return NoHours
	}

	in, err := ParseTimestamp(checkIn)
	if err != nil {
		return NoHours
	}

	out, err := ParseTimestamp(checkOut)
	if err != nil {
		return NoHours
	}

	diff := out.Sub(in).Milliseconds()
	hourMs := time.Hour.Milliseconds()
	minuteMs := time.Minute.Milliseconds()

	hours := floorDiv(diff, hourMs)
	minutes := floorDiv(diff%hourMs, minuteMs)

	return formatHoursMinutes(hours, minutes)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

func formatHoursMinutes(h, m int64) string {
	return fmt.Sprintf("%dh %dm", h, m)
}
