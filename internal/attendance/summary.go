package attendance

// Summary holds the headline counts of the dashboard.
type Summary struct {
	Present    int `json:"present"`
	OnTime     int `json:"on_time"`
	Late       int `json:"late"`
	CheckedOut int `json:"checked_out"`
	LeftEarly  int `json:"left_early"`
}

// Summarize counts records with at least one punch. Records without signal
// are skipped.
func Summarize(records []Record) Summary {
	var s Summary

	for _, r := range records {
		if !r.HasSignal() {
			continue
		}

		if r.CheckIn != "" {
			s.Present++

			switch r.CheckInStatus {
			case StatusLate:
				s.Late++
			default:
				s.OnTime++
			}
		}

		if r.CheckOut != "" {
			s.CheckedOut++

			if r.CheckOutStatus == StatusEarly {
				s.LeftEarly++
			}
		}
	}

	return s
}
