package vacation

import "time"

// CalendarDay is one row of the occupancy report. Zero-occupancy days are
// emitted too: the report always covers the full window.
type CalendarDay struct {
	Day      time.Time `json:"dia"`
	Approved int       `json:"aprovadas"`
	Pending  int       `json:"pendentes"`
	Limit    int       `json:"limite"`
}

func buildCalendar(occ Occupancy, limit int, start, end time.Time) []CalendarDay {
	days, _ := DayCount(start, end)
	out := make([]CalendarDay, 0, days)
	for day := range Days(start, end) {
		out = append(out, CalendarDay{
			Day:      day,
			Approved: occ.Approved[day],
			Pending:  occ.Pending[day],
			Limit:    limit,
		})
	}
	return out
}
