package vacation

import (
	"errors"
	"iter"
	"time"
)

// Day truncates t to midnight UTC. All occupancy maps and period bounds are
// keyed on values produced by this function.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayCount returns the inclusive calendar-day count between start and end.
func DayCount(start, end time.Time) (int, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// Days yields every day from start to end inclusive, ascending. The sequence
// is a pure function of its bounds and can be ranged over multiple times.
func Days(start, end time.Time) iter.Seq[time.Time] {
	start, end = Day(start), Day(end)
	return func(yield func(time.Time) bool) {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
