package vacation

import (
	"slices"
	"time"
)

// Occupancy holds per-day counts of vacation periods split by request status.
type Occupancy struct {
	Approved map[time.Time]int
	Pending  map[time.Time]int
}

// BuildOccupancy materializes per-day counts from a window scan. Each period
// contributes one count per day it covers; denied and cancelled requests must
// not be present in the input (the store filters them out) and are ignored
// here regardless.
func BuildOccupancy(periods []StatusPeriod) Occupancy {
	occ := Occupancy{
		Approved: make(map[time.Time]int),
		Pending:  make(map[time.Time]int),
	}
	for _, p := range periods {
		for day := range Days(p.Start, p.End) {
			switch p.Status {
			case StatusApproved:
				occ.Approved[day]++
			case StatusPending:
				occ.Pending[day]++
			}
		}
	}
	return occ
}

// Classify evaluates the candidate periods against the sector limit.
// A day is a conflict when approved occupancy already reached the limit; a
// day is a warning when any pending request covers it. Warnings never block:
// contention between pending requests is resolved at approval time, first
// approved wins. Both slices come back sorted ascending.
func (o Occupancy) Classify(limit int, candidate []Period) (conflicts, warnings []time.Time) {
	conflictSet := make(map[time.Time]struct{})
	warningSet := make(map[time.Time]struct{})

	for _, p := range candidate {
		for day := range Days(p.Start, p.End) {
			if o.Approved[day] >= limit {
				conflictSet[day] = struct{}{}
			}
			if o.Pending[day] > 0 {
				warningSet[day] = struct{}{}
			}
		}
	}

	return sortedDays(conflictSet), sortedDays(warningSet)
}

func sortedDays(set map[time.Time]struct{}) []time.Time {
	if len(set) == 0 {
		return nil
	}
	days := make([]time.Time, 0, len(set))
	for day := range set {
		days = append(days, day)
	}
	slices.SortFunc(days, time.Time.Compare)
	return days
}

// periodWindow returns the minimal [start, end] span covering all periods.
func periodWindow(periods []Period) (time.Time, time.Time) {
	start, end := periods[0].Start, periods[0].End
	for _, p := range periods[1:] {
		if p.Start.Before(start) {
			start = p.Start
		}
		if p.End.After(end) {
			end = p.End
		}
	}
	return start, end
}
