package vacation

import (
	"fmt"
	"slices"
)

// RequiredTotalDays is the exact calendar-day total every request must sum to.
// Fixed business policy, not configurable.
const RequiredTotalDays = 30

// ValidatePeriods checks a candidate period list for structural validity,
// internal non-overlap and total-duration exactness. On success it returns the
// periods with dates normalized to midnight UTC, sorted by start date.
func ValidatePeriods(periods []Period) ([]Period, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: informe pelo menos 1 período", ErrInvalidPeriod)
	}

	normalized := make([]Period, 0, len(periods))
	for _, p := range periods {
		if p.Start.IsZero() || p.End.IsZero() {
			return nil, fmt.Errorf("%w: início/fim obrigatórios", ErrInvalidPeriod)
		}
		start, end := Day(p.Start), Day(p.End)
		if start.After(end) {
			return nil, fmt.Errorf("%w: início maior que fim", ErrInvalidPeriod)
		}
		normalized = append(normalized, Period{Start: start, End: end})
	}

	slices.SortFunc(normalized, func(a, b Period) int {
		return a.Start.Compare(b.Start)
	})

	// Sorted by start, so only consecutive pairs can overlap.
	for i := 0; i < len(normalized)-1; i++ {
		a, b := normalized[i], normalized[i+1]
		if Overlaps(a.Start, a.End, b.Start, b.End) {
			return nil, ErrOverlappingPeriods
		}
	}

	total := 0
	for _, p := range normalized {
		days, err := DayCount(p.Start, p.End)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
		}
		total += days
	}
	if total != RequiredTotalDays {
		return nil, fmt.Errorf("%w. Atual: %d", ErrDurationMismatch, total)
	}

	return normalized, nil
}
