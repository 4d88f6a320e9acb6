package vacation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildOccupancyCountsByStatus(t *testing.T) {
	occ := BuildOccupancy([]StatusPeriod{
		{Start: date(2025, 1, 1), End: date(2025, 1, 3), Status: StatusApproved},
		{Start: date(2025, 1, 2), End: date(2025, 1, 4), Status: StatusApproved},
		{Start: date(2025, 1, 3), End: date(2025, 1, 3), Status: StatusPending},
	})

	require.Equal(t, 1, occ.Approved[date(2025, 1, 1)])
	require.Equal(t, 2, occ.Approved[date(2025, 1, 2)])
	require.Equal(t, 2, occ.Approved[date(2025, 1, 3)])
	require.Equal(t, 1, occ.Approved[date(2025, 1, 4)])
	require.Equal(t, 1, occ.Pending[date(2025, 1, 3)])
	require.Zero(t, occ.Pending[date(2025, 1, 1)])
}

func TestBuildOccupancyIgnoresDecidedRequests(t *testing.T) {
	occ := BuildOccupancy([]StatusPeriod{
		{Start: date(2025, 1, 1), End: date(2025, 1, 5), Status: StatusDenied},
		{Start: date(2025, 1, 1), End: date(2025, 1, 5), Status: StatusCancelled},
	})
	require.Empty(t, occ.Approved)
	require.Empty(t, occ.Pending)
}

func TestClassifyConflictsAndWarnings(t *testing.T) {
	occ := BuildOccupancy([]StatusPeriod{
		{Start: date(2025, 1, 10), End: date(2025, 1, 12), Status: StatusApproved},
		{Start: date(2025, 1, 11), End: date(2025, 1, 11), Status: StatusPending},
	})

	conflicts, warnings := occ.Classify(1, []Period{{Start: date(2025, 1, 9), End: date(2025, 1, 13)}})

	require.Equal(t, []time.Time{date(2025, 1, 10), date(2025, 1, 11), date(2025, 1, 12)}, conflicts)
	require.Equal(t, []time.Time{date(2025, 1, 11)}, warnings)
}

func TestClassifyRespectsLimit(t *testing.T) {
	occ := BuildOccupancy([]StatusPeriod{
		{Start: date(2025, 1, 10), End: date(2025, 1, 10), Status: StatusApproved},
	})

	conflicts, _ := occ.Classify(2, []Period{{Start: date(2025, 1, 10), End: date(2025, 1, 10)}})
	require.Empty(t, conflicts)

	conflicts, _ = occ.Classify(1, []Period{{Start: date(2025, 1, 10), End: date(2025, 1, 10)}})
	require.Len(t, conflicts, 1)
}

func TestClassifyWarningIndependentOfConflict(t *testing.T) {
	// Pending occupancy may exceed the limit; it still only warns.
	occ := BuildOccupancy([]StatusPeriod{
		{Start: date(2025, 1, 10), End: date(2025, 1, 10), Status: StatusPending},
		{Start: date(2025, 1, 10), End: date(2025, 1, 10), Status: StatusPending},
		{Start: date(2025, 1, 10), End: date(2025, 1, 10), Status: StatusPending},
	})

	conflicts, warnings := occ.Classify(1, []Period{{Start: date(2025, 1, 10), End: date(2025, 1, 10)}})
	require.Empty(t, conflicts)
	require.Len(t, warnings, 1)
}
