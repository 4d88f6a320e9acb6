package vacation

import (
	"context"
	"time"
)

// CapacityCheck re-evaluates a request's own days against the sector limit and
// the overlapping periods of other requests. Returning an error aborts the
// surrounding transaction.
type CapacityCheck func(limit int, own []Period, others []StatusPeriod) error

type StoreAPI interface {
	// UserSector resolves the current sector of a user. ErrNotFound if absent.
	UserSector(ctx context.Context, userID string) (string, error)
	// SectorLimit returns the sector's simultaneous-leave limit. ErrNotFound if absent.
	SectorLimit(ctx context.Context, sectorID string) (int, error)
	// OverlappingPeriods scans approved and pending periods of the sector that
	// overlap the inclusive [from, to] window.
	OverlappingPeriods(ctx context.Context, sectorID string, from, to time.Time) ([]StatusPeriod, error)
	CreateRequest(ctx context.Context, userID, sectorID string, periods []Period) (Request, error)
	GetRequest(ctx context.Context, requestID string) (Request, error)
	ListByUser(ctx context.Context, userID string) ([]Request, error)
	ListPendingBySector(ctx context.Context, sectorID string) ([]Request, error)
	UpdateDecision(ctx context.Context, requestID string, status Status, decidedBy string, reason *string) error
	UpdateStatus(ctx context.Context, requestID string, status Status) error
	// ApproveTx runs the approval commit as one atomic unit: it locks the
	// request's sector row, re-scans the overlapping periods of other
	// requests, runs check, and only then flips the request to approved.
	// Concurrent approvals on the same sector serialize on the row lock.
	ApproveTx(ctx context.Context, requestID, approverID string, check CapacityCheck) error
}
