package vacation

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Service drives vacation requests through their lifecycle. All capacity
// decisions block on approved occupancy only; pending overlap is advisory.
type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// SubmitResult carries the persisted request plus non-fatal advisory warnings
// about pending requests sharing days with this one.
type SubmitResult struct {
	Request     Request     `json:"solicitacao"`
	WarningDays []time.Time `json:"diasComPendencias,omitempty"`
	Warnings    []string    `json:"avisos,omitempty"`
}

// Submit validates the periods, checks sector capacity and persists a new
// pending request. The capacity check here is advisory strength: it rejects
// obviously doomed submissions, while the authoritative gate runs inside
// Approve.
func (s *Service) Submit(ctx context.Context, userID string, periods []Period) (SubmitResult, error) {
	validated, err := ValidatePeriods(periods)
	if err != nil {
		return SubmitResult{}, err
	}

	sectorID, err := s.Store.UserSector(ctx, userID)
	if err != nil {
		return SubmitResult{}, err
	}
	limit, err := s.Store.SectorLimit(ctx, sectorID)
	if err != nil {
		return SubmitResult{}, err
	}

	from, to := periodWindow(validated)
	existing, err := s.Store.OverlappingPeriods(ctx, sectorID, from, to)
	if err != nil {
		return SubmitResult{}, err
	}

	conflicts, warnings := BuildOccupancy(existing).Classify(limit, validated)
	if len(conflicts) > 0 {
		return SubmitResult{}, fmt.Errorf("%w no dia %s (e outros)", ErrCapacityExceeded, conflicts[0].Format("2006-01-02"))
	}

	request, err := s.Store.CreateRequest(ctx, userID, sectorID, validated)
	if err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{Request: request, WarningDays: warnings}
	if len(warnings) > 0 {
		result.Warnings = []string{
			fmt.Sprintf("Aviso: existem solicitações pendentes que incluem %d dia(s) do seu pedido.", len(warnings)),
		}
	}
	return result, nil
}

// Approve re-validates capacity at decision time and flips the request to
// approved. The re-check and the status flip run as one atomic unit per
// sector, closing the race with approvals granted after submission.
func (s *Service) Approve(ctx context.Context, requestID, approverID string) error {
	return s.Store.ApproveTx(ctx, requestID, approverID, func(limit int, own []Period, others []StatusPeriod) error {
		conflicts, _ := BuildOccupancy(others).Classify(limit, own)
		if len(conflicts) > 0 {
			return fmt.Errorf("não é possível aprovar: %w em %s", ErrCapacityExceeded, conflicts[0].Format("2006-01-02"))
		}
		return nil
	})
}

// Deny flips a pending request to denied, recording the denier and reason.
func (s *Service) Deny(ctx context.Context, requestID, denierID, reason string) error {
	request, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != StatusPending {
		return fmt.Errorf("%w: apenas solicitações pendentes podem ser negadas", ErrInvalidState)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrMissingReason
	}
	return s.Store.UpdateDecision(ctx, requestID, StatusDenied, denierID, &reason)
}

// Cancel lets the owner withdraw a pending request.
func (s *Service) Cancel(ctx context.Context, requestID, userID string) error {
	if _, err := s.Store.UserSector(ctx, userID); err != nil {
		return err
	}
	request, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.UserID != userID {
		return ErrForbidden
	}
	if request.Status != StatusPending {
		return fmt.Errorf("%w: apenas solicitações pendentes podem ser canceladas", ErrInvalidState)
	}
	return s.Store.UpdateStatus(ctx, requestID, StatusCancelled)
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Request, error) {
	if _, err := s.Store.UserSector(ctx, userID); err != nil {
		return nil, err
	}
	return s.Store.ListByUser(ctx, userID)
}

func (s *Service) ListPendingBySector(ctx context.Context, sectorID string) ([]Request, error) {
	if _, err := s.Store.SectorLimit(ctx, sectorID); err != nil {
		return nil, err
	}
	return s.Store.ListPendingBySector(ctx, sectorID)
}

// Calendar builds the day-by-day occupancy table for a sector. Zero start
// defaults to today; zero end defaults to start + 90 days.
func (s *Service) Calendar(ctx context.Context, sectorID string, start, end time.Time) ([]CalendarDay, error) {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	start = Day(start)
	if end.IsZero() {
		end = start.AddDate(0, 0, 90)
	}
	end = Day(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	limit, err := s.Store.SectorLimit(ctx, sectorID)
	if err != nil {
		return nil, err
	}
	periods, err := s.Store.OverlappingPeriods(ctx, sectorID, start, end)
	if err != nil {
		return nil, err
	}
	return buildCalendar(BuildOccupancy(periods), limit, start, end), nil
}
