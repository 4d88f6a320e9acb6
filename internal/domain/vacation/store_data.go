package vacation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) UserSector(ctx context.Context, userID string) (string, error) {
	var sectorID string
	err := s.DB.QueryRow(ctx, "SELECT sector_id FROM users WHERE id = $1", userID).Scan(&sectorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: usuário", ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return sectorID, nil
}

func (s *Store) SectorLimit(ctx context.Context, sectorID string) (int, error) {
	var limit int
	err := s.DB.QueryRow(ctx, "SELECT simultaneous_limit FROM sectors WHERE id = $1", sectorID).Scan(&limit)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: setor", ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return limit, nil
}

func (s *Store) OverlappingPeriods(ctx context.Context, sectorID string, from, to time.Time) ([]StatusPeriod, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.start_date, p.end_date, r.status
    FROM vacation_periods p
    JOIN vacation_requests r ON p.request_id = r.id
    WHERE r.sector_id = $1
      AND r.status IN ($2, $3)
      AND p.start_date <= $5 AND $4 <= p.end_date
  `, sectorID, StatusApproved, StatusPending, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStatusPeriods(rows)
}

func (s *Store) CreateRequest(ctx context.Context, userID, sectorID string, periods []Period) (Request, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Request{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	request := Request{
		UserID:   userID,
		SectorID: sectorID,
		Status:   StatusPending,
		Periods:  periods,
	}
	if err := tx.QueryRow(ctx, `
    INSERT INTO vacation_requests (user_id, sector_id, status)
    VALUES ($1, $2, $3)
    RETURNING id, created_at
  `, userID, sectorID, StatusPending).Scan(&request.ID, &request.CreatedAt); err != nil {
		return Request{}, err
	}

	for _, p := range periods {
		if _, err := tx.Exec(ctx, `
      INSERT INTO vacation_periods (request_id, start_date, end_date)
      VALUES ($1, $2, $3)
    `, request.ID, p.Start, p.End); err != nil {
			return Request{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}
	return request, nil
}

func (s *Store) GetRequest(ctx context.Context, requestID string) (Request, error) {
	var request Request
	err := s.DB.QueryRow(ctx, `
    SELECT id, user_id, sector_id, status, created_at, decided_by, decided_at, denial_reason
    FROM vacation_requests
    WHERE id = $1
  `, requestID).Scan(&request.ID, &request.UserID, &request.SectorID, &request.Status,
		&request.CreatedAt, &request.DecidedBy, &request.DecidedAt, &request.DenialReason)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, fmt.Errorf("%w: solicitação", ErrNotFound)
	}
	if err != nil {
		return Request{}, err
	}

	request.Periods, err = s.requestPeriods(ctx, request.ID)
	if err != nil {
		return Request{}, err
	}
	return request, nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]Request, error) {
	return s.listRequests(ctx, `
    SELECT id, user_id, sector_id, status, created_at, decided_by, decided_at, denial_reason
    FROM vacation_requests
    WHERE user_id = $1
    ORDER BY created_at DESC
  `, userID)
}

func (s *Store) ListPendingBySector(ctx context.Context, sectorID string) ([]Request, error) {
	return s.listRequests(ctx, `
    SELECT id, user_id, sector_id, status, created_at, decided_by, decided_at, denial_reason
    FROM vacation_requests
    WHERE sector_id = $1 AND status = $2
    ORDER BY created_at
  `, sectorID, StatusPending)
}

func (s *Store) UpdateDecision(ctx context.Context, requestID string, status Status, decidedBy string, reason *string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE vacation_requests
    SET status = $2, decided_by = $3, decided_at = now(), denial_reason = $4
    WHERE id = $1
  `, requestID, status, decidedBy, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: solicitação", ErrNotFound)
	}
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, requestID string, status Status) error {
	tag, err := s.DB.Exec(ctx, "UPDATE vacation_requests SET status = $2 WHERE id = $1", requestID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: solicitação", ErrNotFound)
	}
	return nil
}

// ApproveTx serializes approvals per sector: the sector row lock is held from
// the re-scan through the status flip, so two concurrent approvals on the same
// sector cannot both pass the capacity check.
func (s *Store) ApproveTx(ctx context.Context, requestID, approverID string, check CapacityCheck) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var sectorID string
	var status Status
	err = tx.QueryRow(ctx, "SELECT sector_id, status FROM vacation_requests WHERE id = $1", requestID).
		Scan(&sectorID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: solicitação", ErrNotFound)
	}
	if err != nil {
		return err
	}
	if status != StatusPending {
		return fmt.Errorf("%w: apenas solicitações pendentes podem ser aprovadas", ErrInvalidState)
	}

	var limit int
	err = tx.QueryRow(ctx, "SELECT simultaneous_limit FROM sectors WHERE id = $1 FOR UPDATE", sectorID).Scan(&limit)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: setor", ErrNotFound)
	}
	if err != nil {
		return err
	}

	own, err := s.requestPeriodsTx(ctx, tx, requestID)
	if err != nil {
		return err
	}
	if len(own) == 0 {
		return fmt.Errorf("%w: períodos da solicitação", ErrNotFound)
	}

	from, to := periodWindow(own)
	rows, err := tx.Query(ctx, `
    SELECT p.start_date, p.end_date, r.status
    FROM vacation_periods p
    JOIN vacation_requests r ON p.request_id = r.id
    WHERE r.sector_id = $1
      AND r.id <> $2
      AND r.status IN ($3, $4)
      AND p.start_date <= $6 AND $5 <= p.end_date
  `, sectorID, requestID, StatusApproved, StatusPending, from, to)
	if err != nil {
		return err
	}
	others, err := scanStatusPeriods(rows)
	rows.Close()
	if err != nil {
		return err
	}

	if err := check(limit, own, others); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
    UPDATE vacation_requests
    SET status = $2, decided_by = $3, decided_at = now(), denial_reason = NULL
    WHERE id = $1
  `, requestID, StatusApproved, approverID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) listRequests(ctx context.Context, query string, args ...any) ([]Request, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var request Request
		if err := rows.Scan(&request.ID, &request.UserID, &request.SectorID, &request.Status,
			&request.CreatedAt, &request.DecidedBy, &request.DecidedAt, &request.DenialReason); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range requests {
		requests[i].Periods, err = s.requestPeriods(ctx, requests[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return requests, nil
}

func (s *Store) requestPeriods(ctx context.Context, requestID string) ([]Period, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT start_date, end_date
    FROM vacation_periods
    WHERE request_id = $1
    ORDER BY start_date
  `, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPeriods(rows)
}

func (s *Store) requestPeriodsTx(ctx context.Context, tx pgx.Tx, requestID string) ([]Period, error) {
	rows, err := tx.Query(ctx, `
    SELECT start_date, end_date
    FROM vacation_periods
    WHERE request_id = $1
    ORDER BY start_date
  `, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPeriods(rows)
}

func scanPeriods(rows pgx.Rows) ([]Period, error) {
	var periods []Period
	for rows.Next() {
		var p Period
		if err := rows.Scan(&p.Start, &p.End); err != nil {
			return nil, err
		}
		p.Start, p.End = Day(p.Start), Day(p.End)
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func scanStatusPeriods(rows pgx.Rows) ([]StatusPeriod, error) {
	var periods []StatusPeriod
	for rows.Next() {
		var p StatusPeriod
		if err := rows.Scan(&p.Start, &p.End, &p.Status); err != nil {
			return nil, err
		}
		p.Start, p.End = Day(p.Start), Day(p.End)
		periods = append(periods, p)
	}
	return periods, rows.Err()
}
