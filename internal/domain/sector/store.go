package sector

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, name string, limit int) (Sector, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO sectors (name, simultaneous_limit)
    VALUES ($1, $2)
    RETURNING id, name, simultaneous_limit, created_at
  `, name, limit)
	return scanSector(row)
}

func (s *Store) Get(ctx context.Context, sectorID string) (Sector, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, name, simultaneous_limit, created_at
    FROM sectors
    WHERE id = $1
  `, sectorID)
	return scanSector(row)
}

func (s *Store) GetByName(ctx context.Context, name string) (Sector, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, name, simultaneous_limit, created_at
    FROM sectors
    WHERE LOWER(name) = LOWER($1)
  `, name)
	return scanSector(row)
}

func (s *Store) List(ctx context.Context, search string) ([]Sector, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, simultaneous_limit, created_at
    FROM sectors
    WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
    ORDER BY name
  `, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sector
	for rows.Next() {
		var sec Sector
		if err := rows.Scan(&sec.ID, &sec.Name, &sec.SimultaneousLimit, &sec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, sectorID, name string, limit int) (Sector, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE sectors
    SET name = $2, simultaneous_limit = $3
    WHERE id = $1
    RETURNING id, name, simultaneous_limit, created_at
  `, sectorID, name, limit)
	return scanSector(row)
}

func (s *Store) Delete(ctx context.Context, sectorID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM sectors WHERE id = $1`, sectorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) HasUsers(ctx context.Context, sectorID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM users
    WHERE sector_id = $1
  `, sectorID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanSector(row pgx.Row) (Sector, error) {
	var sec Sector
	err := row.Scan(&sec.ID, &sec.Name, &sec.SimultaneousLimit, &sec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sector{}, ErrNotFound
	}
	if err != nil {
		return Sector{}, err
	}
	return sec, nil
}
