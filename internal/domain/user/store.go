package user

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

const userColumns = `id, matricula, name, role, sector_id, password_hash, created_at`

func (s *Store) Create(ctx context.Context, u User) (User, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO users (matricula, name, role, sector_id, password_hash)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING `+userColumns+`
  `, u.Matricula, u.Name, u.Role, u.SectorID, u.PasswordHash)
	return scanUser(row)
}

func (s *Store) Get(ctx context.Context, userID string) (User, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+userColumns+`
    FROM users
    WHERE id = $1
  `, userID)
	return scanUser(row)
}

func (s *Store) GetByMatricula(ctx context.Context, matricula string) (User, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+userColumns+`
    FROM users
    WHERE matricula = $1
  `, matricula)
	return scanUser(row)
}

func (s *Store) List(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+userColumns+`
    FROM users
    ORDER BY matricula
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Matricula, &u.Name, &u.Role, &u.SectorID, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, userID, name, role, sectorID string) (User, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE users
    SET name = $2, role = $3, sector_id = $4
    WHERE id = $1
    RETURNING `+userColumns+`
  `, userID, name, role, sectorID)
	return scanUser(row)
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MaxMatricula(ctx context.Context) (int, error) {
	var highest int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(MAX(matricula::int), 0)
    FROM users
  `).Scan(&highest)
	if err != nil {
		return 0, err
	}
	return highest, nil
}

func (s *Store) SectorExists(ctx context.Context, sectorID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM sectors
    WHERE id = $1
  `, sectorID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Matricula, &u.Name, &u.Role, &u.SectorID, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
