package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"ferias/internal/auth"
	"ferias/internal/platform/config"
)

// Seed ensures a default sector and an admin user exist so a fresh install
// is usable. Both steps are idempotent.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	sectorID, err := ensureSector(ctx, pool, cfg.SeedSectorName, cfg.SeedSectorLimit)
	if err != nil {
		return err
	}
	return ensureAdminUser(ctx, pool, sectorID, cfg.SeedAdminName, cfg.SeedAdminPassword)
}

func ensureSector(ctx context.Context, pool *pgxpool.Pool, name string, limit int) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM sectors WHERE LOWER(name) = LOWER($1)", name).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, "INSERT INTO sectors (name, simultaneous_limit) VALUES ($1, $2) RETURNING id", name, limit).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, sectorID, name, password string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE role = $1", auth.RoleAdmin).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		password = "admin"
		slog.Warn("seeding admin user with default password, change it immediately")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	var highest int
	if err := pool.QueryRow(ctx, "SELECT COALESCE(MAX(matricula::int), 0) FROM users").Scan(&highest); err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (matricula, name, role, sector_id, password_hash)
    VALUES ($1, $2, $3, $4, $5)
  `, fmt.Sprintf("%04d", highest+1), name, auth.RoleAdmin, sectorID, hash)
	return err
}
