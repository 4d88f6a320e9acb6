package user

import (
	"context"
	"fmt"
	"strings"

	"ferias/internal/auth"
)

// Matriculas are four-digit, zero-padded and sequential, so the registry
// tops out at 9999 users.
const maxMatricula = 9999

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Register creates a user, hashing the password and allocating the next
// free matricula.
func (s *Service) Register(ctx context.Context, name, role, sectorID, password string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrNameRequired
	}
	if !auth.ValidRole(role) {
		return User{}, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	if password == "" {
		return User{}, ErrPasswordRequired
	}
	exists, err := s.Store.SectorExists(ctx, sectorID)
	if err != nil {
		return User{}, err
	}
	if !exists {
		return User{}, ErrSectorNotFound
	}

	highest, err := s.Store.MaxMatricula(ctx)
	if err != nil {
		return User{}, err
	}
	if highest >= maxMatricula {
		return User{}, ErrMatriculaExhausted
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	return s.Store.Create(ctx, User{
		Matricula:    fmt.Sprintf("%04d", highest+1),
		Name:         name,
		Role:         role,
		SectorID:     sectorID,
		PasswordHash: hash,
	})
}

// Authenticate verifies a matricula/password pair. Unknown matriculas and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, matricula, password string) (User, error) {
	u, err := s.Store.GetByMatricula(ctx, matricula)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	return s.Store.Get(ctx, userID)
}

func (s *Service) GetByMatricula(ctx context.Context, matricula string) (User, error) {
	return s.Store.GetByMatricula(ctx, matricula)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Store.List(ctx)
}

func (s *Service) Update(ctx context.Context, userID, name, role, sectorID string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrNameRequired
	}
	if !auth.ValidRole(role) {
		return User{}, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	exists, err := s.Store.SectorExists(ctx, sectorID)
	if err != nil {
		return User{}, err
	}
	if !exists {
		return User{}, ErrSectorNotFound
	}
	return s.Store.Update(ctx, userID, name, role, sectorID)
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.Store.Delete(ctx, userID)
}
