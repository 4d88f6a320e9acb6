package sector

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Create registers a new sector. Names are unique case-insensitively and the
// simultaneous vacation limit must be at least 1.
func (s *Service) Create(ctx context.Context, name string, limit int) (Sector, error) {
	name, err := validate(name, limit)
	if err != nil {
		return Sector{}, err
	}
	if _, err := s.Store.GetByName(ctx, name); err == nil {
		return Sector{}, ErrNameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Sector{}, err
	}
	return s.Store.Create(ctx, name, limit)
}

func (s *Service) Get(ctx context.Context, sectorID string) (Sector, error) {
	return s.Store.Get(ctx, sectorID)
}

func (s *Service) List(ctx context.Context, search string) ([]Sector, error) {
	return s.Store.List(ctx, strings.TrimSpace(search))
}

func (s *Service) Update(ctx context.Context, sectorID, name string, limit int) (Sector, error) {
	name, err := validate(name, limit)
	if err != nil {
		return Sector{}, err
	}
	existing, err := s.Store.GetByName(ctx, name)
	if err == nil && existing.ID != sectorID {
		return Sector{}, ErrNameTaken
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return Sector{}, err
	}
	return s.Store.Update(ctx, sectorID, name, limit)
}

// Delete removes a sector unless users still reference it.
func (s *Service) Delete(ctx context.Context, sectorID string) error {
	inUse, err := s.Store.HasUsers(ctx, sectorID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrInUse
	}
	return s.Store.Delete(ctx, sectorID)
}

func validate(name string, limit int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if limit < 1 {
		return "", ErrInvalidLimit
	}
	return name, nil
}
