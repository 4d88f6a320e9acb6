package user

import "context"

type StoreAPI interface {
	Create(ctx context.Context, u User) (User, error)
	Get(ctx context.Context, userID string) (User, error)
	GetByMatricula(ctx context.Context, matricula string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, userID, name, role, sectorID string) (User, error)
	Delete(ctx context.Context, userID string) error
	MaxMatricula(ctx context.Context) (int, error)
	SectorExists(ctx context.Context, sectorID string) (bool, error)
}
