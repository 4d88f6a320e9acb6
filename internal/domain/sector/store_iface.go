package sector

import "context"

type StoreAPI interface {
	Create(ctx context.Context, name string, limit int) (Sector, error)
	Get(ctx context.Context, sectorID string) (Sector, error)
	GetByName(ctx context.Context, name string) (Sector, error)
	List(ctx context.Context, search string) ([]Sector, error)
	Update(ctx context.Context, sectorID, name string, limit int) (Sector, error)
	Delete(ctx context.Context, sectorID string) error
	HasUsers(ctx context.Context, sectorID string) (bool, error)
}
