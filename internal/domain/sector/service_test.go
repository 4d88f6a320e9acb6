package sector

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	sectors map[string]Sector
	users   map[string]string
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{sectors: make(map[string]Sector), users: make(map[string]string)}
}

func (f *fakeStore) Create(_ context.Context, name string, limit int) (Sector, error) {
	f.nextID++
	sec := Sector{
		ID:                fmt.Sprintf("sec-%d", f.nextID),
		Name:              name,
		SimultaneousLimit: limit,
		CreatedAt:         time.Now().UTC(),
	}
	f.sectors[sec.ID] = sec
	return sec, nil
}

func (f *fakeStore) Get(_ context.Context, sectorID string) (Sector, error) {
	sec, ok := f.sectors[sectorID]
	if !ok {
		return Sector{}, ErrNotFound
	}
	return sec, nil
}

func (f *fakeStore) GetByName(_ context.Context, name string) (Sector, error) {
	for _, sec := range f.sectors {
		if strings.EqualFold(sec.Name, name) {
			return sec, nil
		}
	}
	return Sector{}, ErrNotFound
}

func (f *fakeStore) List(_ context.Context, _ string) ([]Sector, error) {
	var out []Sector
	for _, sec := range f.sectors {
		out = append(out, sec)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, sectorID, name string, limit int) (Sector, error) {
	sec, ok := f.sectors[sectorID]
	if !ok {
		return Sector{}, ErrNotFound
	}
	sec.Name = name
	sec.SimultaneousLimit = limit
	f.sectors[sectorID] = sec
	return sec, nil
}

func (f *fakeStore) Delete(_ context.Context, sectorID string) error {
	if _, ok := f.sectors[sectorID]; !ok {
		return ErrNotFound
	}
	delete(f.sectors, sectorID)
	return nil
}

func (f *fakeStore) HasUsers(_ context.Context, sectorID string) (bool, error) {
	for _, sec := range f.users {
		if sec == sectorID {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ", 1)
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, "Financeiro", 0)
	require.ErrorIs(t, err, ErrInvalidLimit)

	sec, err := svc.Create(ctx, "  Financeiro  ", 2)
	require.NoError(t, err)
	require.Equal(t, "Financeiro", sec.Name)
	require.Equal(t, 2, sec.SimultaneousLimit)
}

func TestCreateNameUniqueCaseInsensitive(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, "Financeiro", 1)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "FINANCEIRO", 1)
	require.ErrorIs(t, err, ErrNameTaken)
}

func TestUpdateKeepsOwnName(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	sec, err := svc.Create(ctx, "Financeiro", 1)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Comercial", 1)
	require.NoError(t, err)

	// Renaming to its own name is fine; colliding with another is not.
	updated, err := svc.Update(ctx, sec.ID, "financeiro", 3)
	require.NoError(t, err)
	require.Equal(t, 3, updated.SimultaneousLimit)

	_, err = svc.Update(ctx, sec.ID, "Comercial", 1)
	require.ErrorIs(t, err, ErrNameTaken)
}

func TestDeleteBlockedWhileReferenced(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	sec, err := svc.Create(ctx, "Financeiro", 1)
	require.NoError(t, err)
	store.users["ana"] = sec.ID

	require.ErrorIs(t, svc.Delete(ctx, sec.ID), ErrInUse)

	delete(store.users, "ana")
	require.NoError(t, svc.Delete(ctx, sec.ID))
	require.ErrorIs(t, svc.Delete(ctx, sec.ID), ErrNotFound)
}
