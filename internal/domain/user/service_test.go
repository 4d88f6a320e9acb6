package user

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ferias/internal/auth"
)

type fakeStore struct {
	users   map[string]User
	sectors map[string]bool
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]User), sectors: map[string]bool{"sec-1": true}}
}

func (f *fakeStore) Create(_ context.Context, u User) (User, error) {
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now().UTC()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeStore) Get(_ context.Context, userID string) (User, error) {
	u, ok := f.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetByMatricula(_ context.Context, matricula string) (User, error) {
	for _, u := range f.users {
		if u.Matricula == matricula {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeStore) List(_ context.Context) ([]User, error) {
	var out []User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, userID, name, role, sectorID string) (User, error) {
	u, ok := f.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	u.Name = name
	u.Role = role
	u.SectorID = sectorID
	f.users[userID] = u
	return u, nil
}

func (f *fakeStore) Delete(_ context.Context, userID string) error {
	if _, ok := f.users[userID]; !ok {
		return ErrNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeStore) MaxMatricula(_ context.Context) (int, error) {
	highest := 0
	for _, u := range f.users {
		n, err := strconv.Atoi(u.Matricula)
		if err != nil {
			return 0, err
		}
		if n > highest {
			highest = n
		}
	}
	return highest, nil
}

func (f *fakeStore) SectorExists(_ context.Context, sectorID string) (bool, error) {
	return f.sectors[sectorID], nil
}

func TestRegisterAllocatesSequentialMatriculas(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	first, err := svc.Register(ctx, "Ana", auth.RoleCollaborator, "sec-1", "senha123")
	require.NoError(t, err)
	require.Equal(t, "0001", first.Matricula)

	second, err := svc.Register(ctx, "Bruno", auth.RoleManager, "sec-1", "senha123")
	require.NoError(t, err)
	require.Equal(t, "0002", second.Matricula)
}

func TestRegisterMatriculaExhausted(t *testing.T) {
	store := newFakeStore()
	store.users["u-max"] = User{ID: "u-max", Matricula: "9999", SectorID: "sec-1"}
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "Carla", auth.RoleCollaborator, "sec-1", "senha123")
	require.ErrorIs(t, err, ErrMatriculaExhausted)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "  ", auth.RoleCollaborator, "sec-1", "senha123")
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Register(ctx, "Ana", "diretor", "sec-1", "senha123")
	require.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.Register(ctx, "Ana", auth.RoleCollaborator, "sec-1", "")
	require.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.Register(ctx, "Ana", auth.RoleCollaborator, "sec-404", "senha123")
	require.ErrorIs(t, err, ErrSectorNotFound)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	created, err := svc.Register(ctx, "Ana", auth.RoleCollaborator, "sec-1", "senha123")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, created.Matricula, "senha123")
	require.NoError(t, err)
	require.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(ctx, created.Matricula, "errada")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "0042", "senha123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
