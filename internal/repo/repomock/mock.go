package repomock

import (
	"context"

	coolingload "Frostline/internal/calc/coolingload"
	repo "Frostline/internal/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

var (
	_ repo.UserRepository    = (*MockStore)(nil)
	_ repo.ProjectRepository = (*MockStore)(nil)
)

func (m *MockStore) CreateUser(ctx context.Context, login, email, passwordHash string) (int, error) {
	args := m.Called(ctx, login, email, passwordHash)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) GetByLogin(ctx context.Context, login string) (int, string, error) {
	args := m.Called(ctx, login)
	return args.Int(0), args.String(1), args.Error(2)
}

func (m *MockStore) CreateProject(ctx context.Context, userID int, name string, fields coolingload.Fields) (repo.Project, error) {
	args := m.Called(ctx, userID, name, fields)
	return args.Get(0).(repo.Project), args.Error(1)
}

func (m *MockStore) ListProjects(ctx context.Context, userID int) ([]repo.Project, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).([]repo.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetProject(ctx context.Context, userID int, id uuid.UUID) (repo.Project, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(repo.Project), args.Error(1)
}

func (m *MockStore) UpdateProject(ctx context.Context, userID int, id uuid.UUID, name string, fields coolingload.Fields) (repo.Project, error) {
	args := m.Called(ctx, userID, id, name, fields)
	return args.Get(0).(repo.Project), args.Error(1)
}

func (m *MockStore) DeleteProject(ctx context.Context, userID int, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
