package usecase

import (
	"context"

	"horeca-board/pkg/access"
	"horeca-board/services/auth/internal/entity"
	"horeca-board/services/auth/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "user-new"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

var _ persistent.ProfileRepository = (*MockProfileRepository)(nil)

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	p := *args.Get(0).(*entity.Profile)
	return &p, args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, id string, columns map[string]interface{}) error {
	args := m.Called(ctx, id, columns)
	return args.Error(0)
}

func (m *MockProfileRepository) SetRole(ctx context.Context, id string, role access.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockProfileRepository) List(ctx context.Context, role access.Role, limit, offset int) ([]*entity.Profile, error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Profile), args.Error(1)
}

type MockIdentityCache struct {
	mock.Mock
}

func (m *MockIdentityCache) Forget(ctx context.Context, userID string) {
	m.Called(ctx, userID)
}
