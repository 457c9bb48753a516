package mocks

import (
	"context"
	"time"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

func (_m *MockUserRepository) userResult(ret mock.Arguments) (*models.User, error) {
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

// CreateUser provides a mock function with given fields: ctx, user
func (_m *MockUserRepository) CreateUser(ctx context.Context, user *models.NewUser) (*models.User, error) {
	return _m.userResult(_m.Called(ctx, user))
}

// CreateSoleRoleHolder provides a mock function with given fields: ctx, user
func (_m *MockUserRepository) CreateSoleRoleHolder(ctx context.Context, user *models.NewUser) (*models.User, error) {
	return _m.userResult(_m.Called(ctx, user))
}

// GetUserByEmail provides a mock function with given fields: ctx, email
func (_m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return _m.userResult(_m.Called(ctx, email))
}

// GetUserByID provides a mock function with given fields: ctx, id
func (_m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return _m.userResult(_m.Called(ctx, id))
}

// GetFirstUserByRole provides a mock function with given fields: ctx, role
func (_m *MockUserRepository) GetFirstUserByRole(ctx context.Context, role models.RoleName) (*models.User, error) {
	return _m.userResult(_m.Called(ctx, role))
}

// CountUsersByRole provides a mock function with given fields: ctx, role
func (_m *MockUserRepository) CountUsersByRole(ctx context.Context, role models.RoleName) (int64, error) {
	ret := _m.Called(ctx, role)
	return ret.Get(0).(int64), ret.Error(1)
}

// DeleteUsersByRole provides a mock function with given fields: ctx, roleID
func (_m *MockUserRepository) DeleteUsersByRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, roleID)
	return ret.Get(0).(int64), ret.Error(1)
}

// MarkEmailVerified provides a mock function with given fields: ctx, id, at
func (_m *MockUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	ret := _m.Called(ctx, id, at)
	return ret.Error(0)
}

// UpdateLastLogin provides a mock function with given fields: ctx, id, at
func (_m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	ret := _m.Called(ctx, id, at)
	return ret.Error(0)
}

// SetBanStatus provides a mock function with given fields: ctx, id, banned, reason, until
func (_m *MockUserRepository) SetBanStatus(ctx context.Context, id uuid.UUID, banned bool, reason *string, until *time.Time) error {
	ret := _m.Called(ctx, id, banned, reason, until)
	return ret.Error(0)
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository(t interface {
	mock.TestingT
	Helper()
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.UserRepository = (*MockUserRepository)(nil)
