package mocks

import (
	"context"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRoleRepository is a mock type for the RoleRepository type
type MockRoleRepository struct {
	mock.Mock
}

// CountRoles provides a mock function with given fields: ctx
func (_m *MockRoleRepository) CountRoles(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

// GetRoleByName provides a mock function with given fields: ctx, name
func (_m *MockRoleRepository) GetRoleByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	ret := _m.Called(ctx, name)

	var r0 *models.Role
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Role)
	}
	return r0, ret.Error(1)
}

// ListRoles provides a mock function with given fields: ctx
func (_m *MockRoleRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	ret := _m.Called(ctx)

	var r0 []models.Role
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Role)
	}
	return r0, ret.Error(1)
}

// SeedRoles provides a mock function with given fields: ctx, catalog
func (_m *MockRoleRepository) SeedRoles(ctx context.Context, catalog []models.RoleDefinition) (bool, error) {
	ret := _m.Called(ctx, catalog)
	return ret.Bool(0), ret.Error(1)
}

// ListPermissions provides a mock function with given fields: ctx, roleID
func (_m *MockRoleRepository) ListPermissions(ctx context.Context, roleID uuid.UUID) ([]models.Permission, error) {
	ret := _m.Called(ctx, roleID)

	var r0 []models.Permission
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Permission)
	}
	return r0, ret.Error(1)
}

// NewMockRoleRepository creates a new instance of MockRoleRepository.
func NewMockRoleRepository(t interface {
	mock.TestingT
	Helper()
}) *MockRoleRepository {
	m := &MockRoleRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.RoleRepository = (*MockRoleRepository)(nil)
