package mocks

import (
	"context"

	"community-server/auth/internal/service"
	"community-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSystemService is a mock type for the SystemService type
type MockSystemService struct {
	mock.Mock
}

// IsSystemAdmin provides a mock function with given fields: ctx, userID
func (_m *MockSystemService) IsSystemAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, userID)
	return ret.Bool(0), ret.Error(1)
}

// GetAdmin provides a mock function with given fields: ctx, requesterID
func (_m *MockSystemService) GetAdmin(ctx context.Context, requesterID uuid.UUID) (*service.AdminStatus, error) {
	ret := _m.Called(ctx, requesterID)

	var r0 *service.AdminStatus
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.AdminStatus)
	}
	return r0, ret.Error(1)
}

// CreateAdmin provides a mock function with given fields: ctx, requesterID, in
func (_m *MockSystemService) CreateAdmin(ctx context.Context, requesterID uuid.UUID, in service.CreateAdminInput) (*models.AdminSummary, error) {
	ret := _m.Called(ctx, requesterID, in)

	var r0 *models.AdminSummary
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.AdminSummary)
	}
	return r0, ret.Error(1)
}

// DeleteAdmin provides a mock function with given fields: ctx, requesterID
func (_m *MockSystemService) DeleteAdmin(ctx context.Context, requesterID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, requesterID)
	return ret.Get(0).(int64), ret.Error(1)
}

func settingsOrNil(v interface{}) *models.SiteSettings {
	if v == nil {
		return nil
	}
	return v.(*models.SiteSettings)
}

// GetConfig provides a mock function with given fields: ctx
func (_m *MockSystemService) GetConfig(ctx context.Context) (*models.SiteSettings, error) {
	ret := _m.Called(ctx)
	return settingsOrNil(ret.Get(0)), ret.Error(1)
}

// CreateConfig provides a mock function with given fields: ctx, requesterID, in
func (_m *MockSystemService) CreateConfig(ctx context.Context, requesterID uuid.UUID, in models.SiteSettingsInput) (*models.SiteSettings, error) {
	ret := _m.Called(ctx, requesterID, in)
	return settingsOrNil(ret.Get(0)), ret.Error(1)
}

// UpdateConfig provides a mock function with given fields: ctx, requesterID, id, in
func (_m *MockSystemService) UpdateConfig(ctx context.Context, requesterID, id uuid.UUID, in models.SiteSettingsInput) (*models.SiteSettings, error) {
	ret := _m.Called(ctx, requesterID, id, in)
	return settingsOrNil(ret.Get(0)), ret.Error(1)
}

// NewMockSystemService creates a new instance of MockSystemService.
func NewMockSystemService(t interface {
	mock.TestingT
	Helper()
}) *MockSystemService {
	m := &MockSystemService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.SystemService = (*MockSystemService)(nil)
