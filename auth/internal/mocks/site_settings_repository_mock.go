package mocks

import (
	"context"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSiteSettingsRepository is a mock type for the SiteSettingsRepository type
type MockSiteSettingsRepository struct {
	mock.Mock
}

func settingsResult(ret mock.Arguments) (*models.SiteSettings, error) {
	var r0 *models.SiteSettings
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.SiteSettings)
	}
	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx
func (_m *MockSiteSettingsRepository) Get(ctx context.Context) (*models.SiteSettings, error) {
	return settingsResult(_m.Called(ctx))
}

// Create provides a mock function with given fields: ctx, input
func (_m *MockSiteSettingsRepository) Create(ctx context.Context, input models.SiteSettingsInput) (*models.SiteSettings, error) {
	return settingsResult(_m.Called(ctx, input))
}

// Update provides a mock function with given fields: ctx, id, input
func (_m *MockSiteSettingsRepository) Update(ctx context.Context, id uuid.UUID, input models.SiteSettingsInput) (*models.SiteSettings, error) {
	return settingsResult(_m.Called(ctx, id, input))
}

// NewMockSiteSettingsRepository creates a new instance of MockSiteSettingsRepository.
func NewMockSiteSettingsRepository(t interface {
	mock.TestingT
	Helper()
}) *MockSiteSettingsRepository {
	m := &MockSiteSettingsRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.SiteSettingsRepository = (*MockSiteSettingsRepository)(nil)
