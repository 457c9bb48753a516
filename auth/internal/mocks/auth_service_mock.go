package mocks

import (
	"context"
	"time"

	"community-server/auth/internal/service"
	"community-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock type for the AuthService type
type MockAuthService struct {
	mock.Mock
}

// Login provides a mock function with given fields: ctx, in
func (_m *MockAuthService) Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error) {
	ret := _m.Called(ctx, in)

	var r0 *service.LoginResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.LoginResult)
	}
	return r0, ret.Error(1)
}

// Signup provides a mock function with given fields: ctx, in
func (_m *MockAuthService) Signup(ctx context.Context, in service.SignupInput) (*service.SignupResult, error) {
	ret := _m.Called(ctx, in)

	var r0 *service.SignupResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.SignupResult)
	}
	return r0, ret.Error(1)
}

// VerifyEmail provides a mock function with given fields: ctx, token
func (_m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

// ResendVerification provides a mock function with given fields: ctx, email
func (_m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	ret := _m.Called(ctx, email)
	return ret.Error(0)
}

// GetMe provides a mock function with given fields: ctx, userID
func (_m *MockAuthService) GetMe(ctx context.Context, userID uuid.UUID) (*models.PublicUser, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.PublicUser
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.PublicUser)
	}
	return r0, ret.Error(1)
}

// VerifySession provides a mock function with given fields: ctx, token
func (_m *MockAuthService) VerifySession(ctx context.Context, token string) (*models.Claims, error) {
	ret := _m.Called(ctx, token)

	var r0 *models.Claims
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Claims)
	}
	return r0, ret.Error(1)
}

// BanUser provides a mock function with given fields: ctx, requesterID, targetID, reason, until
func (_m *MockAuthService) BanUser(ctx context.Context, requesterID, targetID uuid.UUID, reason *string, until *time.Time) error {
	ret := _m.Called(ctx, requesterID, targetID, reason, until)
	return ret.Error(0)
}

// UnbanUser provides a mock function with given fields: ctx, requesterID, targetID
func (_m *MockAuthService) UnbanUser(ctx context.Context, requesterID, targetID uuid.UUID) error {
	ret := _m.Called(ctx, requesterID, targetID)
	return ret.Error(0)
}

// GetPermissions provides a mock function with given fields: ctx, userID, boardID
func (_m *MockAuthService) GetPermissions(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) (*service.PermissionsResult, error) {
	ret := _m.Called(ctx, userID, boardID)

	var r0 *service.PermissionsResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.PermissionsResult)
	}
	return r0, ret.Error(1)
}

// Can provides a mock function with given fields: ctx, userID, boardID, capability
func (_m *MockAuthService) Can(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID, capability models.Capability) (bool, error) {
	ret := _m.Called(ctx, userID, boardID, capability)
	return ret.Bool(0), ret.Error(1)
}

// NewMockAuthService creates a new instance of MockAuthService.
func NewMockAuthService(t interface {
	mock.TestingT
	Helper()
}) *MockAuthService {
	m := &MockAuthService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.AuthService = (*MockAuthService)(nil)
