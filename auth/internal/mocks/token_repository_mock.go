package mocks

import (
	"context"
	"time"

	"community-server/shared/interfaces"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockVerificationTokenRepository is a mock type for the VerificationTokenRepository type
type MockVerificationTokenRepository struct {
	mock.Mock
}

// Save provides a mock function with given fields: ctx, token, userID, ttl
func (_m *MockVerificationTokenRepository) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	ret := _m.Called(ctx, token, userID, ttl)
	return ret.Error(0)
}

// Consume provides a mock function with given fields: ctx, token
func (_m *MockVerificationTokenRepository) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	ret := _m.Called(ctx, token)

	var r0 uuid.UUID
	if v := ret.Get(0); v != nil {
		r0 = v.(uuid.UUID)
	}
	return r0, ret.Error(1)
}

// NewMockVerificationTokenRepository creates a new instance of MockVerificationTokenRepository.
func NewMockVerificationTokenRepository(t interface {
	mock.TestingT
	Helper()
}) *MockVerificationTokenRepository {
	m := &MockVerificationTokenRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.VerificationTokenRepository = (*MockVerificationTokenRepository)(nil)
