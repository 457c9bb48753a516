package mocks

import (
	"context"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock type for the Notifier type
type MockNotifier struct {
	mock.Mock
}

// Send provides a mock function with given fields: ctx, msg
func (_m *MockNotifier) Send(ctx context.Context, msg models.EmailMessage) error {
	ret := _m.Called(ctx, msg)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, models.EmailMessage) error); ok {
		r0 = rf(ctx, msg)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockNotifier creates a new instance of MockNotifier. It also registers a testing interface on the mock.
func NewMockNotifier(t interface {
	mock.TestingT
	Helper()
}) *MockNotifier {
	m := &MockNotifier{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.Notifier = (*MockNotifier)(nil)
