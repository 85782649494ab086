package mocks

import (
	"context"

	"wakili/internal/identity"
	"wakili/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) Touch(ctx context.Context, caller identity.Caller) error {
	args := m.Called(ctx, caller)
	return args.Error(0)
}

func (m *MockProfileStore) IncrementDocumentCount(ctx context.Context, caller identity.Caller) error {
	args := m.Called(ctx, caller)
	return args.Error(0)
}

func (m *MockProfileStore) SetName(ctx context.Context, caller identity.Caller, name string) error {
	args := m.Called(ctx, caller, name)
	return args.Error(0)
}

func (m *MockProfileStore) Get(ctx context.Context, caller identity.Caller) (*model.UserProfile, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}
