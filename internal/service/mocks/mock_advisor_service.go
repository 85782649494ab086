package mocks

import (
	"context"

	"wakili/internal/identity"
	"wakili/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAdvisorService struct {
	mock.Mock
}

func (m *MockAdvisorService) GenerateAdvice(ctx context.Context, caller identity.Caller, req model.LegalRequest) (*model.LegalResponse, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LegalResponse), args.Error(1)
}

func (m *MockAdvisorService) GenerateDocument(ctx context.Context, caller identity.Caller, req model.LegalRequest) (*model.LegalResponse, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LegalResponse), args.Error(1)
}

func (m *MockAdvisorService) GetDocument(ctx context.Context, caller identity.Caller, key string) (string, error) {
	args := m.Called(ctx, caller, key)
	return args.String(0), args.Error(1)
}

func (m *MockAdvisorService) ListUserDocuments(ctx context.Context, caller identity.Caller) ([]model.Document, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockAdvisorService) GetProfile(ctx context.Context, caller identity.Caller) (*model.UserProfile, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockAdvisorService) UpdateUserName(ctx context.Context, caller identity.Caller, name string) error {
	args := m.Called(ctx, caller, name)
	return args.Error(0)
}
