package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studynotes/internal/model"
)

type MockGrantRepository struct {
	mock.Mock
}

func (m *MockGrantRepository) FindActive(ctx context.Context, userID string, now time.Time) (*model.AccessGrant, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessGrant), args.Error(1)
}

func (m *MockGrantRepository) FindByPaymentID(ctx context.Context, paymentID string) (*model.AccessGrant, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessGrant), args.Error(1)
}

func (m *MockGrantRepository) Create(ctx context.Context, g *model.AccessGrant) (*model.AccessGrant, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessGrant), args.Error(1)
}
