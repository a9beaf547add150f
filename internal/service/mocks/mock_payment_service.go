package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studynotes/internal/model"
	"studynotes/internal/service"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Checkout(ctx context.Context, id model.Identity) (*service.CheckoutOptions, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckoutOptions), args.Error(1)
}

func (m *MockPaymentService) Confirm(ctx context.Context, id model.Identity, in service.ConfirmInput) (*model.AccessGrant, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessGrant), args.Error(1)
}

func (m *MockPaymentService) Status(ctx context.Context, id model.Identity) (*service.PlanStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PlanStatus), args.Error(1)
}
