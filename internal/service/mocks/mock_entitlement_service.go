package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockEntitlementService struct {
	mock.Mock
}

func (m *MockEntitlementService) IsEntitled(ctx context.Context, userID string) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}
