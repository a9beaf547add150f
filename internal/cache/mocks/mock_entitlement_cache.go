package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockEntitlementCache struct {
	mock.Mock
}

func (m *MockEntitlementCache) Entitled(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntitlementCache) MarkEntitled(ctx context.Context, userID string, ttl time.Duration) error {
	args := m.Called(ctx, userID, ttl)
	return args.Error(0)
}
