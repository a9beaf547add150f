package repository

import (
	"context"
	"time"

	"studynotes/internal/model"
)

// GrantRepository defines data access for access grants.
type GrantRepository interface {
	// FindActive returns one grant of userID that is active and expires after now.
	FindActive(ctx context.Context, userID string, now time.Time) (*model.AccessGrant, error)

	// FindByPaymentID returns the grant written for a payment reference.
	FindByPaymentID(ctx context.Context, paymentID string) (*model.AccessGrant, error)

	// Create inserts a grant. Inserting a second grant for the same payment reference fails.
	Create(ctx context.Context, g *model.AccessGrant) (*model.AccessGrant, error)
}
