package repository

import (
	"context"

	"studynotes/internal/model"
)

// OrderRepository stores the provider orders issued at checkout.
type OrderRepository interface {
	Create(ctx context.Context, o *model.PaymentOrder) (*model.PaymentOrder, error)

	// FindByID returns the order with the provider's order id.
	FindByID(ctx context.Context, id string) (*model.PaymentOrder, error)
}
