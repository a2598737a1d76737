package order

import (
	"context"

	"repairshop-orders/internal/domain"
)

// Repository persists finalized order payloads.
type Repository interface {
	Create(ctx context.Context, payload domain.OrderPayload) (*domain.Order, error)
	Update(ctx context.Context, id string, payload domain.OrderPayload) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
