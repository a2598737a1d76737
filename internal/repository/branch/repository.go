package branch

import (
	"context"

	"repairshop-orders/internal/domain"
)

type Repository interface {
	GetByKey(ctx context.Context, key string) (*domain.Branch, error)
}
