package customer

import (
	"context"

	"repairshop-orders/internal/domain"
	"repairshop-orders/internal/workflow"
)

// Repository is the customer directory consumed by the order workflow.
type Repository interface {
	Search(ctx context.Context, term string) ([]domain.Customer, error)
	Create(ctx context.Context, in workflow.CreateCustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}
