package catalog

import (
	"context"

	"repairshop-orders/internal/domain"
)

// Repository lists the device/part catalog. Entries are returned with their
// isActive flag; filtering is the consumer's job.
type Repository interface {
	ListDeviceTypes(ctx context.Context) ([]domain.DeviceType, error)
	ListBrands(ctx context.Context, typeID string) ([]domain.Brand, error)
	ListModels(ctx context.Context, brandID string) ([]domain.Model, error)
	ListParts(ctx context.Context, modelID string) ([]domain.Part, error)
	UpsertPart(ctx context.Context, part domain.Part) (*domain.Part, error)
}
