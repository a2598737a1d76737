package catalog

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"repairshop-orders/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *logrus.Logger) Repository {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListDeviceTypes(ctx context.Context) ([]domain.DeviceType, error) {
	const q = `
SELECT id::text, name, is_active, created_at
FROM device_types
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.WithError(err).Error("catalog repo: list device types")
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeviceType
	for rows.Next() {
		var t domain.DeviceType
		if err := rows.Scan(&t.ID, &t.Name, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *postgresRepo) ListBrands(ctx context.Context, typeID string) ([]domain.Brand, error) {
	const q = `
SELECT id::text, device_type_id::text, name, is_active, created_at
FROM brands
WHERE device_type_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, typeID)
	if err != nil {
		r.logger.WithError(err).WithField("typeId", typeID).Error("catalog repo: list brands")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.DeviceTypeID, &b.Name, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *postgresRepo) ListModels(ctx context.Context, brandID string) ([]domain.Model, error) {
	const q = `
SELECT id::text, brand_id::text, name, is_active, created_at
FROM models
WHERE brand_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, brandID)
	if err != nil {
		r.logger.WithError(err).WithField("brandId", brandID).Error("catalog repo: list models")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Model
	for rows.Next() {
		var m domain.Model
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *postgresRepo) ListParts(ctx context.Context, modelID string) ([]domain.Part, error) {
	const q = `
SELECT id::text, model_id::text, name, unit_price, unit_service_fee, is_active, created_at
FROM parts
WHERE model_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, modelID)
	if err != nil {
		r.logger.WithError(err).WithField("modelId", modelID).Error("catalog repo: list parts")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Part
	for rows.Next() {
		var p domain.Part
		if err := rows.Scan(&p.ID, &p.ModelID, &p.Name, &p.UnitPrice, &p.UnitServiceFee, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) UpsertPart(ctx context.Context, part domain.Part) (*domain.Part, error) {
	const q = `
INSERT INTO parts (model_id, name, unit_price, unit_service_fee, is_active)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (model_id, name) DO UPDATE SET
    unit_price = EXCLUDED.unit_price,
    unit_service_fee = EXCLUDED.unit_service_fee,
    is_active = EXCLUDED.is_active
RETURNING id::text, created_at
`
	res := part
	err := r.pool.QueryRow(ctx, q, part.ModelID, part.Name, part.UnitPrice, part.UnitServiceFee, part.IsActive).
		Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.WithError(err).WithField("name", part.Name).Error("catalog repo: upsert part")
		return nil, err
	}
	return &res, nil
}
