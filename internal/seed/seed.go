package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type partSeed struct {
	Name           string
	UnitPrice      int64
	UnitServiceFee int64
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureBranch(ctx, pool, "main", "Main Street Branch", "1 Main St", "555-0199"); err != nil {
		return fmt.Errorf("ensure branch: %w", err)
	}

	typeID, err := ensureDeviceType(ctx, pool, "Phone")
	if err != nil {
		return fmt.Errorf("ensure device type: %w", err)
	}

	brands := map[string][]string{
		"Apple":   {"iPhone 13", "iPhone 14"},
		"Samsung": {"Galaxy S23"},
	}
	parts := map[string][]partSeed{
		"iPhone 13":  {{Name: "Screen", UnitPrice: 110, UnitServiceFee: 15}, {Name: "Battery", UnitPrice: 45, UnitServiceFee: 10}},
		"iPhone 14":  {{Name: "Screen", UnitPrice: 120, UnitServiceFee: 15}, {Name: "Battery", UnitPrice: 50, UnitServiceFee: 10}},
		"Galaxy S23": {{Name: "Screen", UnitPrice: 140, UnitServiceFee: 20}, {Name: "Charging Port", UnitPrice: 30, UnitServiceFee: 10}},
	}

	for brandName, modelNames := range brands {
		brandID, err := ensureBrand(ctx, pool, typeID, brandName)
		if err != nil {
			return fmt.Errorf("ensure brand %s: %w", brandName, err)
		}
		for _, modelName := range modelNames {
			modelID, err := ensureModel(ctx, pool, brandID, modelName)
			if err != nil {
				return fmt.Errorf("ensure model %s: %w", modelName, err)
			}
			for _, p := range parts[modelName] {
				if err := ensurePart(ctx, pool, modelID, p); err != nil {
					return fmt.Errorf("ensure part %s/%s: %w", modelName, p.Name, err)
				}
			}
		}
	}

	return nil
}

func ensureBranch(ctx context.Context, pool *pgxpool.Pool, key, name, address, phone string) error {
	const q = `
INSERT INTO branches (key, name, address, phone)
VALUES ($1, $2, $3, $4)
ON CONFLICT (key) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address, phone = EXCLUDED.phone
`
	_, err := pool.Exec(ctx, q, key, name, address, phone)
	return err
}

func ensureDeviceType(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	const q = `
INSERT INTO device_types (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET is_active = true
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureBrand(ctx context.Context, pool *pgxpool.Pool, typeID, name string) (string, error) {
	const q = `
INSERT INTO brands (device_type_id, name)
VALUES ($1, $2)
ON CONFLICT (device_type_id, name) DO UPDATE SET is_active = true
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, typeID, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureModel(ctx context.Context, pool *pgxpool.Pool, brandID, name string) (string, error) {
	const q = `
INSERT INTO models (brand_id, name)
VALUES ($1, $2)
ON CONFLICT (brand_id, name) DO UPDATE SET is_active = true
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, brandID, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensurePart(ctx context.Context, pool *pgxpool.Pool, modelID string, p partSeed) error {
	const q = `
INSERT INTO parts (model_id, name, unit_price, unit_service_fee)
VALUES ($1, $2, $3, $4)
ON CONFLICT (model_id, name) DO UPDATE SET
    unit_price = EXCLUDED.unit_price,
    unit_service_fee = EXCLUDED.unit_service_fee,
    is_active = true
`
	_, err := pool.Exec(ctx, q, modelID, p.Name, p.UnitPrice, p.UnitServiceFee)
	return err
}
