package branch

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"repairshop-orders/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByKey(ctx context.Context, key string) (*domain.Branch, error) {
	const q = `
SELECT id::text, key, name, COALESCE(address, ''), COALESCE(phone, ''), created_at
FROM branches
WHERE key = $1
`
	var b domain.Branch
	err := r.pool.QueryRow(ctx, q, key).Scan(&b.ID, &b.Key, &b.Name, &b.Address, &b.Phone, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
