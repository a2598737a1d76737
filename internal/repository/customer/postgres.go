package customer

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"repairshop-orders/internal/domain"
	"repairshop-orders/internal/workflow"
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

func (r *postgresRepo) Search(ctx context.Context, term string) ([]domain.Customer, error) {
	const q = `
SELECT id::text, name, phone, COALESCE(email, ''), COALESCE(preferred_language, ''), created_at
FROM customers
WHERE name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'
ORDER BY name ASC
LIMIT 20
`
	rows, err := r.pool.Query(ctx, q, strings.TrimSpace(term))
	if err != nil {
		r.logger.WithError(err).Error("customer repo: search")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.PreferredLanguage, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, in workflow.CreateCustomerInput) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (name, phone, email, preferred_language)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
RETURNING id::text, created_at
`
	c := domain.Customer{
		Name:              in.Name,
		Phone:             in.Phone,
		Email:             in.Email,
		PreferredLanguage: in.PreferredLanguage,
	}
	if err := r.pool.QueryRow(ctx, q, in.Name, in.Phone, in.Email, in.PreferredLanguage).Scan(&c.ID, &c.CreatedAt); err != nil {
		r.logger.WithError(err).Error("customer repo: create")
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, name, phone, COALESCE(email, ''), COALESCE(preferred_language, ''), created_at
FROM customers
WHERE id = $1
`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.PreferredLanguage, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.WithError(err).WithField("id", id).Error("customer repo: get")
		return nil, err
	}
	return &c, nil
}
