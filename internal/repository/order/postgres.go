package order

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) Create(ctx context.Context, payload domain.OrderPayload) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (
    order_number,
    customer_id, customer_name, customer_phone, customer_email,
    device_type_id, device_brand_id, device_model_id,
    device_type_name, device_brand_name, device_model_name,
    loaned_type_id, loaned_brand_id, loaned_model_id,
    loaned_type_name, loaned_brand_name, loaned_model_name,
    is_loaned_device_given,
    payment_method, amount, deposit_amount, remaining_amount,
    is_central_service, central_part_prices, central_service_fee,
    branch_service_fee, branch_part_profit, total_central_payment,
    branch_id, branch_name, branch_address, branch_phone
)
VALUES (
    'R-' || nextval('order_number_seq'),
    NULLIF($1, '')::uuid, $2, $3, NULLIF($4, ''),
    NULLIF($5, '')::uuid, NULLIF($6, '')::uuid, NULLIF($7, '')::uuid,
    $8, $9, $10,
    NULLIF($11, '')::uuid, NULLIF($12, '')::uuid, NULLIF($13, '')::uuid,
    $14, $15, $16,
    $17,
    $18, $19, $20, $21,
    $22, $23, $24,
    $25, $26, $27,
    NULLIF($28, '')::uuid, $29, $30, $31
)
RETURNING id::text, order_number, created_at
`
	order := domain.Order{OrderPayload: payload}
	if err := tx.QueryRow(ctx, q, insertArgs(payload)...).Scan(&order.ID, &order.OrderNumber, &order.CreatedAt); err != nil {
		r.logger.WithError(err).Error("order repo: create")
		return nil, err
	}

	if err := insertItems(ctx, tx, order.ID, payload.Items); err != nil {
		r.logger.WithError(err).WithField("orderId", order.ID).Error("order repo: insert items")
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.WithFields(logrus.Fields{"orderId": order.ID, "orderNumber": order.OrderNumber}).Info("order repo: created")
	return &order, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, payload domain.OrderPayload) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE orders SET
    customer_id = NULLIF($2, '')::uuid, customer_name = $3, customer_phone = $4, customer_email = NULLIF($5, ''),
    device_type_id = NULLIF($6, '')::uuid, device_brand_id = NULLIF($7, '')::uuid, device_model_id = NULLIF($8, '')::uuid,
    device_type_name = $9, device_brand_name = $10, device_model_name = $11,
    loaned_type_id = NULLIF($12, '')::uuid, loaned_brand_id = NULLIF($13, '')::uuid, loaned_model_id = NULLIF($14, '')::uuid,
    loaned_type_name = $15, loaned_brand_name = $16, loaned_model_name = $17,
    is_loaned_device_given = $18,
    payment_method = $19, amount = $20, deposit_amount = $21, remaining_amount = $22,
    is_central_service = $23, central_part_prices = $24, central_service_fee = $25,
    branch_service_fee = $26, branch_part_profit = $27, total_central_payment = $28,
    branch_id = NULLIF($29, '')::uuid, branch_name = $30, branch_address = $31, branch_phone = $32
WHERE id = $1
RETURNING id::text, order_number, created_at
`
	order := domain.Order{OrderPayload: payload}
	args := append([]interface{}{id}, insertArgs(payload)...)
	if err := tx.QueryRow(ctx, q, args...).Scan(&order.ID, &order.OrderNumber, &order.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.WithError(err).WithField("orderId", id).Error("order repo: update")
		return nil, err
	}

	// Items are replaced wholesale; the payload is the source of truth.
	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return nil, err
	}
	if err := insertItems(ctx, tx, id, payload.Items); err != nil {
		r.logger.WithError(err).WithField("orderId", id).Error("order repo: replace items")
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.WithField("orderId", id).Info("order repo: updated")
	return &order, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, order_number,
    COALESCE(customer_id::text, ''), customer_name, customer_phone, COALESCE(customer_email, ''),
    COALESCE(device_type_id::text, ''), COALESCE(device_brand_id::text, ''), COALESCE(device_model_id::text, ''),
    device_type_name, device_brand_name, device_model_name,
    COALESCE(loaned_type_id::text, ''), COALESCE(loaned_brand_id::text, ''), COALESCE(loaned_model_id::text, ''),
    loaned_type_name, loaned_brand_name, loaned_model_name,
    is_loaned_device_given,
    payment_method, amount, deposit_amount, remaining_amount,
    is_central_service, central_part_prices, central_service_fee,
    branch_service_fee, branch_part_profit, total_central_payment,
    COALESCE(branch_id::text, ''), branch_name, branch_address, branch_phone,
    created_at
FROM orders
WHERE id = $1
`
	var (
		order  domain.Order
		loaned domain.DeviceRef
	)
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&order.ID, &order.OrderNumber,
		&order.CustomerID, &order.CustomerName, &order.CustomerPhone, &order.CustomerEmail,
		&order.Device.TypeID, &order.Device.BrandID, &order.Device.ModelID,
		&order.Device.TypeName, &order.Device.BrandName, &order.Device.ModelName,
		&loaned.TypeID, &loaned.BrandID, &loaned.ModelID,
		&loaned.TypeName, &loaned.BrandName, &loaned.ModelName,
		&order.IsLoanedDeviceGiven,
		&order.Payment.Method, &order.Payment.Amount, &order.Payment.DepositAmount, &order.Payment.RemainingAmount,
		&order.IsCentralService, &order.CentralPartPrices, &order.CentralServiceFee,
		&order.BranchServiceFee, &order.BranchPartProfit, &order.TotalCentralPayment,
		&order.Branch.ID, &order.Branch.Name, &order.Branch.Address, &order.Branch.Phone,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.WithError(err).WithField("orderId", id).Error("order repo: get")
		return nil, err
	}
	if order.IsLoanedDeviceGiven {
		order.LoanedDevice = &loaned
	}

	const itemsQuery = `
SELECT COALESCE(part_id::text, ''), name, quantity, unit_price
FROM order_items
WHERE order_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.PartID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &order, nil
}

func insertArgs(p domain.OrderPayload) []interface{} {
	loaned := domain.DeviceRef{}
	if p.LoanedDevice != nil {
		loaned = *p.LoanedDevice
	}
	return []interface{}{
		p.CustomerID, p.CustomerName, p.CustomerPhone, p.CustomerEmail,
		p.Device.TypeID, p.Device.BrandID, p.Device.ModelID,
		p.Device.TypeName, p.Device.BrandName, p.Device.ModelName,
		loaned.TypeID, loaned.BrandID, loaned.ModelID,
		loaned.TypeName, loaned.BrandName, loaned.ModelName,
		p.IsLoanedDeviceGiven,
		p.Payment.Method, p.Payment.Amount, p.Payment.DepositAmount, p.Payment.RemainingAmount,
		p.IsCentralService, p.CentralPartPrices, p.CentralServiceFee,
		p.BranchServiceFee, p.BranchPartProfit, p.TotalCentralPayment,
		p.Branch.ID, p.Branch.Name, p.Branch.Address, p.Branch.Phone,
	}
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID string, items []domain.OrderItem) error {
	const q = `
INSERT INTO order_items (order_id, position, part_id, name, quantity, unit_price)
VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6)
`
	for i, item := range items {
		if _, err := tx.Exec(ctx, q, orderID, i, item.PartID, item.Name, item.Quantity, item.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}
