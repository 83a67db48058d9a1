package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts the order with its items and decrements stock in one
// transaction. The conditional UPDATE guards against overselling: zero rows
// affected means another order got the stock first.
func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (customer_id, status, total_cents)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, o.CustomerID, o.Status, o.TotalCents)
	if err := row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return mapErr(err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID

		res, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $1, updated_at = now()
			WHERE id = $2 AND stock >= $1
		`, it.Quantity, it.ProductID)
		if err != nil {
			return mapErr(err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrInsufficientStock
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price_cents)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.UnitPriceCents)
		if err := row.Scan(&it.ID); err != nil {
			return mapErr(err)
		}
	}

	return mapErr(tx.Commit(ctx))
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o := &entity.Order{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, customer_id, status, total_cents, created_at, updated_at
		FROM orders WHERE id = $1
	`, id)
	if err := row.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price_cents
		FROM order_items WHERE order_id = $1
	`, id)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, mapErr(err)
		}
		o.Items = append(o.Items, it)
	}
	return o, mapErr(rows.Err())
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string, offset, limit int) ([]entity.Order, int64, error) {
	return r.list(ctx, `customer_id = $1`, customerID, offset, limit)
}

func (r *OrderRepository) ListByFarmer(ctx context.Context, farmerID string, offset, limit int) ([]entity.Order, int64, error) {
	return r.list(ctx, `id IN (
		SELECT DISTINCT oi.order_id
		FROM order_items oi JOIN products p ON p.id = oi.product_id
		WHERE p.farmer_id = $1
	)`, farmerID, offset, limit)
}

func (r *OrderRepository) list(ctx context.Context, where string, arg any, offset, limit int) ([]entity.Order, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders WHERE `+where, arg).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_id, status, total_cents, created_at, updated_at
		FROM orders
		WHERE `+where+`
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`, arg, offset, limit)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, o)
	}
	return out, total, mapErr(rows.Err())
}

// UpdateStatus is guarded on the current status so two racing writers cannot
// both move the same order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, from, to string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrStaleStatus
	}
	return nil
}

// Cancel restores quantities to product stock and flips the order to
// cancelled in one transaction. The conditional UPDATE on orders is the
// gate: if it matches nothing the order already left a cancellable status
// and the whole transaction rolls back, so stock is never restored twice.
func (r *OrderRepository) Cancel(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND status IN ($3, $4)
	`, entity.OrderCancelled, o.ID, entity.OrderPending, entity.OrderConfirmed)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrStaleStatus
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock + $1, updated_at = now() WHERE id = $2
		`, it.Quantity, it.ProductID); err != nil {
			return mapErr(err)
		}
	}
	return mapErr(tx.Commit(ctx))
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
