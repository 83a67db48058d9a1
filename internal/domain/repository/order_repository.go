package repository

import (
	"context"

	"github.com/farmstack/farm-api/internal/domain/entity"
)

type OrderRepository interface {
	// Create inserts the order and its items and decrements product stock in
	// one transaction. Returns ErrInsufficientStock from the implementation
	// when any line exceeds the available stock.
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByCustomer(ctx context.Context, customerID string, offset, limit int) ([]entity.Order, int64, error)
	// ListByFarmer returns orders containing at least one of the farmer's
	// products.
	ListByFarmer(ctx context.Context, farmerID string, offset, limit int) ([]entity.Order, int64, error)
	// UpdateStatus moves the order from -> to, guarded on the current status.
	// Returns ErrStaleStatus when the order is no longer in `from`.
	UpdateStatus(ctx context.Context, id, from, to string) error
	// Cancel restores the order's quantities to product stock and marks it
	// cancelled in one transaction, guarded on a cancellable status. Returns
	// ErrStaleStatus when the order was already cancelled or delivered, in
	// which case no stock moves.
	Cancel(ctx context.Context, o *entity.Order) error
}
