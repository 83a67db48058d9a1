package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
)

type fakeProducts struct {
	products map[string]*entity.Product
}

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProducts) List(context.Context, repository.ProductFilter) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

type fakeOrders struct {
	orders       map[string]*entity.Order
	createErr    error
	cancelErr    error // consumed by the next Cancel call
	statusErr    error // consumed by the next UpdateStatus call
	restored     int
	statusWrites []string
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[string]*entity.Order{}}
}

func (f *fakeOrders) Create(_ context.Context, o *entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	o.ID = "order-1"
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) ListByCustomer(context.Context, string, int, int) ([]entity.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrders) ListByFarmer(context.Context, string, int, int) ([]entity.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id, from, to string) error {
	if err := f.statusErr; err != nil {
		f.statusErr = nil
		return err
	}
	o, ok := f.orders[id]
	if !ok || o.Status != from {
		return repository.ErrStaleStatus
	}
	o.Status = to
	f.statusWrites = append(f.statusWrites, to)
	return nil
}

// Cancel mirrors the real repository: status flip and stock restore are one
// atomic unit, so a failed write restores nothing.
func (f *fakeOrders) Cancel(_ context.Context, o *entity.Order) error {
	if err := f.cancelErr; err != nil {
		f.cancelErr = nil
		return err
	}
	stored, ok := f.orders[o.ID]
	if !ok || (stored.Status != entity.OrderPending && stored.Status != entity.OrderConfirmed) {
		return repository.ErrStaleStatus
	}
	stored.Status = entity.OrderCancelled
	f.statusWrites = append(f.statusWrites, entity.OrderCancelled)
	f.restored++
	return nil
}

func newOrderTestService(orders *fakeOrders, products *fakeProducts) *OrderService {
	return NewOrderService(orders, products, nil, nil, nil, "farm-api")
}

func seedProducts() *fakeProducts {
	return &fakeProducts{products: map[string]*entity.Product{
		"milk": {ID: "milk", FarmerID: "f1", Name: "Fresh Milk", PriceCents: 150, Stock: 100},
		"eggs": {ID: "eggs", FarmerID: "f1", Name: "Eggs", PriceCents: 400, Stock: 30},
	}}
}

func TestPlaceOrderSnapshotsPricesAndTotals(t *testing.T) {
	t.Parallel()
	orders := newFakeOrders()
	svc := newOrderTestService(orders, seedProducts())

	o, err := svc.Place(context.Background(), "cust-1", []OrderLineInput{
		{ProductID: "milk", Quantity: 4},
		{ProductID: "eggs", Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Equal(t, int64(4*150+2*400), o.TotalCents)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Fresh Milk", o.Items[0].ProductName)
	assert.Equal(t, int64(150), o.Items[0].UnitPriceCents)
}

func TestPlaceOrderRejectsBadLines(t *testing.T) {
	t.Parallel()
	orders := newFakeOrders()
	svc := newOrderTestService(orders, seedProducts())

	_, err := svc.Place(context.Background(), "cust-1", nil)
	assert.Error(t, err)

	_, err = svc.Place(context.Background(), "cust-1", []OrderLineInput{{ProductID: "milk", Quantity: 0}})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.Place(context.Background(), "cust-1", []OrderLineInput{{ProductID: "missing", Quantity: 1}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrderPropagatesStockShortage(t *testing.T) {
	t.Parallel()
	orders := newFakeOrders()
	orders.createErr = repository.ErrInsufficientStock
	svc := newOrderTestService(orders, seedProducts())

	_, err := svc.Place(context.Background(), "cust-1", []OrderLineInput{{ProductID: "milk", Quantity: 5}})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestTransitionRules(t *testing.T) {
	t.Parallel()
	farmer := &entity.Account{ID: "f1", Roles: []string{entity.RoleUser, entity.RoleFarmer}}
	customer := &entity.Account{ID: "cust-1", Roles: []string{entity.RoleUser, entity.RoleCustomer}}
	stranger := &entity.Account{ID: "cust-2", Roles: []string{entity.RoleUser, entity.RoleCustomer}}

	t.Run("farmer confirms then delivers", func(t *testing.T) {
		orders := newFakeOrders()
		svc := newOrderTestService(orders, seedProducts())
		orders.orders["order-1"] = &entity.Order{ID: "order-1", CustomerID: "cust-1", Status: entity.OrderPending}

		o, err := svc.Transition(context.Background(), farmer, "order-1", entity.OrderConfirmed)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderConfirmed, o.Status)

		o, err = svc.Transition(context.Background(), farmer, "order-1", entity.OrderDelivered)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderDelivered, o.Status)
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		orders := newFakeOrders()
		svc := newOrderTestService(orders, seedProducts())
		orders.orders["order-1"] = &entity.Order{ID: "order-1", CustomerID: "cust-1", Status: entity.OrderDelivered}

		_, err := svc.Transition(context.Background(), farmer, "order-1", entity.OrderCancelled)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("customer cancel restores stock", func(t *testing.T) {
		orders := newFakeOrders()
		svc := newOrderTestService(orders, seedProducts())
		orders.orders["order-1"] = &entity.Order{ID: "order-1", CustomerID: "cust-1", Status: entity.OrderPending}

		o, err := svc.Transition(context.Background(), customer, "order-1", entity.OrderCancelled)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderCancelled, o.Status)
		assert.Equal(t, 1, orders.restored)
	})

	t.Run("customer cannot confirm", func(t *testing.T) {
		orders := newFakeOrders()
		svc := newOrderTestService(orders, seedProducts())
		orders.orders["order-1"] = &entity.Order{ID: "order-1", CustomerID: "cust-1", Status: entity.OrderPending}

		_, err := svc.Transition(context.Background(), customer, "order-1", entity.OrderConfirmed)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("other customers cannot touch the order", func(t *testing.T) {
		orders := newFakeOrders()
		svc := newOrderTestService(orders, seedProducts())
		orders.orders["order-1"] = &entity.Order{ID: "order-1", CustomerID: "cust-1", Status: entity.OrderPending}

		_, err := svc.Transition(context.Background(), stranger, "order-1", entity.OrderCancelled)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("customer cancel is pending only", func(t *testing.T) {
		orders := newFakeOrders()
		svc := newOrderTestService(orders, seedProducts())
		orders.orders["order-1"] = &entity.Order{ID: "order-1", CustomerID: "cust-1", Status: entity.OrderConfirmed}

		_, err := svc.Transition(context.Background(), customer, "order-1", entity.OrderCancelled)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Zero(t, orders.restored)

		// Farmers may still cancel a confirmed order.
		o, err := svc.Transition(context.Background(), farmer, "order-1", entity.OrderCancelled)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderCancelled, o.Status)
		assert.Equal(t, 1, orders.restored)
	})
}

func TestCancelFailureRestoresStockExactlyOnce(t *testing.T) {
	t.Parallel()
	customer := &entity.Account{ID: "cust-1", Roles: []string{entity.RoleUser, entity.RoleCustomer}}
	orders := newFakeOrders()
	svc := newOrderTestService(orders, seedProducts())
	orders.orders["order-1"] = &entity.Order{ID: "order-1", CustomerID: "cust-1", Status: entity.OrderPending}
	orders.cancelErr = errors.New("write failed")

	// The failed cancellation rolls back as a unit: no stock moves and the
	// order stays pending.
	_, err := svc.Transition(context.Background(), customer, "order-1", entity.OrderCancelled)
	require.Error(t, err)
	assert.Zero(t, orders.restored)
	assert.Equal(t, entity.OrderPending, orders.orders["order-1"].Status)

	// Retrying succeeds and restores stock a single time.
	o, err := svc.Transition(context.Background(), customer, "order-1", entity.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, o.Status)
	assert.Equal(t, 1, orders.restored)

	// A third attempt is refused (the order is no longer pending) and stock
	// stays restored a single time.
	_, err = svc.Transition(context.Background(), customer, "order-1", entity.OrderCancelled)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 1, orders.restored)
}

func TestTransitionRejectsStaleStatusWrite(t *testing.T) {
	t.Parallel()
	farmer := &entity.Account{ID: "f1", Roles: []string{entity.RoleUser, entity.RoleFarmer}}
	orders := newFakeOrders()
	svc := newOrderTestService(orders, seedProducts())
	orders.orders["order-1"] = &entity.Order{ID: "order-1", CustomerID: "cust-1", Status: entity.OrderPending}
	// Another writer moves the order between our read and write.
	orders.statusErr = repository.ErrStaleStatus

	_, err := svc.Transition(context.Background(), farmer, "order-1", entity.OrderConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, orders.statusWrites)
}
