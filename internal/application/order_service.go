package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/farmstack/farm-api/internal/domain/entity"
	repo "github.com/farmstack/farm-api/internal/domain/repository"
	"github.com/farmstack/farm-api/pkg/helpers"
	"github.com/farmstack/farm-api/pkg/mailer"
)

// OrderService places orders and drives the status machine. Stock is
// reserved at placement inside the repository transaction and restored on
// cancellation.
type OrderService struct {
	Orders   repo.OrderRepository
	Products repo.ProductRepository
	Accounts repo.AccountRepository
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
	AppName  string
}

func NewOrderService(orders repo.OrderRepository, products repo.ProductRepository,
	accounts repo.AccountRepository, pub *helpers.RabbitPublisher,
	logger *logrus.Logger, appName string) *OrderService {
	return &OrderService{
		Orders:   orders,
		Products: products,
		Accounts: accounts,
		Pub:      pub,
		Logger:   logger,
		AppName:  appName,
	}
}

type OrderLineInput struct {
	ProductID string
	Quantity  int
}

// Place builds an order from the requested lines. Prices and names are
// snapshotted from the catalog at placement time so later product edits do
// not rewrite order history.
func (s *OrderService) Place(ctx context.Context, customerID string, lines []OrderLineInput) (*entity.Order, error) {
	if len(lines) == 0 {
		return nil, ErrInvalidTransition
	}

	o := &entity.Order{
		CustomerID: customerID,
		Status:     entity.OrderPending,
	}
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			return nil, ErrInsufficientStock
		}
		p, err := s.Products.GetByID(ctx, ln.ProductID)
		if err != nil {
			return nil, fromRepo(err)
		}
		o.Items = append(o.Items, entity.OrderItem{
			ProductID:      p.ID,
			ProductName:    p.Name,
			Quantity:       ln.Quantity,
			UnitPriceCents: p.PriceCents,
		})
		o.TotalCents += p.PriceCents * int64(ln.Quantity)
	}

	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, fromRepo(err)
	}
	return o, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*entity.Order, error) {
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err)
	}
	return o, nil
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID string, offset, limit int) ([]entity.Order, int64, error) {
	orders, total, err := s.Orders.ListByCustomer(ctx, customerID, offset, limit)
	return orders, total, fromRepo(err)
}

func (s *OrderService) ListForFarmer(ctx context.Context, farmerID string, offset, limit int) ([]entity.Order, int64, error) {
	orders, total, err := s.Orders.ListByFarmer(ctx, farmerID, offset, limit)
	return orders, total, fromRepo(err)
}

// Transition moves the order to a new status. Farmers and admins confirm and
// deliver; the owning customer may cancel a pending order. Cancellation and
// its stock restore commit as one repository transaction, so a failed or
// raced write never restores stock.
func (s *OrderService) Transition(ctx context.Context, actor *entity.Account, id, to string) (*entity.Order, error) {
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err)
	}

	switch {
	case actor.HasAnyRole(entity.RoleAdmin, entity.RoleFarmer):
	case o.CustomerID == actor.ID && to == entity.OrderCancelled && o.Status == entity.OrderPending:
	default:
		return nil, ErrForbidden
	}

	if !entity.CanTransitionOrder(o.Status, to) {
		return nil, ErrInvalidTransition
	}

	if to == entity.OrderCancelled {
		if err := s.Orders.Cancel(ctx, o); err != nil {
			return nil, fromRepo(err)
		}
	} else if err := s.Orders.UpdateStatus(ctx, id, o.Status, to); err != nil {
		return nil, fromRepo(err)
	}
	o.Status = to

	s.notifyStatus(ctx, o)
	return o, nil
}

func (s *OrderService) notifyStatus(ctx context.Context, o *entity.Order) {
	if s.Pub == nil || s.Accounts == nil {
		return
	}
	acct, err := s.Accounts.GetByID(ctx, o.CustomerID)
	if err != nil {
		s.logWarn("load customer for notification failed", err, o.CustomerID)
		return
	}
	job := mailer.Job{To: acct.Email, Kind: mailer.KindOrderConfirmed, Data: map[string]any{
		"Name":    acct.Name,
		"AppName": s.AppName,
		"OrderID": o.ID,
		"Status":  o.Status,
	}}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.logWarn("publish order notification failed", err, o.ID)
	}
}

func (s *OrderService) logWarn(msg string, err error, subject string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("subject", subject).Warn(msg)
	}
}
