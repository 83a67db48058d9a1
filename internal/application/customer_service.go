package application

import (
	"context"

	"github.com/farmstack/farm-api/internal/domain/entity"
	repo "github.com/farmstack/farm-api/internal/domain/repository"
)

type CustomerService struct {
	Customers repo.CustomerRepository
}

func NewCustomerService(customers repo.CustomerRepository) *CustomerService {
	return &CustomerService{Customers: customers}
}

func (s *CustomerService) Get(ctx context.Context, accountID string) (*entity.CustomerProfile, error) {
	p, err := s.Customers.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fromRepo(err)
	}
	return p, nil
}

type UpdateCustomerInput struct {
	DeliveryAddress string
	Preferences     map[string]any
}

func (s *CustomerService) Update(ctx context.Context, accountID string, in UpdateCustomerInput) (*entity.CustomerProfile, error) {
	p, err := s.Customers.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fromRepo(err)
	}
	if in.DeliveryAddress != "" {
		p.DeliveryAddress = in.DeliveryAddress
	}
	if in.Preferences != nil {
		p.Preferences = in.Preferences
	}
	if err := s.Customers.Upsert(ctx, p); err != nil {
		return nil, fromRepo(err)
	}
	return p, nil
}
