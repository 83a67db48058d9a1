package application

import (
	"context"

	"github.com/farmstack/farm-api/internal/domain/entity"
	repo "github.com/farmstack/farm-api/internal/domain/repository"
)

// FarmerService manages farmer profiles. Bank fields flow through here in
// plaintext; the repository encrypts on save and decrypts on read.
type FarmerService struct {
	Farmers repo.FarmerRepository
}

func NewFarmerService(farmers repo.FarmerRepository) *FarmerService {
	return &FarmerService{Farmers: farmers}
}

func (s *FarmerService) Get(ctx context.Context, accountID string) (*entity.FarmerProfile, error) {
	p, err := s.Farmers.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fromRepo(err)
	}
	return p, nil
}

type UpdateFarmerInput struct {
	FarmName          string
	Location          string
	FarmSizeAcres     float64
	LivestockCount    int
	BankAccountNumber string
	BankRoutingCode   string
}

// Update merges the input over the stored profile. Empty bank fields leave
// the stored values untouched so a profile edit never wipes payment details.
func (s *FarmerService) Update(ctx context.Context, accountID string, in UpdateFarmerInput) (*entity.FarmerProfile, error) {
	p, err := s.Farmers.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fromRepo(err)
	}

	if in.FarmName != "" {
		p.FarmName = in.FarmName
	}
	if in.Location != "" {
		p.Location = in.Location
	}
	if in.FarmSizeAcres > 0 {
		p.FarmSizeAcres = in.FarmSizeAcres
	}
	if in.LivestockCount > 0 {
		p.LivestockCount = in.LivestockCount
	}
	if in.BankAccountNumber != "" {
		p.BankAccountNumber = in.BankAccountNumber
	}
	if in.BankRoutingCode != "" {
		p.BankRoutingCode = in.BankRoutingCode
	}

	if err := s.Farmers.Upsert(ctx, p); err != nil {
		return nil, fromRepo(err)
	}
	return p, nil
}
