package repository

import (
	"context"

	"github.com/farmstack/farm-api/internal/domain/entity"
)

// FarmerRepository persists farmer profiles. Implementations encrypt bank
// fields on save and decrypt them on read; callers only see plaintext.
type FarmerRepository interface {
	Upsert(ctx context.Context, p *entity.FarmerProfile) error
	GetByAccountID(ctx context.Context, accountID string) (*entity.FarmerProfile, error)
}

type CustomerRepository interface {
	Upsert(ctx context.Context, p *entity.CustomerProfile) error
	GetByAccountID(ctx context.Context, accountID string) (*entity.CustomerProfile, error)
}
