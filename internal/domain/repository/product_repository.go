package repository

import (
	"context"

	"github.com/farmstack/farm-api/internal/domain/entity"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	FarmerID string
	Offset   int
	Limit    int
}

type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter) ([]entity.Product, int64, error)
}
