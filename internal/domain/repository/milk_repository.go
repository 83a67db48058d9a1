package repository

import (
	"context"
	"time"

	"github.com/farmstack/farm-api/internal/domain/entity"
)

type MilkRepository interface {
	// Create inserts one record per farmer, date and shift; duplicates
	// surface as a unique-constraint conflict.
	Create(ctx context.Context, r *entity.MilkRecord) error
	GetByID(ctx context.Context, id string) (*entity.MilkRecord, error)
	ListByFarmer(ctx context.Context, farmerID string, from, to time.Time) ([]entity.MilkRecord, error)
	Delete(ctx context.Context, id string) error
}
