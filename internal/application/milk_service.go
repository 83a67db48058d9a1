package application

import (
	"context"
	"time"

	"github.com/farmstack/farm-api/internal/domain/entity"
	repo "github.com/farmstack/farm-api/internal/domain/repository"
)

type MilkService struct {
	Milk repo.MilkRepository
}

func NewMilkService(milk repo.MilkRepository) *MilkService {
	return &MilkService{Milk: milk}
}

type MilkInput struct {
	RecordDate     time.Time
	Shift          string
	QuantityLiters float64
	Notes          string
}

// Record stores one production entry per farmer, date and shift. Duplicate
// entries surface as ErrConflict from the unique constraint.
func (s *MilkService) Record(ctx context.Context, farmerID string, in MilkInput) (*entity.MilkRecord, error) {
	if in.Shift != entity.ShiftMorning && in.Shift != entity.ShiftEvening {
		return nil, ErrInvalidTransition
	}
	if in.QuantityLiters <= 0 {
		return nil, ErrInvalidTransition
	}
	m := &entity.MilkRecord{
		FarmerID:       farmerID,
		RecordDate:     in.RecordDate,
		Shift:          in.Shift,
		QuantityLiters: in.QuantityLiters,
		Notes:          in.Notes,
	}
	if err := s.Milk.Create(ctx, m); err != nil {
		return nil, fromRepo(err)
	}
	return m, nil
}

func (s *MilkService) List(ctx context.Context, farmerID string, from, to time.Time) ([]entity.MilkRecord, error) {
	out, err := s.Milk.ListByFarmer(ctx, farmerID, from, to)
	return out, fromRepo(err)
}

func (s *MilkService) Delete(ctx context.Context, farmerID, id string) error {
	m, err := s.Milk.GetByID(ctx, id)
	if err != nil {
		return fromRepo(err)
	}
	if m.FarmerID != farmerID {
		return ErrForbidden
	}
	return fromRepo(s.Milk.Delete(ctx, id))
}
