package repository

import (
	"context"
	"time"

	"github.com/farmstack/farm-api/internal/domain/entity"
)

type StaffRepository interface {
	Create(ctx context.Context, s *entity.Staff) error
	GetByID(ctx context.Context, id string) (*entity.Staff, error)
	ListByFarmer(ctx context.Context, farmerID string, offset, limit int) ([]entity.Staff, int64, error)
	Update(ctx context.Context, s *entity.Staff) error
	Delete(ctx context.Context, id string) error

	// RecordAttendance inserts one record per staff member per work date;
	// duplicates surface as a unique-constraint conflict.
	RecordAttendance(ctx context.Context, a *entity.Attendance) error
	ListAttendance(ctx context.Context, staffID string, from, to time.Time) ([]entity.Attendance, error)
}
