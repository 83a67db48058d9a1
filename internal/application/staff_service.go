package application

import (
	"context"
	"time"

	"github.com/farmstack/farm-api/internal/domain/entity"
	repo "github.com/farmstack/farm-api/internal/domain/repository"
)

// StaffService manages farm workers and their attendance. Every operation is
// scoped to the owning farmer.
type StaffService struct {
	Staff repo.StaffRepository
}

func NewStaffService(staff repo.StaffRepository) *StaffService {
	return &StaffService{Staff: staff}
}

type StaffInput struct {
	Name           string
	Phone          string
	Role           string
	DailyWageCents int64
}

func (s *StaffService) Create(ctx context.Context, farmerID string, in StaffInput) (*entity.Staff, error) {
	st := &entity.Staff{
		FarmerID:       farmerID,
		Name:           in.Name,
		Phone:          in.Phone,
		Role:           in.Role,
		DailyWageCents: in.DailyWageCents,
		Active:         true,
	}
	if err := s.Staff.Create(ctx, st); err != nil {
		return nil, fromRepo(err)
	}
	return st, nil
}

func (s *StaffService) List(ctx context.Context, farmerID string, offset, limit int) ([]entity.Staff, int64, error) {
	staff, total, err := s.Staff.ListByFarmer(ctx, farmerID, offset, limit)
	return staff, total, fromRepo(err)
}

func (s *StaffService) Update(ctx context.Context, farmerID, id string, in StaffInput, active *bool) (*entity.Staff, error) {
	st, err := s.owned(ctx, farmerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		st.Name = in.Name
	}
	if in.Phone != "" {
		st.Phone = in.Phone
	}
	if in.Role != "" {
		st.Role = in.Role
	}
	if in.DailyWageCents > 0 {
		st.DailyWageCents = in.DailyWageCents
	}
	if active != nil {
		st.Active = *active
	}
	if err := s.Staff.Update(ctx, st); err != nil {
		return nil, fromRepo(err)
	}
	return st, nil
}

func (s *StaffService) Delete(ctx context.Context, farmerID, id string) error {
	if _, err := s.owned(ctx, farmerID, id); err != nil {
		return err
	}
	return fromRepo(s.Staff.Delete(ctx, id))
}

// RecordAttendance writes one attendance row per staff member per day.
// A second write for the same day surfaces as ErrConflict.
func (s *StaffService) RecordAttendance(ctx context.Context, farmerID, staffID string, workDate time.Time, status string) (*entity.Attendance, error) {
	if _, err := s.owned(ctx, farmerID, staffID); err != nil {
		return nil, err
	}
	switch status {
	case entity.AttendancePresent, entity.AttendanceAbsent, entity.AttendanceHalfDay:
	default:
		return nil, ErrInvalidTransition
	}
	a := &entity.Attendance{
		StaffID:  staffID,
		WorkDate: workDate,
		Status:   status,
	}
	if err := s.Staff.RecordAttendance(ctx, a); err != nil {
		return nil, fromRepo(err)
	}
	return a, nil
}

func (s *StaffService) ListAttendance(ctx context.Context, farmerID, staffID string, from, to time.Time) ([]entity.Attendance, error) {
	if _, err := s.owned(ctx, farmerID, staffID); err != nil {
		return nil, err
	}
	out, err := s.Staff.ListAttendance(ctx, staffID, from, to)
	return out, fromRepo(err)
}

func (s *StaffService) owned(ctx context.Context, farmerID, id string) (*entity.Staff, error) {
	st, err := s.Staff.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err)
	}
	if st.FarmerID != farmerID {
		return nil, ErrForbidden
	}
	return st, nil
}
