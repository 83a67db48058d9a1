package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
)

type StaffRepository struct {
	pool *pgxpool.Pool
}

func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

func (r *StaffRepository) Create(ctx context.Context, s *entity.Staff) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO staff (farmer_id, name, phone, role, daily_wage_cents, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, s.FarmerID, s.Name, s.Phone, s.Role, s.DailyWageCents, s.Active)
	return mapErr(row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *StaffRepository) GetByID(ctx context.Context, id string) (*entity.Staff, error) {
	s := &entity.Staff{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, farmer_id, name, phone, role, daily_wage_cents, active, created_at, updated_at
		FROM staff WHERE id = $1
	`, id)
	if err := row.Scan(&s.ID, &s.FarmerID, &s.Name, &s.Phone, &s.Role,
		&s.DailyWageCents, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return s, nil
}

func (r *StaffRepository) ListByFarmer(ctx context.Context, farmerID string, offset, limit int) ([]entity.Staff, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM staff WHERE farmer_id = $1`, farmerID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, farmer_id, name, phone, role, daily_wage_cents, active, created_at, updated_at
		FROM staff
		WHERE farmer_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`, farmerID, offset, limit)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []entity.Staff
	for rows.Next() {
		var s entity.Staff
		if err := rows.Scan(&s.ID, &s.FarmerID, &s.Name, &s.Phone, &s.Role,
			&s.DailyWageCents, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, s)
	}
	return out, total, mapErr(rows.Err())
}

func (r *StaffRepository) Update(ctx context.Context, s *entity.Staff) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE staff
		SET name = $1, phone = $2, role = $3, daily_wage_cents = $4, active = $5, updated_at = now()
		WHERE id = $6
	`, s.Name, s.Phone, s.Role, s.DailyWageCents, s.Active, s.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *StaffRepository) RecordAttendance(ctx context.Context, a *entity.Attendance) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO attendance (staff_id, work_date, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, a.StaffID, a.WorkDate, a.Status)
	return mapErr(row.Scan(&a.ID, &a.CreatedAt))
}

func (r *StaffRepository) ListAttendance(ctx context.Context, staffID string, from, to time.Time) ([]entity.Attendance, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, staff_id, work_date, status, created_at
		FROM attendance
		WHERE staff_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date
	`, staffID, from, to)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []entity.Attendance
	for rows.Next() {
		var a entity.Attendance
		if err := rows.Scan(&a.ID, &a.StaffID, &a.WorkDate, &a.Status, &a.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, a)
	}
	return out, mapErr(rows.Err())
}

var _ repository.StaffRepository = (*StaffRepository)(nil)
