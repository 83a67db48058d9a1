package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
)

type MilkRepository struct {
	pool *pgxpool.Pool
}

func NewMilkRepository(pool *pgxpool.Pool) *MilkRepository {
	return &MilkRepository{pool: pool}
}

func (r *MilkRepository) Create(ctx context.Context, m *entity.MilkRecord) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO milk_production (farmer_id, record_date, shift, quantity_liters, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, m.FarmerID, m.RecordDate, m.Shift, m.QuantityLiters, m.Notes)
	return mapErr(row.Scan(&m.ID, &m.CreatedAt))
}

func (r *MilkRepository) GetByID(ctx context.Context, id string) (*entity.MilkRecord, error) {
	m := &entity.MilkRecord{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, farmer_id, record_date, shift, quantity_liters, notes, created_at
		FROM milk_production WHERE id = $1
	`, id)
	if err := row.Scan(&m.ID, &m.FarmerID, &m.RecordDate, &m.Shift,
		&m.QuantityLiters, &m.Notes, &m.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

func (r *MilkRepository) ListByFarmer(ctx context.Context, farmerID string, from, to time.Time) ([]entity.MilkRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, farmer_id, record_date, shift, quantity_liters, notes, created_at
		FROM milk_production
		WHERE farmer_id = $1 AND record_date BETWEEN $2 AND $3
		ORDER BY record_date, shift
	`, farmerID, from, to)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []entity.MilkRecord
	for rows.Next() {
		var m entity.MilkRecord
		if err := rows.Scan(&m.ID, &m.FarmerID, &m.RecordDate, &m.Shift,
			&m.QuantityLiters, &m.Notes, &m.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, m)
	}
	return out, mapErr(rows.Err())
}

func (r *MilkRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM milk_production WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.MilkRepository = (*MilkRepository)(nil)
