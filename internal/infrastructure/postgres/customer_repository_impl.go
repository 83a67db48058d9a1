package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) Upsert(ctx context.Context, p *entity.CustomerProfile) error {
	if p.Preferences == nil {
		p.Preferences = map[string]any{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO customer_profiles (account_id, delivery_address, preferences)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO UPDATE SET
			delivery_address = EXCLUDED.delivery_address,
			preferences = EXCLUDED.preferences,
			updated_at = now()
		RETURNING created_at, updated_at
	`, p.AccountID, p.DeliveryAddress, p.Preferences)
	return mapErr(row.Scan(&p.CreatedAt, &p.UpdatedAt))
}

func (r *CustomerRepository) GetByAccountID(ctx context.Context, accountID string) (*entity.CustomerProfile, error) {
	p := &entity.CustomerProfile{}
	row := r.pool.QueryRow(ctx, `
		SELECT account_id, delivery_address, preferences, created_at, updated_at
		FROM customer_profiles
		WHERE account_id = $1
	`, accountID)
	if err := row.Scan(&p.AccountID, &p.DeliveryAddress, &p.Preferences,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)
