package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, email, COALESCE(phone, ''), COALESCE(national_id, ''), name,
	password_hash, roles, failed_attempts, lock_until, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, phone, national_id, name, password_hash, roles)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, a.Email, a.Phone, a.NationalID, a.Name, a.PasswordHash, a.Roles)
	return mapErr(row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *AccountRepository) getBy(ctx context.Context, where string, arg any) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE `+where, arg)
	if err := row.Scan(&a.ID, &a.Email, &a.Phone, &a.NationalID, &a.Name, &a.PasswordHash,
		&a.Roles, &a.FailedAttempts, &a.LockUntil, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *AccountRepository) Update(ctx context.Context, a *entity.Account) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $1, phone = NULLIF($2, ''), password_hash = $3, updated_at = now()
		WHERE id = $4
	`, a.Name, a.Phone, a.PasswordHash, a.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) UpdateLockout(ctx context.Context, id string, failedAttempts int, lockUntil *time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET failed_attempts = $1, lock_until = $2, updated_at = now()
		WHERE id = $3
	`, failedAttempts, lockUntil, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context, role string, offset, limit int) ([]entity.Account, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM accounts WHERE $1 = '' OR $1 = ANY(roles)`, role,
	).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE $1 = '' OR $1 = ANY(roles)
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`, role, offset, limit)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Phone, &a.NationalID, &a.Name, &a.PasswordHash,
			&a.Roles, &a.FailedAttempts, &a.LockUntil, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, a)
	}
	return out, total, mapErr(rows.Err())
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
