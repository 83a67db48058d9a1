package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
	"github.com/farmstack/farm-api/pkg/bankcrypt"
)

// FarmerRepository persists farmer profiles. Bank fields pass through the
// field cipher on the way in and out; the encryption is invisible to callers.
type FarmerRepository struct {
	pool   *pgxpool.Pool
	cipher *bankcrypt.Cipher
}

func NewFarmerRepository(pool *pgxpool.Pool, cipher *bankcrypt.Cipher) *FarmerRepository {
	return &FarmerRepository{pool: pool, cipher: cipher}
}

func (r *FarmerRepository) Upsert(ctx context.Context, p *entity.FarmerProfile) error {
	accountNo, err := r.sealField(p.BankAccountNumber)
	if err != nil {
		return err
	}
	routing, err := r.sealField(p.BankRoutingCode)
	if err != nil {
		return err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO farmer_profiles
			(account_id, farm_name, location, farm_size_acres, livestock_count,
			 bank_account_number, bank_routing_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (account_id) DO UPDATE SET
			farm_name = EXCLUDED.farm_name,
			location = EXCLUDED.location,
			farm_size_acres = EXCLUDED.farm_size_acres,
			livestock_count = EXCLUDED.livestock_count,
			bank_account_number = EXCLUDED.bank_account_number,
			bank_routing_code = EXCLUDED.bank_routing_code,
			updated_at = now()
		RETURNING created_at, updated_at
	`, p.AccountID, p.FarmName, p.Location, p.FarmSizeAcres, p.LivestockCount,
		accountNo, routing)
	return mapErr(row.Scan(&p.CreatedAt, &p.UpdatedAt))
}

func (r *FarmerRepository) GetByAccountID(ctx context.Context, accountID string) (*entity.FarmerProfile, error) {
	p := &entity.FarmerProfile{}
	row := r.pool.QueryRow(ctx, `
		SELECT account_id, farm_name, location, farm_size_acres, livestock_count,
		       bank_account_number, bank_routing_code, created_at, updated_at
		FROM farmer_profiles
		WHERE account_id = $1
	`, accountID)
	if err := row.Scan(&p.AccountID, &p.FarmName, &p.Location, &p.FarmSizeAcres,
		&p.LivestockCount, &p.BankAccountNumber, &p.BankRoutingCode,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}

	var err error
	if p.BankAccountNumber, err = r.cipher.Decrypt(p.BankAccountNumber); err != nil {
		return nil, err
	}
	if p.BankRoutingCode, err = r.cipher.Decrypt(p.BankRoutingCode); err != nil {
		return nil, err
	}
	return p, nil
}

// sealField encrypts a bank field unless it is empty or already carries the
// iv:ciphertext shape (no double encryption on repeated saves).
func (r *FarmerRepository) sealField(v string) (string, error) {
	if v == "" || bankcrypt.IsEncrypted(v) {
		return v, nil
	}
	return r.cipher.Encrypt(v)
}

var _ repository.FarmerRepository = (*FarmerRepository)(nil)
