package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, a *entity.LoginAudit) error {
	md, err := json.Marshal(a.Metadata)
	if err != nil {
		md = []byte("{}")
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO login_audit (account_id, email, action, ip, user_agent, metadata)
		VALUES (NULLIF($1, '')::uuid, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6)
	`, a.AccountID, a.Email, a.Action, a.IP, a.UserAgent, md)
	return mapErr(err)
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
