package repository

import (
	"context"
	"time"

	"github.com/farmstack/farm-api/internal/domain/entity"
)

// AccountRepository defines persistence for the account aggregate.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	// Update persists mutable profile fields (name, phone, password hash).
	// Email, roles and national id are immutable after registration.
	Update(ctx context.Context, a *entity.Account) error
	// UpdateLockout persists the lockout counters. Read-modify-write: two
	// concurrent login attempts can race; last write wins.
	UpdateLockout(ctx context.Context, id string, failedAttempts int, lockUntil *time.Time) error
	List(ctx context.Context, role string, offset, limit int) ([]entity.Account, int64, error)
}

// AuditRepository records authentication events, best effort.
type AuditRepository interface {
	Insert(ctx context.Context, a *entity.LoginAudit) error
}
