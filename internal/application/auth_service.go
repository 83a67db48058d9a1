package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/farmstack/farm-api/internal/domain/entity"
	repo "github.com/farmstack/farm-api/internal/domain/repository"
	"github.com/farmstack/farm-api/pkg/helpers"
	"github.com/farmstack/farm-api/pkg/mailer"
)

// LockoutPolicy holds the brute-force suspension knobs.
type LockoutPolicy struct {
	Threshold int
	Cooldown  time.Duration
}

// AuthService implements registration, login with lockout, and sessions.
type AuthService struct {
	Accounts  repo.AccountRepository
	Farmers   repo.FarmerRepository
	Customers repo.CustomerRepository
	Audit     repo.AuditRepository
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	Pub       *helpers.RabbitPublisher
	Logger    *logrus.Logger
	Lockout   LockoutPolicy
	AppName   string

	now func() time.Time
}

func NewAuthService(accounts repo.AccountRepository, farmers repo.FarmerRepository,
	customers repo.CustomerRepository, audit repo.AuditRepository, jwt *helpers.JWTManager,
	rdb *redis.Client, pub *helpers.RabbitPublisher, logger *logrus.Logger,
	lockout LockoutPolicy, appName string) *AuthService {
	return &AuthService{
		Accounts:  accounts,
		Farmers:   farmers,
		Customers: customers,
		Audit:     audit,
		JWT:       jwt,
		Redis:     rdb,
		Pub:       pub,
		Logger:    logger,
		Lockout:   lockout,
		AppName:   appName,
		now:       time.Now,
	}
}

func sessionKey(accountID string) string {
	return "account:session:" + accountID
}

type RegisterInput struct {
	Email      string
	Phone      string
	NationalID string
	Name       string
	Password   string
	Role       string // user, customer or farmer
}

// Register creates an account. The password is hashed synchronously before
// the first persist; farmer registration additionally requires a unique
// national id and gets an empty farmer profile row.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, ip, ua string) (*entity.Account, error) {
	roles := []string{entity.RoleUser}
	switch in.Role {
	case entity.RoleFarmer:
		roles = append(roles, entity.RoleFarmer)
	case entity.RoleCustomer:
		roles = append(roles, entity.RoleCustomer)
	case "", entity.RoleUser:
	default:
		return nil, ErrForbidden
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	acct := &entity.Account{
		Email:        in.Email,
		Phone:        in.Phone,
		NationalID:   in.NationalID,
		Name:         in.Name,
		PasswordHash: hash,
		Roles:        roles,
	}
	if err := s.Accounts.Create(ctx, acct); err != nil {
		return nil, fromRepo(err)
	}

	if acct.HasAnyRole(entity.RoleFarmer) {
		if err := s.Farmers.Upsert(ctx, &entity.FarmerProfile{AccountID: acct.ID}); err != nil {
			s.logWarn("create farmer profile failed", err, acct.ID)
		}
	}
	if acct.HasAnyRole(entity.RoleCustomer) {
		if err := s.Customers.Upsert(ctx, &entity.CustomerProfile{AccountID: acct.ID}); err != nil {
			s.logWarn("create customer profile failed", err, acct.ID)
		}
	}

	s.audit(ctx, acct.ID, acct.Email, entity.AuditRegistered, ip, ua, nil)
	s.notify(ctx, mailer.Job{To: acct.Email, Kind: mailer.KindWelcome, Data: map[string]any{
		"Name":    acct.Name,
		"AppName": s.AppName,
	}})
	return acct, nil
}

// LoginResult carries the issued session token.
type LoginResult struct {
	Account   *entity.Account
	Token     string
	ExpiresAt time.Time
}

// Login authenticates email/password behind the lockout gate. Every failure
// mode answers ErrInvalidCredentials: wrong password, unknown email and
// locked account are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password, ip, ua string) (*LoginResult, error) {
	acct, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil {
		s.audit(ctx, "", email, entity.AuditLoginFailed, ip, ua, map[string]any{"reason": "unknown email"})
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if acct.Locked(now) {
		s.registerFailure(ctx, acct, now, ip, ua)
		return nil, ErrInvalidCredentials
	}

	if !helpers.CheckPassword(acct.PasswordHash, password) {
		s.registerFailure(ctx, acct, now, ip, ua)
		return nil, ErrInvalidCredentials
	}

	acct.RegisterSuccessfulLogin()
	if err := s.Accounts.UpdateLockout(ctx, acct.ID, 0, nil); err != nil {
		// Best effort: a failed counter write is logged, not retried.
		s.logWarn("reset lockout failed", err, acct.ID)
	}

	token, exp, err := s.JWT.Issue(acct.ID)
	if err != nil {
		s.logWarn("issue token failed", err, acct.ID)
		return nil, err
	}

	if s.Redis != nil {
		key := sessionKey(acct.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"account_id": acct.ID,
			"email":      acct.Email,
			"name":       acct.Name,
			"logged_in":  true,
			"created_at": now.UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, time.Until(exp))
		if _, err := pipe.Exec(ctx); err != nil {
			s.logWarn("redis session write failed", err, acct.ID)
		}
	}

	s.audit(ctx, acct.ID, acct.Email, entity.AuditLoginSuccess, ip, ua, nil)
	return &LoginResult{Account: acct, Token: token, ExpiresAt: exp}, nil
}

// registerFailure advances the lockout state machine and persists it, best
// effort. Counter persistence is read-modify-write: concurrent attempts
// against one account can race; last write wins.
func (s *AuthService) registerFailure(ctx context.Context, acct *entity.Account, now time.Time, ip, ua string) {
	lockedNow := acct.RegisterFailedLogin(now, s.Lockout.Threshold, s.Lockout.Cooldown)
	if err := s.Accounts.UpdateLockout(ctx, acct.ID, acct.FailedAttempts, acct.LockUntil); err != nil {
		s.logWarn("persist lockout failed", err, acct.ID)
	}

	action := entity.AuditLoginFailed
	if acct.Locked(now) {
		action = entity.AuditLoginLocked
	}
	s.audit(ctx, acct.ID, acct.Email, action, ip, ua, map[string]any{
		"failed_attempts": acct.FailedAttempts,
	})

	if lockedNow {
		s.notify(ctx, mailer.Job{To: acct.Email, Kind: mailer.KindAccountLocked, Data: map[string]any{
			"Name":      acct.Name,
			"AppName":   s.AppName,
			"LockUntil": acct.LockUntil.UTC().Format(time.RFC1123),
		}})
	}
}

// Logout drops the Redis session. The token itself stays valid until its
// fixed expiry; there is no revocation list.
func (s *AuthService) Logout(ctx context.Context, accountID string) {
	if s.Redis != nil {
		if err := s.Redis.Del(ctx, sessionKey(accountID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
			s.logWarn("redis session delete failed", err, accountID)
		}
	}
}

func (s *AuthService) GetProfile(ctx context.Context, accountID string) (*entity.Account, error) {
	acct, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fromRepo(err)
	}
	return acct, nil
}

type UpdateProfileInput struct {
	Name     string
	Phone    string
	Password string
}

// UpdateProfile mutates the account's mutable fields. Email, roles and
// national id are immutable. The password is re-hashed only when a new one
// is supplied.
func (s *AuthService) UpdateProfile(ctx context.Context, accountID string, in UpdateProfileInput) (*entity.Account, error) {
	acct, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fromRepo(err)
	}
	if in.Name != "" {
		acct.Name = in.Name
	}
	if in.Phone != "" {
		acct.Phone = in.Phone
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		acct.PasswordHash = hash
	}
	if err := s.Accounts.Update(ctx, acct); err != nil {
		return nil, fromRepo(err)
	}
	return acct, nil
}

// ListAccounts is the admin view over the account namespace.
func (s *AuthService) ListAccounts(ctx context.Context, role string, offset, limit int) ([]entity.Account, int64, error) {
	accounts, total, err := s.Accounts.List(ctx, role, offset, limit)
	return accounts, total, fromRepo(err)
}

func (s *AuthService) audit(ctx context.Context, accountID, email, action, ip, ua string, md map[string]any) {
	if s.Audit == nil {
		return
	}
	err := s.Audit.Insert(ctx, &entity.LoginAudit{
		AccountID: accountID,
		Email:     email,
		Action:    action,
		IP:        ip,
		UserAgent: ua,
		Metadata:  md,
	})
	if err != nil {
		s.logWarn("audit insert failed", err, accountID)
	}
}

func (s *AuthService) notify(ctx context.Context, job mailer.Job) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.logWarn("publish notification failed", err, job.To)
	}
}

func (s *AuthService) logWarn(msg string, err error, subject string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("subject", subject).Warn(msg)
	}
}

// WithClock returns a copy of the service using the given time source.
// Test helper.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	c := *s
	c.now = now
	return &c
}
