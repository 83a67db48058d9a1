package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
	"github.com/farmstack/farm-api/pkg/helpers"
)

type fakeAccounts struct {
	byEmail map[string]*entity.Account
	byID    map[string]*entity.Account

	createErr     error
	lockoutWrites []lockoutWrite
}

type lockoutWrite struct {
	id       string
	attempts int
	until    *time.Time
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		byEmail: map[string]*entity.Account{},
		byID:    map[string]*entity.Account{},
	}
}

func (f *fakeAccounts) add(a *entity.Account) {
	f.byEmail[a.Email] = a
	f.byID[a.ID] = a
}

func (f *fakeAccounts) Create(_ context.Context, a *entity.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return repository.ErrConflict
	}
	a.ID = "acct-" + a.Email
	f.add(a)
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) Update(_ context.Context, a *entity.Account) error {
	stored, ok := f.byID[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	*stored = *a
	return nil
}

func (f *fakeAccounts) UpdateLockout(_ context.Context, id string, attempts int, until *time.Time) error {
	f.lockoutWrites = append(f.lockoutWrites, lockoutWrite{id: id, attempts: attempts, until: until})
	if a, ok := f.byID[id]; ok {
		a.FailedAttempts = attempts
		a.LockUntil = until
	}
	return nil
}

func (f *fakeAccounts) List(_ context.Context, _ string, _, _ int) ([]entity.Account, int64, error) {
	out := make([]entity.Account, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

type fakeProfiles struct {
	farmerUpserts   int
	customerUpserts int
}

func (f *fakeProfiles) Upsert(_ context.Context, _ *entity.FarmerProfile) error {
	f.farmerUpserts++
	return nil
}

func (f *fakeProfiles) GetByAccountID(_ context.Context, _ string) (*entity.FarmerProfile, error) {
	return nil, repository.ErrNotFound
}

type fakeCustomers struct{ upserts int }

func (f *fakeCustomers) Upsert(_ context.Context, _ *entity.CustomerProfile) error {
	f.upserts++
	return nil
}

func (f *fakeCustomers) GetByAccountID(_ context.Context, _ string) (*entity.CustomerProfile, error) {
	return nil, repository.ErrNotFound
}

type fakeAudit struct{ actions []string }

func (f *fakeAudit) Insert(_ context.Context, a *entity.LoginAudit) error {
	f.actions = append(f.actions, a.Action)
	return nil
}

func newTestService(t *testing.T, accounts *fakeAccounts) *AuthService {
	t.Helper()
	return NewAuthService(accounts, &fakeProfiles{}, &fakeCustomers{}, &fakeAudit{},
		helpers.NewJWTManager("test-secret", 720*time.Hour), nil, nil, nil,
		LockoutPolicy{Threshold: 5, Cooldown: 2 * time.Hour}, "farm-api")
}

func seedAccount(t *testing.T, accounts *fakeAccounts, email, password string, roles ...string) *entity.Account {
	t.Helper()
	hash, err := helpers.HashPassword(password)
	require.NoError(t, err)
	a := &entity.Account{
		ID:           "acct-" + email,
		Email:        email,
		Name:         "Test",
		PasswordHash: hash,
		Roles:        append([]string{entity.RoleUser}, roles...),
	}
	accounts.add(a)
	return a
}

func TestRegisterFarmerCreatesProfile(t *testing.T) {
	t.Parallel()
	accounts := newFakeAccounts()
	farmers := &fakeProfiles{}
	svc := newTestService(t, accounts)
	svc.Farmers = farmers

	acct, err := svc.Register(context.Background(), RegisterInput{
		Email:      "jane@farm.test",
		Name:       "Jane",
		Password:   "hunter2hunter2",
		NationalID: "123456789012",
		Role:       entity.RoleFarmer,
	}, "127.0.0.1", "test")
	require.NoError(t, err)

	assert.True(t, acct.HasAnyRole(entity.RoleFarmer))
	assert.Equal(t, 1, farmers.farmerUpserts)
	assert.NotEqual(t, "hunter2hunter2", acct.PasswordHash)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	t.Parallel()
	accounts := newFakeAccounts()
	svc := newTestService(t, accounts)
	seedAccount(t, accounts, "jane@farm.test", "hunter2hunter2")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "jane@farm.test",
		Name:     "Jane",
		Password: "hunter2hunter2",
	}, "", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoginSuccessIssuesTokenAndResetsLockout(t *testing.T) {
	t.Parallel()
	accounts := newFakeAccounts()
	svc := newTestService(t, accounts)
	a := seedAccount(t, accounts, "jane@farm.test", "hunter2hunter2")
	a.FailedAttempts = 3

	res, err := svc.Login(context.Background(), "jane@farm.test", "hunter2hunter2", "127.0.0.1", "test")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	accountID, err := svc.JWT.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, a.ID, accountID)

	require.NotEmpty(t, accounts.lockoutWrites)
	last := accounts.lockoutWrites[len(accounts.lockoutWrites)-1]
	assert.Equal(t, 0, last.attempts)
	assert.Nil(t, last.until)
}

func TestLoginWrongPasswordIsUniformAndCounted(t *testing.T) {
	t.Parallel()
	accounts := newFakeAccounts()
	svc := newTestService(t, accounts)
	seedAccount(t, accounts, "jane@farm.test", "hunter2hunter2")

	_, err := svc.Login(context.Background(), "jane@farm.test", "wrong", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@farm.test", "wrong", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.Len(t, accounts.lockoutWrites, 1)
	assert.Equal(t, 1, accounts.lockoutWrites[0].attempts)
}

func TestLoginFifthFailureLocksAccount(t *testing.T) {
	t.Parallel()
	accounts := newFakeAccounts()
	svc := newTestService(t, accounts)
	a := seedAccount(t, accounts, "jane@farm.test", "hunter2hunter2")

	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), "jane@farm.test", "wrong", "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	require.Len(t, accounts.lockoutWrites, 5)
	last := accounts.lockoutWrites[4]
	assert.Equal(t, 5, last.attempts)
	require.NotNil(t, last.until)

	// The correct password is refused while the lock is active, and the
	// attempt still counts.
	_, err := svc.Login(context.Background(), "jane@farm.test", "hunter2hunter2", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 6, accounts.byID[a.ID].FailedAttempts)
}

func TestLoginAfterExpiredLockSucceeds(t *testing.T) {
	t.Parallel()
	accounts := newFakeAccounts()
	svc := newTestService(t, accounts)
	a := seedAccount(t, accounts, "jane@farm.test", "hunter2hunter2")

	past := time.Now().Add(-time.Minute)
	a.FailedAttempts = 5
	a.LockUntil = &past

	res, err := svc.Login(context.Background(), "jane@farm.test", "hunter2hunter2", "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, 0, accounts.byID[a.ID].FailedAttempts)
	assert.Nil(t, accounts.byID[a.ID].LockUntil)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	t.Parallel()
	accounts := newFakeAccounts()
	svc := newTestService(t, accounts)
	a := seedAccount(t, accounts, "jane@farm.test", "hunter2hunter2")
	oldHash := a.PasswordHash

	updated, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileInput{
		Name:     "Jane D",
		Password: "anotherpassword",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane D", updated.Name)
	assert.NotEqual(t, oldHash, updated.PasswordHash)
	assert.True(t, helpers.CheckPassword(updated.PasswordHash, "anotherpassword"))
}
