package entity

import (
	"testing"
	"time"
)

const (
	testThreshold = 5
	testCooldown  = 2 * time.Hour
)

func failN(a *Account, now time.Time, n int) {
	for i := 0; i < n; i++ {
		a.RegisterFailedLogin(now, testThreshold, testCooldown)
	}
}

func TestFifthFailureLocks(t *testing.T) {
	t.Parallel()
	now := time.Now()
	a := &Account{}

	for i := 1; i <= 4; i++ {
		if locked := a.RegisterFailedLogin(now, testThreshold, testCooldown); locked {
			t.Fatalf("failure %d locked the account early", i)
		}
		if a.Locked(now) {
			t.Fatalf("account locked after %d failures", i)
		}
	}

	if locked := a.RegisterFailedLogin(now, testThreshold, testCooldown); !locked {
		t.Fatalf("5th failure did not lock")
	}
	if !a.Locked(now) {
		t.Fatalf("account not locked after threshold")
	}
	if got, want := a.LockUntil.Sub(now), testCooldown; got != want {
		t.Fatalf("cooldown mismatch: got %v want %v", got, want)
	}
}

func TestSixthFailureDoesNotExtendLock(t *testing.T) {
	t.Parallel()
	now := time.Now()
	a := &Account{}
	failN(a, now, 5)
	until := *a.LockUntil

	later := now.Add(time.Minute)
	if locked := a.RegisterFailedLogin(later, testThreshold, testCooldown); locked {
		t.Fatalf("failure during active lock reported a new lock transition")
	}
	if !a.LockUntil.Equal(until) {
		t.Fatalf("active lock was extended: %v -> %v", until, a.LockUntil)
	}
	if a.FailedAttempts != 6 {
		t.Fatalf("failed attempts = %d, want 6", a.FailedAttempts)
	}
}

func TestFailureAfterExpiredLockResetsToOne(t *testing.T) {
	t.Parallel()
	now := time.Now()
	a := &Account{}
	failN(a, now, 5)

	afterCooldown := now.Add(testCooldown + time.Second)
	if a.Locked(afterCooldown) {
		t.Fatalf("lock did not expire")
	}
	if locked := a.RegisterFailedLogin(afterCooldown, testThreshold, testCooldown); locked {
		t.Fatalf("first failure after expiry locked again")
	}
	if a.FailedAttempts != 1 {
		t.Fatalf("failed attempts after expired lock = %d, want 1", a.FailedAttempts)
	}
	if a.LockUntil != nil {
		t.Fatalf("lockUntil not cleared after expiry reset")
	}
}

func TestSuccessfulLoginResetsState(t *testing.T) {
	t.Parallel()
	now := time.Now()
	a := &Account{}
	failN(a, now, 3)

	a.RegisterSuccessfulLogin()
	if a.FailedAttempts != 0 {
		t.Fatalf("failed attempts = %d, want 0", a.FailedAttempts)
	}
	if a.LockUntil != nil {
		t.Fatalf("lockUntil not cleared on success")
	}
}

func TestHasAnyRole(t *testing.T) {
	t.Parallel()
	a := &Account{Roles: []string{RoleAdmin}}

	if !a.HasAnyRole(RoleAdmin, RoleFarmer) {
		t.Fatalf("expected intersection with admin")
	}
	// Flat set semantics: admin does not imply farmer.
	if a.HasAnyRole(RoleFarmer) {
		t.Fatalf("admin implicitly granted farmer")
	}
	if (&Account{}).HasAnyRole(RoleUser) {
		t.Fatalf("empty role set matched")
	}
}
