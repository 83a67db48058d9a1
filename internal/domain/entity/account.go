package entity

import (
	"slices"
	"time"
)

// Account roles. Flat membership, no hierarchy: admin is not implicitly
// granted farmer-only routes.
const (
	RoleUser     = "user"
	RoleFarmer   = "farmer"
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Account is the aggregate root for every authenticable entity (generic
// user, farmer, customer). PasswordHash holds a bcrypt digest and is never
// serialized in responses. Email, roles and national id are immutable after
// registration.
type Account struct {
	ID           string
	Email        string
	Phone        string
	NationalID   string // farmers only
	Name         string
	PasswordHash string
	Roles        []string

	// Lockout state
	FailedAttempts int
	LockUntil      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locked reports whether authentication is currently suspended.
func (a *Account) Locked(now time.Time) bool {
	return a.LockUntil != nil && a.LockUntil.After(now)
}

// RegisterFailedLogin advances the lockout state machine for a failed
// authentication attempt and reports whether this attempt transitioned the
// account into the locked state.
//
// A failure arriving after an expired lock restarts the count at 1, so the
// next lock again requires a full run of consecutive failures. Otherwise the
// counter increments, and the attempt that brings it to the threshold is the
// one that locks (the 5th with default settings, not the 6th).
func (a *Account) RegisterFailedLogin(now time.Time, threshold int, cooldown time.Duration) bool {
	if a.LockUntil != nil && !a.LockUntil.After(now) {
		a.FailedAttempts = 1
		a.LockUntil = nil
		return false
	}
	locked := a.Locked(now)
	a.FailedAttempts++
	if a.FailedAttempts >= threshold && !locked {
		until := now.Add(cooldown)
		a.LockUntil = &until
		return true
	}
	return false
}

// RegisterSuccessfulLogin unconditionally resets the lockout state.
func (a *Account) RegisterSuccessfulLogin() {
	a.FailedAttempts = 0
	a.LockUntil = nil
}

// HasAnyRole reports whether the account's role set intersects required.
func (a *Account) HasAnyRole(required ...string) bool {
	for _, r := range required {
		if slices.Contains(a.Roles, r) {
			return true
		}
	}
	return false
}
