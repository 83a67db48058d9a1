package entity

import "time"

// Login audit actions.
const (
	AuditLoginSuccess = "login_success"
	AuditLoginFailed  = "login_failed"
	AuditLoginLocked  = "login_locked"
	AuditRegistered   = "registered"
)

// LoginAudit records an authentication event. Best effort: a failed write is
// logged, never retried, and never fails the request.
type LoginAudit struct {
	ID        string
	AccountID string // empty when the email resolved to nothing
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
	CreatedAt time.Time
}
