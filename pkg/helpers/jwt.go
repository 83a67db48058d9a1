package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every parse failure: expired, malformed or
// badly signed tokens are indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager issues and validates session tokens. Tokens carry a fixed
// expiry (30 days by default) and there is no refresh mechanism.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration

	// now is overridable in tests to simulate clock movement.
	now func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

type Claims struct {
	AccountID string `json:"uid"`
	jwt.RegisteredClaims
}

// Issue signs a token embedding the account id.
func (m *JWTManager) Issue(accountID string) (string, time.Time, error) {
	now := m.clock()
	exp := now.Add(m.TTL)
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Parse verifies signature and expiry and returns the embedded account id.
func (m *JWTManager) Parse(tokenStr string) (string, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.clock))
	if err != nil || !tkn.Valid {
		return "", ErrInvalidToken
	}
	return claims.AccountID, nil
}

func (m *JWTManager) clock() time.Time {
	if m.now != nil {
		return m.now()
	}
	return time.Now()
}

// WithClock returns a copy using the given time source. Test helper.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	return &JWTManager{Secret: m.Secret, TTL: m.TTL, now: now}
}
