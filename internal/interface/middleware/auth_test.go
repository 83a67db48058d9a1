package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
	"github.com/farmstack/farm-api/pkg/helpers"
)

type stubAccounts struct {
	accounts map[string]*entity.Account
}

func (s *stubAccounts) Create(context.Context, *entity.Account) error { return nil }
func (s *stubAccounts) Update(context.Context, *entity.Account) error { return nil }
func (s *stubAccounts) UpdateLockout(context.Context, string, int, *time.Time) error {
	return nil
}
func (s *stubAccounts) List(context.Context, string, int, int) ([]entity.Account, int64, error) {
	return nil, 0, nil
}
func (s *stubAccounts) GetByEmail(context.Context, string) (*entity.Account, error) {
	return nil, repository.ErrNotFound
}
func (s *stubAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func testRouter(jwt *helpers.JWTManager, accounts repository.AccountRepository, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/", Authenticated(jwt, accounts))
	if len(roles) > 0 {
		grp.Use(RequireRoles(roles...))
	}
	grp.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxAccountID))
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticatedAcceptsValidToken(t *testing.T) {
	t.Parallel()
	jwt := helpers.NewJWTManager("secret", time.Hour)
	accounts := &stubAccounts{accounts: map[string]*entity.Account{
		"u1": {ID: "u1", Roles: []string{entity.RoleUser}},
	}}
	token, _, err := jwt.Issue("u1")
	require.NoError(t, err)

	w := doGet(testRouter(jwt, accounts), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestAuthenticatedRejectsUniformly(t *testing.T) {
	t.Parallel()
	jwt := helpers.NewJWTManager("secret", time.Hour)
	accounts := &stubAccounts{accounts: map[string]*entity.Account{}}
	r := testRouter(jwt, accounts)

	// Missing header
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)

	// Garbage token
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "not-a-token").Code)

	// Wrong signing key
	other := helpers.NewJWTManager("other-secret", time.Hour)
	forged, _, err := other.Issue("u1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, forged).Code)

	// Valid token for an account that no longer exists
	orphan, _, err := jwt.Issue("gone")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, orphan).Code)
}

func TestRequireRolesFlatMembership(t *testing.T) {
	t.Parallel()
	jwt := helpers.NewJWTManager("secret", time.Hour)
	accounts := &stubAccounts{accounts: map[string]*entity.Account{
		"admin":  {ID: "admin", Roles: []string{entity.RoleUser, entity.RoleAdmin}},
		"farmer": {ID: "farmer", Roles: []string{entity.RoleUser, entity.RoleFarmer}},
	}}
	r := testRouter(jwt, accounts, entity.RoleFarmer)

	farmerTok, _, err := jwt.Issue("farmer")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doGet(r, farmerTok).Code)

	// Admin does not implicitly hold the farmer role.
	adminTok, _, err := jwt.Issue("admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doGet(r, adminTok).Code)
}

func TestRequireRolesAnyOf(t *testing.T) {
	t.Parallel()
	jwt := helpers.NewJWTManager("secret", time.Hour)
	accounts := &stubAccounts{accounts: map[string]*entity.Account{
		"admin": {ID: "admin", Roles: []string{entity.RoleUser, entity.RoleAdmin}},
	}}
	r := testRouter(jwt, accounts, entity.RoleFarmer, entity.RoleAdmin)

	tok, _, err := jwt.Issue("admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doGet(r, tok).Code)
}
