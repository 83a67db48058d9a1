package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/domain/repository"
	"github.com/farmstack/farm-api/pkg/helpers"
	"github.com/farmstack/farm-api/pkg/response"
)

// Gin context keys set by Authenticated.
const (
	CtxAccountID = "account_id"
	CtxAccount   = "account"
)

// Authenticated validates the Bearer token and loads the account into the
// context. Missing, malformed, expired or orphaned tokens all answer the same
// 401 so callers cannot distinguish the failure mode.
func Authenticated(jwt *helpers.JWTManager, accounts repository.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Abort(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		accountID, err := jwt.Parse(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		acct, err := accounts.GetByID(c.Request.Context(), accountID)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		c.Set(CtxAccountID, acct.ID)
		c.Set(CtxAccount, acct)
		c.Next()
	}
}
