package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/pkg/response"
)

// AccountFromCtx returns the authenticated account set by Authenticated.
func AccountFromCtx(c *gin.Context) (*entity.Account, bool) {
	v, ok := c.Get(CtxAccount)
	if !ok {
		return nil, false
	}
	acct, ok := v.(*entity.Account)
	return acct, ok
}

// RequireRoles passes when the account holds at least one of the required
// roles. Membership is a flat set intersection: admin does not implicitly
// satisfy a farmer-only route.
func RequireRoles(required ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := AccountFromCtx(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if !acct.HasAnyRole(required...) {
			response.Abort(c, http.StatusForbidden, "insufficient role")
			return
		}
		c.Next()
	}
}
