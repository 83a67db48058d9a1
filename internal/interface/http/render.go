package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/application"
	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/pkg/response"
)

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// fail maps service errors onto HTTP statuses. Auth failures always render
// as the same 401 message.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrConflict):
		response.Error[any](c, http.StatusConflict, "already exists", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrInvalidTransition):
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid request", nil)
	case errors.Is(err, application.ErrInsufficientStock):
		response.Error[any](c, http.StatusUnprocessableEntity, "insufficient stock", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

// accountView is the wire shape of an account. The password hash and lockout
// counters never leave the server.
type accountView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountView(a *entity.Account) accountView {
	return accountView{
		ID:        a.ID,
		Email:     a.Email,
		Phone:     a.Phone,
		Name:      a.Name,
		Roles:     a.Roles,
		CreatedAt: a.CreatedAt,
	}
}

type pageMeta struct {
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}

// pageParams reads offset/limit query params with sane bounds.
func pageParams(c *gin.Context) (int, int) {
	offset := atoiDefault(c.Query("offset"), 0)
	limit := atoiDefault(c.Query("limit"), 20)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// dateParam parses a YYYY-MM-DD query param, falling back to def.
func dateParam(c *gin.Context, name string, def time.Time) time.Time {
	v := c.Query(name)
	if v == "" {
		return def
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return def
	}
	return t
}
