package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/container"
	handlers "github.com/farmstack/farm-api/internal/interface/http"
	"github.com/farmstack/farm-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints take tight IP-based limits. Lockout is the
	// per-account defense; this is the per-host one.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(m.Auth)
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.GET("/auth/me", m.Handler.Me)
		auth.PUT("/auth/me", m.Handler.UpdateMe)
	}

	admin := rg.Group("/admin")
	admin.Use(m.Auth, middleware.RequireRoles("admin"))
	{
		admin.GET("/accounts", m.Handler.ListAccounts)
	}
}
