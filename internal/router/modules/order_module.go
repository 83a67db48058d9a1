package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/farmstack/farm-api/internal/interface/http"
	"github.com/farmstack/farm-api/internal/interface/middleware"
)

type OrderModule struct {
	Handler *handlers.OrderHandler
	Auth    gin.HandlerFunc
}

func NewOrderModule(h *handlers.OrderHandler, auth gin.HandlerFunc) *OrderModule {
	return &OrderModule{Handler: h, Auth: auth}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	customer := rg.Group("/orders")
	customer.Use(m.Auth, middleware.RequireRoles("customer"))
	{
		customer.POST("", m.Handler.Place)
		customer.GET("", m.Handler.ListMine)
	}

	// Shared routes: the handler enforces per-order visibility.
	shared := rg.Group("/orders")
	shared.Use(m.Auth)
	{
		shared.GET("/:id", m.Handler.Get)
		shared.PATCH("/:id/status", m.Handler.UpdateStatus)
	}

	farmer := rg.Group("/farmer")
	farmer.Use(m.Auth, middleware.RequireRoles("farmer"))
	{
		farmer.GET("/orders", m.Handler.ListIncoming)
	}
}
