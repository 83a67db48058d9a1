package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/farmstack/farm-api/internal/interface/http"
	"github.com/farmstack/farm-api/internal/interface/middleware"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Auth    gin.HandlerFunc
}

func NewProfileModule(h *handlers.ProfileHandler, auth gin.HandlerFunc) *ProfileModule {
	return &ProfileModule{Handler: h, Auth: auth}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	farmer := rg.Group("/farmer")
	farmer.Use(m.Auth, middleware.RequireRoles("farmer"))
	{
		farmer.GET("/profile", m.Handler.GetFarmer)
		farmer.PUT("/profile", m.Handler.UpdateFarmer)
	}

	customer := rg.Group("/customer")
	customer.Use(m.Auth, middleware.RequireRoles("customer"))
	{
		customer.GET("/profile", m.Handler.GetCustomer)
		customer.PUT("/profile", m.Handler.UpdateCustomer)
	}

	admin := rg.Group("/admin")
	admin.Use(m.Auth, middleware.RequireRoles("admin"))
	{
		admin.GET("/farmers/:id", m.Handler.GetFarmerAdmin)
	}
}
