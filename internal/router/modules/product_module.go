package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/container"
	handlers "github.com/farmstack/farm-api/internal/interface/http"
	"github.com/farmstack/farm-api/internal/interface/middleware"
)

type ProductModule struct {
	Handler *handlers.ProductHandler
	Auth    gin.HandlerFunc
}

func NewProductModule(h *handlers.ProductHandler, auth gin.HandlerFunc) *ProductModule {
	return &ProductModule{Handler: h, Auth: auth}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	// Public catalog
	rg.GET("/products", m.Handler.List)
	rg.GET("/products/search", searchLimiter, m.Handler.Search)
	rg.GET("/products/:id", m.Handler.Get)

	// Farmer-owned writes
	farmer := rg.Group("/products")
	farmer.Use(m.Auth, middleware.RequireRoles("farmer"))
	{
		farmer.POST("", m.Handler.Create)
		farmer.PUT("/:id", m.Handler.Update)
		farmer.DELETE("/:id", m.Handler.Delete)
		farmer.POST("/:id/image", m.Handler.UploadImage)
	}
}
