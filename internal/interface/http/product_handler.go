package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/application"
	repo "github.com/farmstack/farm-api/internal/domain/repository"
	"github.com/farmstack/farm-api/internal/interface/middleware"
	"github.com/farmstack/farm-api/pkg/response"
	"github.com/farmstack/farm-api/pkg/validation"
)

const maxImageBytes = 5 << 20

type ProductHandler struct {
	Svc *application.ProductService
}

func NewProductHandler(svc *application.ProductService) *ProductHandler {
	return &ProductHandler{Svc: svc}
}

type productRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Unit        string `json:"unit" binding:"required"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	Stock       int    `json:"stock" binding:"gte=0"`
}

// Create POST /api/products (farmer only)
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxAccountID),
		application.ProductInput{
			Name:        req.Name,
			Category:    req.Category,
			Description: req.Description,
			Unit:        req.Unit,
			PriceCents:  req.PriceCents,
			Stock:       req.Stock,
		})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "product created", nil)
}

// Get GET /api/products/:id (public)
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

// List GET /api/products (public)
func (h *ProductHandler) List(c *gin.Context) {
	offset, limit := pageParams(c)
	items, total, err := h.Svc.List(c.Request.Context(), repo.ProductFilter{
		Category: c.Query("category"),
		FarmerID: c.Query("farmer_id"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "products",
		pageMeta{Offset: offset, Limit: limit, Total: total})
}

// Update PUT /api/products/:id (owning farmer)
func (h *ProductHandler) Update(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Unit        string `json:"unit"`
		PriceCents  int64  `json:"price_cents" binding:"omitempty,gt=0"`
		Stock       int    `json:"stock" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.GetString(middleware.CtxAccountID), c.Param("id"),
		application.ProductInput{
			Name:        req.Name,
			Category:    req.Category,
			Description: req.Description,
			Unit:        req.Unit,
			PriceCents:  req.PriceCents,
			Stock:       req.Stock,
		})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product updated", nil)
}

// Delete DELETE /api/products/:id (owning farmer)
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxAccountID), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "product deleted", nil)
}

// UploadImage POST /api/products/:id/image (owning farmer, multipart)
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file required", nil)
		return
	}
	if file.Size > maxImageBytes {
		response.Error[any](c, http.StatusBadRequest, "image too large", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image", nil)
		return
	}
	defer src.Close()

	p, err := h.Svc.UploadImage(c.Request.Context(), c.GetString(middleware.CtxAccountID),
		c.Param("id"), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "image uploaded", nil)
}

// Search GET /api/products/search?q= (public)
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query required", nil)
		return
	}
	items, err := h.Svc.Search(c.Request.Context(), q, atoiDefault(c.Query("size"), 20))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "search results", nil)
}
