package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/application"
	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/interface/middleware"
	"github.com/farmstack/farm-api/pkg/response"
	"github.com/farmstack/farm-api/pkg/validation"
)

type OrderHandler struct {
	Svc *application.OrderService
}

func NewOrderHandler(svc *application.OrderService) *OrderHandler {
	return &OrderHandler{Svc: svc}
}

// Place POST /api/orders (customer only)
func (h *OrderHandler) Place(c *gin.Context) {
	var req struct {
		Items []struct {
			ProductID string `json:"product_id" binding:"required,uuid"`
			Quantity  int    `json:"quantity" binding:"required,gt=0"`
		} `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	lines := make([]application.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, application.OrderLineInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	o, err := h.Svc.Place(c.Request.Context(), c.GetString(middleware.CtxAccountID), lines)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, o, "order placed", nil)
}

// Get GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	acct, ok := middleware.AccountFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	o, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	// Customers only see their own orders; farmers and admins see all.
	if o.CustomerID != acct.ID && !acct.HasAnyRole(entity.RoleFarmer, entity.RoleAdmin) {
		fail(c, application.ErrForbidden)
		return
	}
	response.Success(c, http.StatusOK, o, "order", nil)
}

// ListMine GET /api/orders (customer only)
func (h *OrderHandler) ListMine(c *gin.Context) {
	offset, limit := pageParams(c)
	orders, total, err := h.Svc.ListForCustomer(c.Request.Context(),
		c.GetString(middleware.CtxAccountID), offset, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders",
		pageMeta{Offset: offset, Limit: limit, Total: total})
}

// ListIncoming GET /api/farmer/orders (farmer only)
func (h *OrderHandler) ListIncoming(c *gin.Context) {
	offset, limit := pageParams(c)
	orders, total, err := h.Svc.ListForFarmer(c.Request.Context(),
		c.GetString(middleware.CtxAccountID), offset, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders",
		pageMeta{Offset: offset, Limit: limit, Total: total})
}

// UpdateStatus PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	acct, ok := middleware.AccountFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required,oneof=confirmed delivered cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	o, err := h.Svc.Transition(c.Request.Context(), acct, c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "order updated", nil)
}
