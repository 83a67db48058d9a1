package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/application"
	"github.com/farmstack/farm-api/internal/interface/middleware"
	"github.com/farmstack/farm-api/pkg/response"
	"github.com/farmstack/farm-api/pkg/validation"
)

// ProfileHandler serves the farmer and customer profile endpoints. Bank
// fields round-trip as plaintext over TLS; at-rest encryption lives in the
// repository.
type ProfileHandler struct {
	Farmers   *application.FarmerService
	Customers *application.CustomerService
}

func NewProfileHandler(farmers *application.FarmerService, customers *application.CustomerService) *ProfileHandler {
	return &ProfileHandler{Farmers: farmers, Customers: customers}
}

// GetFarmer GET /api/farmer/profile (farmer only)
func (h *ProfileHandler) GetFarmer(c *gin.Context) {
	p, err := h.Farmers.Get(c.Request.Context(), c.GetString(middleware.CtxAccountID))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "farmer profile", nil)
}

// UpdateFarmer PUT /api/farmer/profile (farmer only)
func (h *ProfileHandler) UpdateFarmer(c *gin.Context) {
	var req struct {
		FarmName          string  `json:"farm_name"`
		Location          string  `json:"location"`
		FarmSizeAcres     float64 `json:"farm_size_acres" binding:"omitempty,gt=0"`
		LivestockCount    int     `json:"livestock_count" binding:"omitempty,gt=0"`
		BankAccountNumber string  `json:"bank_account_number"`
		BankRoutingCode   string  `json:"bank_routing_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Farmers.Update(c.Request.Context(), c.GetString(middleware.CtxAccountID),
		application.UpdateFarmerInput{
			FarmName:          req.FarmName,
			Location:          req.Location,
			FarmSizeAcres:     req.FarmSizeAcres,
			LivestockCount:    req.LivestockCount,
			BankAccountNumber: req.BankAccountNumber,
			BankRoutingCode:   req.BankRoutingCode,
		})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "farmer profile updated", nil)
}

// GetFarmerAdmin GET /api/admin/farmers/:id (admin only). Bank details are
// redacted before rendering: support staff never see payment fields.
func (h *ProfileHandler) GetFarmerAdmin(c *gin.Context) {
	p, err := h.Farmers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	p.BankAccountNumber = ""
	p.BankRoutingCode = ""
	response.Success(c, http.StatusOK, p, "farmer profile", nil)
}

// GetCustomer GET /api/customer/profile (customer only)
func (h *ProfileHandler) GetCustomer(c *gin.Context) {
	p, err := h.Customers.Get(c.Request.Context(), c.GetString(middleware.CtxAccountID))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "customer profile", nil)
}

// UpdateCustomer PUT /api/customer/profile (customer only)
func (h *ProfileHandler) UpdateCustomer(c *gin.Context) {
	var req struct {
		DeliveryAddress string         `json:"delivery_address"`
		Preferences     map[string]any `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Customers.Update(c.Request.Context(), c.GetString(middleware.CtxAccountID),
		application.UpdateCustomerInput{
			DeliveryAddress: req.DeliveryAddress,
			Preferences:     req.Preferences,
		})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "customer profile updated", nil)
}
