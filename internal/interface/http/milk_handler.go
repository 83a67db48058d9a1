package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/application"
	"github.com/farmstack/farm-api/internal/interface/middleware"
	"github.com/farmstack/farm-api/pkg/response"
	"github.com/farmstack/farm-api/pkg/validation"
)

type MilkHandler struct {
	Svc *application.MilkService
}

func NewMilkHandler(svc *application.MilkService) *MilkHandler {
	return &MilkHandler{Svc: svc}
}

// Record POST /api/farmer/milk (farmer only)
func (h *MilkHandler) Record(c *gin.Context) {
	var req struct {
		RecordDate     string  `json:"record_date" binding:"required,datetime=2006-01-02"`
		Shift          string  `json:"shift" binding:"required,oneof=morning evening"`
		QuantityLiters float64 `json:"quantity_liters" binding:"required,gt=0"`
		Notes          string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	recordDate, _ := time.Parse("2006-01-02", req.RecordDate)

	m, err := h.Svc.Record(c.Request.Context(), c.GetString(middleware.CtxAccountID),
		application.MilkInput{
			RecordDate:     recordDate,
			Shift:          req.Shift,
			QuantityLiters: req.QuantityLiters,
			Notes:          req.Notes,
		})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m, "milk recorded", nil)
}

// List GET /api/farmer/milk (farmer only)
func (h *MilkHandler) List(c *gin.Context) {
	now := time.Now().UTC()
	from := dateParam(c, "from", now.AddDate(0, -1, 0))
	to := dateParam(c, "to", now)

	out, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxAccountID), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "milk records", nil)
}

// Delete DELETE /api/farmer/milk/:id (owning farmer)
func (h *MilkHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxAccountID), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "milk record deleted", nil)
}
