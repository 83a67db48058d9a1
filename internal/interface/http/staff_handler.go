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

type StaffHandler struct {
	Svc *application.StaffService
}

func NewStaffHandler(svc *application.StaffService) *StaffHandler {
	return &StaffHandler{Svc: svc}
}

// Create POST /api/farmer/staff (farmer only)
func (h *StaffHandler) Create(c *gin.Context) {
	var req struct {
		Name           string `json:"name" binding:"required"`
		Phone          string `json:"phone" binding:"omitempty,phone"`
		Role           string `json:"role" binding:"required"`
		DailyWageCents int64  `json:"daily_wage_cents" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	st, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxAccountID),
		application.StaffInput{
			Name:           req.Name,
			Phone:          req.Phone,
			Role:           req.Role,
			DailyWageCents: req.DailyWageCents,
		})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, st, "staff created", nil)
}

// List GET /api/farmer/staff (farmer only)
func (h *StaffHandler) List(c *gin.Context) {
	offset, limit := pageParams(c)
	staff, total, err := h.Svc.List(c.Request.Context(),
		c.GetString(middleware.CtxAccountID), offset, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, staff, "staff",
		pageMeta{Offset: offset, Limit: limit, Total: total})
}

// Update PUT /api/farmer/staff/:id (owning farmer)
func (h *StaffHandler) Update(c *gin.Context) {
	var req struct {
		Name           string `json:"name"`
		Phone          string `json:"phone" binding:"omitempty,phone"`
		Role           string `json:"role"`
		DailyWageCents int64  `json:"daily_wage_cents" binding:"omitempty,gt=0"`
		Active         *bool  `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	st, err := h.Svc.Update(c.Request.Context(), c.GetString(middleware.CtxAccountID), c.Param("id"),
		application.StaffInput{
			Name:           req.Name,
			Phone:          req.Phone,
			Role:           req.Role,
			DailyWageCents: req.DailyWageCents,
		}, req.Active)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, st, "staff updated", nil)
}

// Delete DELETE /api/farmer/staff/:id (owning farmer)
func (h *StaffHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxAccountID), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "staff deleted", nil)
}

// RecordAttendance POST /api/farmer/staff/:id/attendance (owning farmer)
func (h *StaffHandler) RecordAttendance(c *gin.Context) {
	var req struct {
		WorkDate string `json:"work_date" binding:"required,datetime=2006-01-02"`
		Status   string `json:"status" binding:"required,oneof=present absent half_day"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	workDate, _ := time.Parse("2006-01-02", req.WorkDate)

	a, err := h.Svc.RecordAttendance(c.Request.Context(), c.GetString(middleware.CtxAccountID),
		c.Param("id"), workDate, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "attendance recorded", nil)
}

// ListAttendance GET /api/farmer/staff/:id/attendance (owning farmer)
func (h *StaffHandler) ListAttendance(c *gin.Context) {
	now := time.Now().UTC()
	from := dateParam(c, "from", now.AddDate(0, -1, 0))
	to := dateParam(c, "to", now)

	out, err := h.Svc.ListAttendance(c.Request.Context(), c.GetString(middleware.CtxAccountID),
		c.Param("id"), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "attendance", nil)
}
