package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/application"
	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/interface/middleware"
	"github.com/farmstack/farm-api/pkg/response"
)

type ReportHandler struct {
	Svc *application.ReportService
}

func NewReportHandler(svc *application.ReportService) *ReportHandler {
	return &ReportHandler{Svc: svc}
}

// MilkDaily GET /api/farmer/reports/milk/daily?from=&to= (farmer only)
func (h *ReportHandler) MilkDaily(c *gin.Context) {
	now := time.Now().UTC()
	from := dateParam(c, "from", now.AddDate(0, -1, 0))
	to := dateParam(c, "to", now)

	out, err := h.Svc.MilkDaily(c.Request.Context(), c.GetString(middleware.CtxAccountID), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "daily milk totals", nil)
}

// MilkMonthly GET /api/farmer/reports/milk/monthly?year= (farmer only)
func (h *ReportHandler) MilkMonthly(c *gin.Context) {
	year := atoiDefault(c.Query("year"), time.Now().UTC().Year())
	out, err := h.Svc.MilkMonthly(c.Request.Context(), c.GetString(middleware.CtxAccountID), year)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "monthly milk totals", nil)
}

// OrdersSummary GET /api/farmer/reports/orders?from=&to=
// Farmers see their own products' orders; admins see everything.
func (h *ReportHandler) OrdersSummary(c *gin.Context) {
	acct, ok := middleware.AccountFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	farmerID := acct.ID
	if acct.HasAnyRole(entity.RoleAdmin) && !acct.HasAnyRole(entity.RoleFarmer) {
		farmerID = "" // unrestricted
	}

	now := time.Now().UTC()
	from := dateParam(c, "from", now.AddDate(0, -1, 0))
	to := dateParam(c, "to", now)

	out, err := h.Svc.OrdersSummary(c.Request.Context(), farmerID, from, to)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "order summary", nil)
}

// AttendanceSummary GET /api/farmer/reports/attendance?month=YYYY-MM (farmer only)
func (h *ReportHandler) AttendanceSummary(c *gin.Context) {
	month := time.Now().UTC()
	if m := c.Query("month"); m != "" {
		if parsed, err := time.Parse("2006-01", m); err == nil {
			month = parsed
		}
	}
	out, err := h.Svc.AttendanceSummary(c.Request.Context(), c.GetString(middleware.CtxAccountID), month)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "attendance summary", nil)
}
