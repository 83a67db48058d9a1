package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/farmstack/farm-api/internal/interface/http"
	"github.com/farmstack/farm-api/internal/interface/middleware"
)

// FarmModule mounts the farm-operations routes: staff, attendance, milk
// production and reports. Everything here is farmer-scoped.
type FarmModule struct {
	Staff   *handlers.StaffHandler
	Milk    *handlers.MilkHandler
	Reports *handlers.ReportHandler
	Auth    gin.HandlerFunc
}

func NewFarmModule(staff *handlers.StaffHandler, milk *handlers.MilkHandler,
	reports *handlers.ReportHandler, auth gin.HandlerFunc) *FarmModule {
	return &FarmModule{Staff: staff, Milk: milk, Reports: reports, Auth: auth}
}

func (m *FarmModule) Register(rg *gin.RouterGroup) {
	farmer := rg.Group("/farmer")
	farmer.Use(m.Auth, middleware.RequireRoles("farmer"))
	{
		farmer.POST("/staff", m.Staff.Create)
		farmer.GET("/staff", m.Staff.List)
		farmer.PUT("/staff/:id", m.Staff.Update)
		farmer.DELETE("/staff/:id", m.Staff.Delete)
		farmer.POST("/staff/:id/attendance", m.Staff.RecordAttendance)
		farmer.GET("/staff/:id/attendance", m.Staff.ListAttendance)

		farmer.POST("/milk", m.Milk.Record)
		farmer.GET("/milk", m.Milk.List)
		farmer.DELETE("/milk/:id", m.Milk.Delete)

		farmer.GET("/reports/milk/daily", m.Reports.MilkDaily)
		farmer.GET("/reports/milk/monthly", m.Reports.MilkMonthly)
		farmer.GET("/reports/orders", m.Reports.OrdersSummary)
		farmer.GET("/reports/attendance", m.Reports.AttendanceSummary)
	}

	// Admins get the unrestricted order summary.
	admin := rg.Group("/admin")
	admin.Use(m.Auth, middleware.RequireRoles("admin"))
	{
		admin.GET("/reports/orders", m.Reports.OrdersSummary)
	}
}
