package repository

import (
	"context"
	"time"

	"github.com/farmstack/farm-api/internal/domain/entity"
)

// ReportRepository runs the aggregation queries backing the report
// endpoints. All aggregation happens in SQL.
type ReportRepository interface {
	MilkDaily(ctx context.Context, farmerID string, from, to time.Time) ([]entity.MilkDailyTotal, error)
	MilkMonthly(ctx context.Context, farmerID string, year int) ([]entity.MilkMonthlyTotal, error)
	OrdersSummary(ctx context.Context, farmerID string, from, to time.Time) ([]entity.OrderSummaryRow, error)
	AttendanceSummary(ctx context.Context, farmerID string, month time.Time) ([]entity.AttendanceSummaryRow, error)
}
