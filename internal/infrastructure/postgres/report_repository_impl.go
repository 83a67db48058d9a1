package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
)

// ReportRepository runs aggregation queries in SQL. Results are small and
// cached by the report service, so the queries favor clarity over cleverness.
type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) MilkDaily(ctx context.Context, farmerID string, from, to time.Time) ([]entity.MilkDailyTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(record_date, 'YYYY-MM-DD'), sum(quantity_liters)
		FROM milk_production
		WHERE farmer_id = $1 AND record_date BETWEEN $2 AND $3
		GROUP BY record_date
		ORDER BY record_date
	`, farmerID, from, to)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []entity.MilkDailyTotal
	for rows.Next() {
		var t entity.MilkDailyTotal
		if err := rows.Scan(&t.Date, &t.Liters); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, t)
	}
	return out, mapErr(rows.Err())
}

func (r *ReportRepository) MilkMonthly(ctx context.Context, farmerID string, year int) ([]entity.MilkMonthlyTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date_trunc('month', record_date), 'YYYY-MM'), sum(quantity_liters)
		FROM milk_production
		WHERE farmer_id = $1 AND extract(year FROM record_date) = $2
		GROUP BY date_trunc('month', record_date)
		ORDER BY date_trunc('month', record_date)
	`, farmerID, year)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []entity.MilkMonthlyTotal
	for rows.Next() {
		var t entity.MilkMonthlyTotal
		if err := rows.Scan(&t.Month, &t.Liters); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, t)
	}
	return out, mapErr(rows.Err())
}

// OrdersSummary counts orders and revenue by status. With a farmer id it is
// restricted to orders containing that farmer's products; empty means all
// orders (admin view).
func (r *ReportRepository) OrdersSummary(ctx context.Context, farmerID string, from, to time.Time) ([]entity.OrderSummaryRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.status, count(*), COALESCE(sum(o.total_cents), 0)
		FROM orders o
		WHERE o.created_at BETWEEN $2 AND $3
		  AND ($1 = '' OR o.id IN (
			SELECT oi.order_id FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE p.farmer_id::text = $1
		  ))
		GROUP BY o.status
		ORDER BY o.status
	`, farmerID, from, to)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []entity.OrderSummaryRow
	for rows.Next() {
		var s entity.OrderSummaryRow
		if err := rows.Scan(&s.Status, &s.Count, &s.RevenueCents); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, s)
	}
	return out, mapErr(rows.Err())
}

func (r *ReportRepository) AttendanceSummary(ctx context.Context, farmerID string, month time.Time) ([]entity.AttendanceSummaryRow, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.name,
		       count(*) FILTER (WHERE a.status = 'present'),
		       count(*) FILTER (WHERE a.status = 'absent'),
		       count(*) FILTER (WHERE a.status = 'half_day')
		FROM staff s
		LEFT JOIN attendance a ON a.staff_id = s.id AND a.work_date BETWEEN $2 AND $3
		WHERE s.farmer_id = $1
		GROUP BY s.id, s.name
		ORDER BY s.name
	`, farmerID, start, end)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []entity.AttendanceSummaryRow
	for rows.Next() {
		var s entity.AttendanceSummaryRow
		if err := rows.Scan(&s.StaffID, &s.Name, &s.Present, &s.Absent, &s.HalfDays); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, s)
	}
	return out, mapErr(rows.Err())
}

var _ repository.ReportRepository = (*ReportRepository)(nil)
