package entity

// Aggregation read models. Computed in SQL, cached briefly in Redis.

type MilkDailyTotal struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Liters float64 `json:"liters"`
}

type MilkMonthlyTotal struct {
	Month  string  `json:"month"` // YYYY-MM
	Liters float64 `json:"liters"`
}

type OrderSummaryRow struct {
	Status       string `json:"status"`
	Count        int64  `json:"count"`
	RevenueCents int64  `json:"revenue_cents"`
}

type AttendanceSummaryRow struct {
	StaffID  string `json:"staff_id"`
	Name     string `json:"name"`
	Present  int64  `json:"present"`
	Absent   int64  `json:"absent"`
	HalfDays int64  `json:"half_days"`
}
