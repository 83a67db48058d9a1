package entity

import "time"

// Milking shifts.
const (
	ShiftMorning = "morning"
	ShiftEvening = "evening"
)

// MilkRecord is one production entry per farmer, date and shift.
type MilkRecord struct {
	ID             string
	FarmerID       string
	RecordDate     time.Time
	Shift          string
	QuantityLiters float64
	Notes          string
	CreatedAt      time.Time
}
