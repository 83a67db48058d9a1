package entity

import "time"

// Product is a farm product listed for sale by a farmer.
type Product struct {
	ID          string
	FarmerID    string
	Name        string
	Category    string
	Description string
	Unit        string // e.g. "liter", "kg", "dozen"
	PriceCents  int64
	Stock       int
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
