package entity

import "time"

// CustomerProfile extends an Account with delivery preferences.
type CustomerProfile struct {
	AccountID       string
	DeliveryAddress string
	Preferences     map[string]any
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
