package entity

import "time"

// FarmerProfile extends an Account with farm attributes and bank details.
// BankAccountNumber and BankRoutingCode are stored encrypted ("iv:ct" hex
// pair); repositories decrypt on read, so in-memory values are plaintext.
type FarmerProfile struct {
	AccountID         string
	FarmName          string
	Location          string
	FarmSizeAcres     float64
	LivestockCount    int
	BankAccountNumber string
	BankRoutingCode   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
