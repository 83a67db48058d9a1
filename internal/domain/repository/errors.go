package repository

import "errors"

var (
	// ErrNotFound: the id or key resolved to nothing.
	ErrNotFound = errors.New("not found")
	// ErrConflict: unique-constraint violation (email, phone, national id,
	// attendance day, milk shift).
	ErrConflict = errors.New("conflict")
	// ErrInsufficientStock: an order line exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStaleStatus: a conditional status write matched zero rows because
	// the order moved on concurrently.
	ErrStaleStatus = errors.New("stale order status")
)
