package store

import "fmt"

// ValidationError reports malformed or missing required input, such as an
// empty email or a non-positive order quantity.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConflictError reports a duplicate customer email.
type ConflictError struct {
	Email string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("customer with email %q already exists", e.Email)
}

// NotFoundError reports an unknown customer, item, or order key.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// InsufficientStockError reports an order quantity exceeding the referenced
// item's available stock.
type InsufficientStockError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}
