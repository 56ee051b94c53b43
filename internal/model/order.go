package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a fulfillment order placed against a customer's item.
// ItemName is snapshotted at creation so later renames don't alter history.
type Order struct {
	ID                  string          `json:"id"`
	ItemID              string          `json:"item_id"`
	ItemName            string          `json:"item_name"`
	Quantity            int             `json:"quantity"`
	Date                time.Time       `json:"date"`
	MaterialCostPerUnit decimal.Decimal `json:"material_cost_per_unit"`
	Status              string          `json:"status"`
	TrackingNumber      string          `json:"tracking_number,omitempty"`
	EmailSubject        string          `json:"email_subject,omitempty"`
	EmailBody           string          `json:"email_body,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// Order statuses.
const (
	OrderPreparing = "Preparing"
	OrderShipped   = "Shipped"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPreparing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order status change is allowed. Orders
// move forward through Preparing, Shipped, Delivered (skipping is fine),
// may be cancelled from any live state, and never leave Cancelled.
func CanTransition(from, to string) bool {
	if !ValidOrderStatus(from) || !ValidOrderStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	if from == OrderCancelled {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	ranks := map[string]int{
		OrderPreparing: 1,
		OrderShipped:   2,
		OrderDelivered: 3,
	}
	return ranks[to] > ranks[from]
}

// OrderPatch is a partial order update. Nil fields are left unchanged.
// Quantity is deliberately not patchable: cancellation must restore exactly
// the quantity the order consumed. Patching the status does not trigger
// stock changes; cancellation with restock goes through the store's
// CancelOrder.
type OrderPatch struct {
	Date                *time.Time       `json:"date,omitempty"`
	MaterialCostPerUnit *decimal.Decimal `json:"material_cost_per_unit,omitempty"`
	Status              *string          `json:"status,omitempty"`
	TrackingNumber      *string          `json:"tracking_number,omitempty"`
	EmailSubject        *string          `json:"email_subject,omitempty"`
	EmailBody           *string          `json:"email_body,omitempty"`
}
