package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkoren/stash/internal/model"
)

// CreateOrderParams are the caller-supplied fields for a new order.
type CreateOrderParams struct {
	ItemID              string
	Quantity            int
	Date                time.Time
	MaterialCostPerUnit decimal.Decimal
	Status              string
	TrackingNumber      string
	EmailSubject        string
	EmailBody           string
}

// CreateOrder creates an order against an active item and decrements that
// item's stock by the order quantity. The item's current name is
// snapshotted into the order. Stock decrement, order append, and success
// happen together: any failure leaves both collections untouched.
func (s *Store) CreateOrder(email string, p CreateOrderParams) (model.Order, error) {
	key := model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCustomerLocked(key) == -1 {
		return model.Order{}, &NotFoundError{Kind: "customer", Key: key}
	}

	idx := findItemLocked(s.items[key], p.ItemID)
	if idx == -1 {
		return model.Order{}, &NotFoundError{Kind: "item", Key: p.ItemID}
	}

	if p.Quantity <= 0 {
		return model.Order{}, &ValidationError{Reason: "order quantity must be a positive integer"}
	}

	status := p.Status
	if status == "" {
		status = model.OrderPreparing
	}
	if !model.ValidOrderStatus(status) || status == model.OrderCancelled {
		return model.Order{}, &ValidationError{Reason: "invalid initial order status"}
	}

	item := &s.items[key][idx]
	if item.Quantity < p.Quantity {
		return model.Order{}, &InsufficientStockError{
			ItemID:    item.ID,
			Requested: p.Quantity,
			Available: item.Quantity,
		}
	}

	item.Quantity -= p.Quantity
	order := model.Order{
		ID:                  uuid.NewString(),
		ItemID:              item.ID,
		ItemName:            item.Name,
		Quantity:            p.Quantity,
		Date:                p.Date,
		MaterialCostPerUnit: p.MaterialCostPerUnit,
		Status:              status,
		TrackingNumber:      p.TrackingNumber,
		EmailSubject:        p.EmailSubject,
		EmailBody:           p.EmailBody,
		CreatedAt:           time.Now().UTC(),
	}
	s.orders[key] = append(s.orders[key], order)
	s.saveLocked()
	return order, nil
}

// Order looks up an order by id.
func (s *Store) Order(email, orderID string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := model.NormalizeEmail(email)
	if idx := findOrderLocked(s.orders[key], orderID); idx != -1 {
		return s.orders[key][idx], true
	}
	return model.Order{}, false
}

// OrdersFor returns a customer's orders in creation order.
func (s *Store) OrdersFor(email string) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Order(nil), s.orders[model.NormalizeEmail(email)]...)
}

// UpdateOrder merges patch fields over an existing order. It never touches
// stock, even when the patch sets the status to Cancelled; restock is the
// business of CancelOrder alone. The one transition rule enforced here is
// that a cancelled order stays cancelled.
func (s *Store) UpdateOrder(email, orderID string, patch model.OrderPatch) (model.Order, error) {
	key := model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findOrderLocked(s.orders[key], orderID)
	if idx == -1 {
		return model.Order{}, &NotFoundError{Kind: "order", Key: orderID}
	}

	order := s.orders[key][idx]
	if patch.Status != nil && !model.CanTransition(order.Status, *patch.Status) {
		return model.Order{}, &ValidationError{
			Reason: "invalid status transition from " + order.Status + " to " + *patch.Status,
		}
	}

	if patch.Date != nil {
		order.Date = *patch.Date
	}
	if patch.MaterialCostPerUnit != nil {
		order.MaterialCostPerUnit = *patch.MaterialCostPerUnit
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.TrackingNumber != nil {
		order.TrackingNumber = *patch.TrackingNumber
	}
	if patch.EmailSubject != nil {
		order.EmailSubject = *patch.EmailSubject
	}
	if patch.EmailBody != nil {
		order.EmailBody = *patch.EmailBody
	}

	s.orders[key][idx] = order
	s.saveLocked()
	return order, nil
}

// CancelOrder cancels an order and restores its quantity to the referenced
// item. Cancelling an already-cancelled order is a no-op, so double cancel
// never restocks twice. If the item has been deleted or archived in the
// meantime the restock is skipped but the order is still marked cancelled.
// The bool reports whether the order exists.
func (s *Store) CancelOrder(email, orderID string) (model.Order, bool) {
	key := model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findOrderLocked(s.orders[key], orderID)
	if idx == -1 {
		return model.Order{}, false
	}

	order := s.orders[key][idx]
	if order.Status == model.OrderCancelled {
		return order, true
	}

	if itemIdx := findItemLocked(s.items[key], order.ItemID); itemIdx != -1 {
		s.items[key][itemIdx].Quantity += order.Quantity
	}
	order.Status = model.OrderCancelled
	s.orders[key][idx] = order
	s.saveLocked()
	return order, true
}

// findOrderLocked returns the index of the order with the given id, or -1.
func findOrderLocked(orders []model.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
