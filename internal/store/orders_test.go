package store

import (
	"errors"
	"testing"

	"github.com/mkoren/stash/internal/model"
)

func orderFixture(t *testing.T) (*Store, model.Item) {
	t.Helper()
	s, _ := newTestStore(t)
	s.CreateCustomer(model.Customer{Email: "a@x.com", Name: "Alice"})
	item, _ := s.AddItem("a@x.com", model.Item{Name: "Box", Quantity: 10})
	return s, item
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	s, item := orderFixture(t)

	order, err := s.CreateOrder("a@x.com", CreateOrderParams{ItemID: item.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.ID == "" || order.CreatedAt.IsZero() {
		t.Errorf("expected generated id and timestamp, got %+v", order)
	}
	if order.ItemName != "Box" {
		t.Errorf("expected item name snapshot, got %q", order.ItemName)
	}
	if order.Status != model.OrderPreparing {
		t.Errorf("expected default status Preparing, got %q", order.Status)
	}

	got, _ := s.Item("a@x.com", item.ID)
	if got.Quantity != 7 {
		t.Errorf("expected stock 7 after order, got %d", got.Quantity)
	}
}

func TestCreateOrderItemNameSnapshotSurvivesRename(t *testing.T) {
	s, item := orderFixture(t)
	order, _ := s.CreateOrder("a@x.com", CreateOrderParams{ItemID: item.ID, Quantity: 1})

	renamed, _ := s.Item("a@x.com", item.ID)
	renamed.Name = "Renamed Box"
	s.UpdateItem("a@x.com", renamed)

	got, _ := s.Order("a@x.com", order.ID)
	if got.ItemName != "Box" {
		t.Errorf("expected snapshotted name Box, got %q", got.ItemName)
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	s, item := orderFixture(t)

	_, err := s.CreateOrder("a@x.com", CreateOrderParams{ItemID: item.ID, Quantity: 11})
	var ise *InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if ise.Available != 10 || ise.Requested != 11 {
		t.Errorf("unexpected error detail: %+v", ise)
	}

	// No partial decrement, no order.
	got, _ := s.Item("a@x.com", item.ID)
	if got.Quantity != 10 {
		t.Errorf("expected stock unchanged at 10, got %d", got.Quantity)
	}
	if len(s.OrdersFor("a@x.com")) != 0 {
		t.Error("expected no order created")
	}
}

func TestCreateOrderInvalidQuantity(t *testing.T) {
	s, item := orderFixture(t)

	for _, q := range []int{0, -1} {
		_, err := s.CreateOrder("a@x.com", CreateOrderParams{ItemID: item.ID, Quantity: q})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("quantity %d: expected ValidationError, got %v", q, err)
		}
	}
}

func TestCreateOrderUnknownItem(t *testing.T) {
	s, _ := orderFixture(t)

	_, err := s.CreateOrder("a@x.com", CreateOrderParams{ItemID: "missing", Quantity: 1})
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nfe.Kind != "item" {
		t.Errorf("expected item not found, got %+v", nfe)
	}
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.CreateOrder("nobody@x.com", CreateOrderParams{ItemID: "x", Quantity: 1})
	var nfe *NotFoundError
	if !errors.As(err, &nfe) || nfe.Kind != "customer" {
		t.Errorf("expected customer NotFoundError, got %v", err)
	}
}

func TestCreateOrderRejectsCancelledStatus(t *testing.T) {
	s, item := orderFixture(t)

	_, err := s.CreateOrder("a@x.com", CreateOrderParams{
		ItemID:   item.ID,
		Quantity: 1,
		Status:   model.OrderCancelled,
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for cancelled initial status, got %v", err)
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	s, item := orderFixture(t)
	order, _ := s.CreateOrder("a@x.com", CreateOrderParams{ItemID: item.ID, Quantity: 3})

	cancelled, ok := s.CancelOrder("a@x.com", order.ID)
	if !ok {
		t.Fatal("CancelOrder reported no-op")
	}
	if cancelled.Status != model.OrderCancelled {
		t.Errorf("expected status Cancelled, got %q", cancelled.Status)
	}

	got, _ := s.Item("a@x.com", item.ID)
	if got.Quantity != 10 {
		t.Errorf("expected stock restored to 10, got %d", got.Quantity)
	}

	// Cancelling again is idempotent: stock must not change.
	s.CancelOrder("a@x.com", order.ID)
	got, _ = s.Item("a@x.com", item.ID)
	if got.Quantity != 10 {
		t.Errorf("double cancel changed stock: %d", got.Quantity)
	}
}

func TestCancelOrderUnknownIDIsNoOp(t *testing.T) {
	s, _ := orderFixture(t)

	if _, ok := s.CancelOrder("a@x.com", "missing"); ok {
		t.Error("expected no-op for unknown order id")
	}
}

func TestCancelOrderMissingItemSkipsRestock(t *testing.T) {
	s, item := orderFixture(t)
	order, _ := s.CreateOrder("a@x.com", CreateOrderParams{ItemID: item.ID, Quantity: 3})

	// Item disappears before the cancel.
	s.ArchiveItem("a@x.com", item.ID, model.ArchiveReasonRemoved, "")

	cancelled, ok := s.CancelOrder("a@x.com", order.ID)
	if !ok || cancelled.Status != model.OrderCancelled {
		t.Fatalf("expected order cancelled, got %+v ok=%v", cancelled, ok)
	}

	// Archived quantity keeps the post-order value; nothing was restocked.
	records := s.ArchivedFor("a@x.com")
	if len(records) != 1 || records[0].Item.Quantity != 7 {
		t.Errorf("expected archived quantity 7 untouched, got %+v", records)
	}
}

func TestUpdateOrderPatch(t *testing.T) {
	s, item := orderFixture(t)
	order, _ := s.CreateOrder("a@x.com", CreateOrderParams{ItemID: item.ID, Quantity: 2})

	status := model.OrderShipped
	tracking := "1Z999"
	updated, err := s.UpdateOrder("a@x.com", order.ID, model.OrderPatch{
		Status:         &status,
		TrackingNumber: &tracking,
	})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if updated.Status != model.OrderShipped || updated.TrackingNumber != "1Z999" {
		t.Errorf("unexpected order after patch: %+v", updated)
	}
	if updated.Quantity != 2 || updated.ItemName != "Box" {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
}

func TestUpdateOrderNotFound(t *testing.T) {
	s, _ := orderFixture(t)

	_, err := s.UpdateOrder("a@x.com", "missing", model.OrderPatch{})
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestUpdateOrderStatusCancelledDoesNotRestock(t *testing.T) {
	s, item := orderFixture(t)
	order, _ := s.CreateOrder("a@x.com", CreateOrderParams{ItemID: item.ID, Quantity: 3})

	// Free-setting the status bypasses restock; that is CancelOrder's job.
	status := model.OrderCancelled
	if _, err := s.UpdateOrder("a@x.com", order.ID, model.OrderPatch{Status: &status}); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}

	got, _ := s.Item("a@x.com", item.ID)
	if got.Quantity != 7 {
		t.Errorf("patching status to Cancelled must not restock, stock = %d", got.Quantity)
	}
}

func TestUpdateOrderCannotLeaveCancelled(t *testing.T) {
	s, item := orderFixture(t)
	order, _ := s.CreateOrder("a@x.com", CreateOrderParams{ItemID: item.ID, Quantity: 1})
	s.CancelOrder("a@x.com", order.ID)

	status := model.OrderPreparing
	_, err := s.UpdateOrder("a@x.com", order.ID, model.OrderPatch{Status: &status})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError leaving Cancelled, got %v", err)
	}
}
