package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkoren/stash/internal/model"
)

func TestAddItemGeneratesID(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateCustomer(model.Customer{Email: "a@x.com"})

	first, ok := s.AddItem("a@x.com", model.Item{Name: "Box", Quantity: 3})
	if !ok {
		t.Fatal("AddItem returned no-op for existing customer")
	}
	second, _ := s.AddItem("a@x.com", model.Item{Name: "Crate", Quantity: 1})

	if first.ID == "" || second.ID == "" {
		t.Error("expected generated ids")
	}
	if first.ID == second.ID {
		t.Error("expected unique ids")
	}
	if first.DateAdded.IsZero() {
		t.Error("expected a default date added")
	}
}

func TestAddItemUnknownCustomerIsNoOp(t *testing.T) {
	s, persist := newTestStore(t)

	_, ok := s.AddItem("nobody@x.com", model.Item{Name: "Box"})
	if ok {
		t.Error("expected no-op for unknown customer")
	}
	if persist.saves != 0 {
		t.Error("no-op should not persist a snapshot")
	}
}

func TestUpdateItem(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateCustomer(model.Customer{Email: "a@x.com"})
	added, _ := s.AddItem("a@x.com", model.Item{Name: "Box", Quantity: 3, Location: "A1"})

	updated := added
	updated.Name = "Big Box"
	updated.Quantity = 5
	updated.DateAdded = time.Time{} // callers may omit it
	if !s.UpdateItem("a@x.com", updated) {
		t.Fatal("UpdateItem reported no-op")
	}

	got, _ := s.Item("a@x.com", added.ID)
	if got.Name != "Big Box" || got.Quantity != 5 {
		t.Errorf("unexpected item after update: %+v", got)
	}
	if !got.DateAdded.Equal(added.DateAdded) {
		t.Errorf("expected DateAdded preserved, got %v", got.DateAdded)
	}
}

func TestUpdateItemUnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateCustomer(model.Customer{Email: "a@x.com"})

	if s.UpdateItem("a@x.com", model.Item{ID: "missing", Name: "Ghost"}) {
		t.Error("expected no-op for unknown item id")
	}
}

func TestArchiveRestoreRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateCustomer(model.Customer{Email: "a@x.com"})
	added, _ := s.AddItem("a@x.com", model.Item{
		Name:              "Box",
		Quantity:          7,
		WidthCm:           50,
		LengthCm:          40,
		HeightCm:          30,
		Barcode:           "123456",
		Location:          "Aisle 4",
		PricingMode:       model.PricingManual,
		ManualMonthlyCost: decimal.NullDecimal{Decimal: decimal.NewFromInt(9), Valid: true},
	})

	if !s.ArchiveItem("a@x.com", added.ID, model.ArchiveReasonDamaged, "water damage") {
		t.Fatal("ArchiveItem reported no-op")
	}
	if len(s.ItemsFor("a@x.com")) != 0 {
		t.Error("item still active after archive")
	}

	records := s.ArchivedFor("a@x.com")
	if len(records) != 1 {
		t.Fatalf("expected 1 archived record, got %d", len(records))
	}
	rec := records[0]
	if rec.Reason != model.ArchiveReasonDamaged || rec.Notes != "water damage" {
		t.Errorf("unexpected archive metadata: %+v", rec)
	}
	if rec.ArchivedAt.IsZero() {
		t.Error("expected an archive timestamp")
	}
	if !reflect.DeepEqual(rec.Item, added) {
		t.Errorf("archived item differs from original:\n got %+v\nwant %+v", rec.Item, added)
	}

	if !s.RestoreItem("a@x.com", added.ID) {
		t.Fatal("RestoreItem reported no-op")
	}
	if len(s.ArchivedFor("a@x.com")) != 0 {
		t.Error("record still archived after restore")
	}

	items := s.ItemsFor("a@x.com")
	if len(items) != 1 {
		t.Fatalf("expected 1 active item after restore, got %d", len(items))
	}
	if !reflect.DeepEqual(items[0], added) {
		t.Errorf("restored item differs from original:\n got %+v\nwant %+v", items[0], added)
	}
}

func TestArchiveUnknownItemIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateCustomer(model.Customer{Email: "a@x.com"})

	if s.ArchiveItem("a@x.com", "missing", model.ArchiveReasonOther, "") {
		t.Error("expected no-op for unknown item")
	}
}

func TestPurgeArchived(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateCustomer(model.Customer{Email: "a@x.com"})
	added, _ := s.AddItem("a@x.com", model.Item{Name: "Box", Quantity: 1})
	keep, _ := s.AddItem("a@x.com", model.Item{Name: "Crate", Quantity: 1})
	s.ArchiveItem("a@x.com", added.ID, model.ArchiveReasonRemoved, "")
	s.ArchiveItem("a@x.com", keep.ID, model.ArchiveReasonRemoved, "")

	if !s.PurgeArchived("a@x.com", added.ID) {
		t.Fatal("PurgeArchived reported no-op")
	}

	records := s.ArchivedFor("a@x.com")
	if len(records) != 1 || records[0].Item.ID != keep.ID {
		t.Errorf("unexpected archived records after purge: %+v", records)
	}
	if len(s.ItemsFor("a@x.com")) != 0 {
		t.Error("purge must not touch active inventory")
	}

	if s.PurgeArchived("a@x.com", added.ID) {
		t.Error("expected no-op for already purged record")
	}
}
