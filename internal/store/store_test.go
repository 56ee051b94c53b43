package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mkoren/stash/internal/model"
)

// memPersister is an in-memory Persister for tests. It counts saves so
// tests can assert that mutations write through.
type memPersister struct {
	data  Data
	ok    bool
	saves int
	fail  bool
}

func (p *memPersister) LoadSnapshot() (Data, bool, error) {
	return p.data, p.ok, nil
}

func (p *memPersister) SaveSnapshot(data Data) error {
	if p.fail {
		return errors.New("disk full")
	}
	p.data = data
	p.ok = true
	p.saves++
	return nil
}

// fakeDirectory is a scriptable Directory for tests.
type fakeDirectory struct {
	customers []model.Customer
	fetchErr  error
	submitErr error
	nextID    int64
	submitted chan model.Customer
}

func (d *fakeDirectory) FetchCustomers(ctx context.Context) ([]model.Customer, error) {
	if d.fetchErr != nil {
		return nil, d.fetchErr
	}
	return d.customers, nil
}

func (d *fakeDirectory) SubmitCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	if d.submitted != nil {
		defer func() { d.submitted <- c }()
	}
	if d.submitErr != nil {
		return model.Customer{}, d.submitErr
	}
	c.BackendID = d.nextID
	return c, nil
}

func newTestStore(t *testing.T) (*Store, *memPersister) {
	t.Helper()
	persist := &memPersister{}
	return New(persist, nil), persist
}

func TestLoadRestoresSnapshot(t *testing.T) {
	persist := &memPersister{}
	s := New(persist, nil)

	s.CreateCustomer(model.Customer{Email: "a@x.com", Name: "Alice"})
	s.AddItem("a@x.com", model.Item{Name: "Box", Quantity: 3})

	reloaded := New(persist, nil)
	if err := reloaded.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, ok := reloaded.Customer("a@x.com"); !ok {
		t.Error("expected customer to survive reload")
	}
	items := reloaded.ItemsFor("a@x.com")
	if len(items) != 1 || items[0].Name != "Box" {
		t.Errorf("expected item to survive reload, got %v", items)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Customers()) != 0 {
		t.Errorf("expected empty store, got %d customers", len(s.Customers()))
	}
}

func TestLoadRemoteListWins(t *testing.T) {
	persist := &memPersister{}
	local := New(persist, nil)
	local.CreateCustomer(model.Customer{Email: "a@x.com", Name: "Alice"})
	local.CreateCustomer(model.Customer{Email: "b@x.com", Name: "Bob"})

	dir := &fakeDirectory{customers: []model.Customer{
		{Email: "b@x.com", Name: "Bob"},
		{Email: "c@x.com", Name: "Carol"},
	}}
	s := New(persist, dir)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	customers := s.Customers()
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers from remote, got %d", len(customers))
	}
	if customers[0].Email != "b@x.com" || customers[1].Email != "c@x.com" {
		t.Errorf("expected remote order, got %v", customers)
	}
	// New remote customers get initialized collections.
	if items := s.ItemsFor("c@x.com"); items == nil || len(items) != 0 {
		t.Errorf("expected empty item collection for remote customer, got %v", items)
	}
}

func TestLoadRemoteFailureFallsBack(t *testing.T) {
	persist := &memPersister{}
	local := New(persist, nil)
	local.CreateCustomer(model.Customer{Email: "a@x.com", Name: "Alice"})

	dir := &fakeDirectory{fetchErr: errors.New("connection refused")}
	s := New(persist, dir)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load should swallow remote errors, got %v", err)
	}

	if _, ok := s.Customer("a@x.com"); !ok {
		t.Error("expected local customer list to survive remote failure")
	}
}

func TestSaveFailureDoesNotRollBack(t *testing.T) {
	persist := &memPersister{fail: true}
	s := New(persist, nil)

	if _, err := s.CreateCustomer(model.Customer{Email: "a@x.com"}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if _, ok := s.Customer("a@x.com"); !ok {
		t.Error("expected local mutation to stand despite save failure")
	}
}

func TestMutationsWriteThrough(t *testing.T) {
	s, persist := newTestStore(t)

	s.CreateCustomer(model.Customer{Email: "a@x.com"})
	item, _ := s.AddItem("a@x.com", model.Item{Name: "Box", Quantity: 5})
	s.ArchiveItem("a@x.com", item.ID, model.ArchiveReasonRemoved, "")

	if persist.saves != 3 {
		t.Errorf("expected 3 snapshot saves, got %d", persist.saves)
	}
	if len(persist.data.ArchivedByEmail["a@x.com"]) != 1 {
		t.Errorf("expected archived record in snapshot, got %v", persist.data.ArchivedByEmail)
	}
}
