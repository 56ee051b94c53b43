package store

import (
	"context"
	"log/slog"

	"github.com/mkoren/stash/internal/model"
)

// CreateCustomer inserts a new customer under their normalized email and
// initializes empty item, archived, and order collections. When a remote
// directory is configured the customer is also submitted there,
// fire-and-forget: a remote failure never rolls back the local insert.
func (s *Store) CreateCustomer(customer model.Customer) (model.Customer, error) {
	email := model.NormalizeEmail(customer.Email)
	if email == "" {
		return model.Customer{}, &ValidationError{Reason: "email is required"}
	}
	customer.Email = email

	s.mu.Lock()
	if s.findCustomerLocked(email) != -1 {
		s.mu.Unlock()
		return model.Customer{}, &ConflictError{Email: email}
	}
	s.customers = append(s.customers, customer)
	s.ensureCollectionsLocked(email)
	s.saveLocked()
	s.mu.Unlock()

	if s.directory != nil {
		go s.submitCustomer(customer)
	}

	return customer, nil
}

// submitCustomer registers a locally created customer with the remote
// directory and records the backend id it assigns. Failures are swallowed.
func (s *Store) submitCustomer(customer model.Customer) {
	ctx, cancel := context.WithTimeout(context.Background(), directoryTimeout)
	defer cancel()

	remote, err := s.directory.SubmitCustomer(ctx, customer)
	if err != nil {
		slog.Warn("remote customer submit failed, keeping local only",
			"email", customer.Email, "error", err)
		return
	}
	if remote.BackendID == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.findCustomerLocked(customer.Email); idx != -1 {
		s.customers[idx].BackendID = remote.BackendID
		s.saveLocked()
	}
}

// Customer looks up a customer by email. Absence is reported via the bool,
// not an error.
func (s *Store) Customer(email string) (model.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.findCustomerLocked(model.NormalizeEmail(email))
	if idx == -1 {
		return model.Customer{}, false
	}
	return s.customers[idx], true
}

// Customers returns all customers. Order is insertion order, except that a
// remote list replacement keeps the remote order.
func (s *Store) Customers() []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// UpdateCustomer applies a partial update to a customer. If the patch
// changes the email, the customer's item, archived, and order collections
// are moved to the new key as one atomic rekey. Returns the resulting key
// so callers can update their references.
func (s *Store) UpdateCustomer(email string, patch model.CustomerPatch) (string, error) {
	key := model.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findCustomerLocked(key)
	if idx == -1 {
		return "", &NotFoundError{Kind: "customer", Key: key}
	}

	newKey := key
	if patch.Email != nil {
		newKey = model.NormalizeEmail(*patch.Email)
		if newKey == "" {
			return "", &ValidationError{Reason: "email is required"}
		}
	}

	if newKey != key {
		if s.findCustomerLocked(newKey) != -1 {
			return "", &ConflictError{Email: newKey}
		}
		// Rekey: move every owned collection, then drop the old entries.
		s.items[newKey] = s.items[key]
		s.archived[newKey] = s.archived[key]
		s.orders[newKey] = s.orders[key]
		delete(s.items, key)
		delete(s.archived, key)
		delete(s.orders, key)
	}

	s.customers[idx].Apply(patch)
	s.ensureCollectionsLocked(newKey)
	s.saveLocked()
	return newKey, nil
}

// ReplaceCustomers swaps in a customer list fetched from the remote
// directory. The remote order wins. Collections of customers no longer in
// the list are kept so local-only data survives a partial remote view.
func (s *Store) ReplaceCustomers(customers []model.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers = make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		c.Email = model.NormalizeEmail(c.Email)
		if c.Email == "" {
			continue
		}
		s.customers = append(s.customers, c)
		s.ensureCollectionsLocked(c.Email)
	}
	s.saveLocked()
}

// findCustomerLocked returns the index of the customer with the given
// normalized email, or -1. Caller holds at least the read lock.
func (s *Store) findCustomerLocked(email string) int {
	for i := range s.customers {
		if s.customers[i].Email == email {
			return i
		}
	}
	return -1
}
