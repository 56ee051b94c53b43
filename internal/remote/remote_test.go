package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkoren/stash/internal/model"
)

func TestFetchCustomers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/customers/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 7, "email": "Ana@Example.com", "name": "Ana", "rate_per_m3": "12.50"},
			{"id": 8, "email": "bo@example.com", "name": "Bo"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok")
	customers, err := client.FetchCustomers(context.Background())
	if err != nil {
		t.Fatalf("FetchCustomers: %v", err)
	}

	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}
	if customers[0].Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %q", customers[0].Email)
	}
	if customers[0].BackendID != 7 {
		t.Errorf("expected backend id 7, got %d", customers[0].BackendID)
	}
	if !customers[0].RatePerM3.Valid || !customers[0].RatePerM3.Decimal.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("expected rate 12.50, got %v", customers[0].RatePerM3)
	}
	if customers[1].RatePerM3.Valid {
		t.Error("expected unset rate for second customer")
	}
}

func TestFetchCustomersServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.FetchCustomers(context.Background()); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestSubmitCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		var dto map[string]any
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if dto["email"] != "ana@example.com" {
			t.Errorf("unexpected email %v", dto["email"])
		}
		if _, ok := dto["id"]; ok {
			t.Error("id should not be sent on submit")
		}

		dto["id"] = 42
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dto)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok")
	got, err := client.SubmitCustomer(context.Background(), model.Customer{
		Email: "ana@example.com",
		Name:  "Ana",
	})
	if err != nil {
		t.Fatalf("SubmitCustomer: %v", err)
	}
	if got.BackendID != 42 {
		t.Errorf("expected backend id 42, got %d", got.BackendID)
	}
	if got.Email != "ana@example.com" {
		t.Errorf("unexpected email %q", got.Email)
	}
}

func TestSubmitCustomerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "duplicate", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.SubmitCustomer(context.Background(), model.Customer{Email: "x@y.com"}); err == nil {
		t.Error("expected error for rejected submit")
	}
}
