package api

import (
	"log/slog"
	"net/http"

	"github.com/mkoren/stash/internal/model"
	"github.com/mkoren/stash/internal/store"
)

// CustomersHandler handles customer directory endpoints.
type CustomersHandler struct {
	Store *store.Store
}

// List handles GET /api/customers.
func (h *CustomersHandler) List(w http.ResponseWriter, r *http.Request) {
	customers := h.Store.Customers()
	if customers == nil {
		customers = []model.Customer{}
	}
	jsonResponse(w, http.StatusOK, customers)
}

// Create handles POST /api/customers.
func (h *CustomersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var customer model.Customer
	if err := decodeJSON(r, &customer); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Store.CreateCustomer(customer)
	if err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("customer created", "user", claims.Username, "customer", created.Email)
	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/customers/{email}.
func (h *CustomersHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.Store.Customer(r.PathValue("email"))
	if !ok {
		jsonError(w, http.StatusNotFound, "customer not found")
		return
	}
	jsonResponse(w, http.StatusOK, customer)
}

// Update handles PATCH /api/customers/{email}. An email change rekeys the
// customer's collections; the response carries the customer under the new
// key.
func (h *CustomersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.CustomerPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newKey, err := h.Store.UpdateCustomer(r.PathValue("email"), patch)
	if err != nil {
		storeError(w, err)
		return
	}

	customer, _ := h.Store.Customer(newKey)
	claims := GetClaims(r.Context())
	slog.Info("customer updated", "user", claims.Username, "customer", newKey)
	jsonResponse(w, http.StatusOK, customer)
}
