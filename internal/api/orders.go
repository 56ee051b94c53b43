package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkoren/stash/internal/model"
	"github.com/mkoren/stash/internal/store"
)

// OrdersHandler handles fulfillment order endpoints.
type OrdersHandler struct {
	Store *store.Store
}

type createOrderRequest struct {
	ItemID              string          `json:"item_id"`
	Quantity            int             `json:"quantity"`
	Date                time.Time       `json:"date"`
	MaterialCostPerUnit decimal.Decimal `json:"material_cost_per_unit"`
	Status              string          `json:"status"`
	TrackingNumber      string          `json:"tracking_number"`
	EmailSubject        string          `json:"email_subject"`
	EmailBody           string          `json:"email_body"`
}

// List handles GET /api/customers/{email}/orders.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if _, ok := h.Store.Customer(email); !ok {
		jsonError(w, http.StatusNotFound, "customer not found")
		return
	}

	orders := h.Store.OrdersFor(email)
	if orders == nil {
		orders = []model.Order{}
	}
	jsonResponse(w, http.StatusOK, orders)
}

// Create handles POST /api/customers/{email}/orders. Stock is decremented
// atomically with the order insert.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ItemID == "" {
		jsonError(w, http.StatusBadRequest, "item_id required")
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	order, err := h.Store.CreateOrder(r.PathValue("email"), store.CreateOrderParams{
		ItemID:              req.ItemID,
		Quantity:            req.Quantity,
		Date:                req.Date,
		MaterialCostPerUnit: req.MaterialCostPerUnit,
		Status:              req.Status,
		TrackingNumber:      req.TrackingNumber,
		EmailSubject:        req.EmailSubject,
		EmailBody:           req.EmailBody,
	})
	if err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("order created", "user", claims.Username, "order", order.ID,
		"item", order.ItemID, "quantity", order.Quantity)
	jsonResponse(w, http.StatusCreated, order)
}

// Update handles PATCH /api/customers/{email}/orders/{id}. Status changes
// follow the forward-only lifecycle; a cancellation via patch does not
// restock, that is what Cancel is for.
func (h *OrdersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.OrderPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Store.UpdateOrder(r.PathValue("email"), r.PathValue("id"), patch)
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, order)
}

// Cancel handles POST /api/customers/{email}/orders/{id}/cancel. Cancelling
// restores the order's quantity to the item; repeating it changes nothing.
func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Store.CancelOrder(r.PathValue("email"), r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "order not found")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("order cancelled", "user", claims.Username, "order", order.ID)
	jsonResponse(w, http.StatusOK, order)
}
