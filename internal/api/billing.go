package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mkoren/stash/internal/model"
	"github.com/mkoren/stash/internal/pricing"
	"github.com/mkoren/stash/internal/store"
)

// BillingHandler computes billing breakdowns. Everything is derived live
// from current items and customer defaults; nothing here is stored.
type BillingHandler struct {
	Store *store.Store
}

type itemBilling struct {
	ItemID             string          `json:"item_id"`
	Name               string          `json:"name"`
	Quantity           int             `json:"quantity"`
	VolumeM3           float64         `json:"volume_m3"`
	BilledStorageUnits int64           `json:"billed_storage_units"`
	StorageCost        decimal.Decimal `json:"storage_cost"`
	PrepTotal          decimal.Decimal `json:"prep_total"`
	FulfillmentTotal   decimal.Decimal `json:"fulfillment_total"`
	MonthlyCost        decimal.Decimal `json:"monthly_cost"`
}

type orderBilling struct {
	OrderID  string          `json:"order_id"`
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Status   string          `json:"status"`
	Total    decimal.Decimal `json:"total"`
}

type billingResponse struct {
	Email        string          `json:"email"`
	Items        []itemBilling   `json:"items"`
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
	Orders       []orderBilling  `json:"orders"`
}

// Get handles GET /api/customers/{email}/billing.
func (h *BillingHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	customer, ok := h.Store.Customer(email)
	if !ok {
		jsonError(w, http.StatusNotFound, "customer not found")
		return
	}

	items := h.Store.ItemsFor(email)
	resp := billingResponse{
		Email:        customer.Email,
		Items:        make([]itemBilling, len(items)),
		MonthlyTotal: pricing.CustomerMonthlyCost(items, customer),
		Orders:       []orderBilling{},
	}

	for i, item := range items {
		resp.Items[i] = itemBilling{
			ItemID:             item.ID,
			Name:               item.Name,
			Quantity:           item.Quantity,
			VolumeM3:           pricing.Volume(item),
			BilledStorageUnits: pricing.BilledStorageUnits(item),
			StorageCost:        pricing.StorageCost(item, customer),
			PrepTotal:          pricing.PrepTotal(item, customer),
			FulfillmentTotal:   pricing.FulfillmentTotal(item, customer),
			MonthlyCost:        pricing.ItemMonthlyCost(item, customer),
		}
	}

	for _, order := range h.Store.OrdersFor(email) {
		var ref *model.Item
		if item, ok := h.Store.Item(email, order.ItemID); ok {
			ref = &item
		}
		resp.Orders = append(resp.Orders, orderBilling{
			OrderID:  order.ID,
			ItemName: order.ItemName,
			Quantity: order.Quantity,
			Status:   order.Status,
			Total:    pricing.OrderTotal(order, ref, customer),
		})
	}

	jsonResponse(w, http.StatusOK, resp)
}
