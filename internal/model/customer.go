package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Customer represents a warehouse customer. The normalized email is the
// unique key under which all of the customer's collections are stored.
type Customer struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Company      string `json:"company,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	County       string `json:"county,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
	Notes        string `json:"notes,omitempty"`

	// Billing defaults used by auto pricing. A null value means "not set"
	// and falls back to pricing defaults (10/m³ storage, 0 otherwise).
	RatePerM3              decimal.NullDecimal `json:"rate_per_m3"`
	PrepCostPerUnit        decimal.NullDecimal `json:"prep_cost_per_unit"`
	FulfillmentCostPerUnit decimal.NullDecimal `json:"fulfillment_cost_per_unit"`

	// BackendID is assigned by the remote customer registry, 0 when the
	// customer only exists locally.
	BackendID int64 `json:"backend_id,omitempty"`
}

// NormalizeEmail trims and lowercases an email for use as a customer key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CustomerPatch is a partial customer update. Nil fields are left unchanged.
// A non-nil Email that differs from the current key triggers a rekey.
type CustomerPatch struct {
	Email        *string `json:"email,omitempty"`
	Name         *string `json:"name,omitempty"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Company      *string `json:"company,omitempty"`
	AddressLine1 *string `json:"address_line1,omitempty"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         *string `json:"city,omitempty"`
	County       *string `json:"county,omitempty"`
	State        *string `json:"state,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
	Country      *string `json:"country,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	RatePerM3              *decimal.NullDecimal `json:"rate_per_m3,omitempty"`
	PrepCostPerUnit        *decimal.NullDecimal `json:"prep_cost_per_unit,omitempty"`
	FulfillmentCostPerUnit *decimal.NullDecimal `json:"fulfillment_cost_per_unit,omitempty"`

	BackendID *int64 `json:"backend_id,omitempty"`
}

// Apply merges the patch into the customer. The email, if patched, is
// normalized.
func (c *Customer) Apply(p CustomerPatch) {
	if p.Email != nil {
		c.Email = NormalizeEmail(*p.Email)
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.AddressLine1 != nil {
		c.AddressLine1 = *p.AddressLine1
	}
	if p.AddressLine2 != nil {
		c.AddressLine2 = *p.AddressLine2
	}
	if p.City != nil {
		c.City = *p.City
	}
	if p.County != nil {
		c.County = *p.County
	}
	if p.State != nil {
		c.State = *p.State
	}
	if p.PostalCode != nil {
		c.PostalCode = *p.PostalCode
	}
	if p.Country != nil {
		c.Country = *p.Country
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.RatePerM3 != nil {
		c.RatePerM3 = *p.RatePerM3
	}
	if p.PrepCostPerUnit != nil {
		c.PrepCostPerUnit = *p.PrepCostPerUnit
	}
	if p.FulfillmentCostPerUnit != nil {
		c.FulfillmentCostPerUnit = *p.FulfillmentCostPerUnit
	}
	if p.BackendID != nil {
		c.BackendID = *p.BackendID
	}
}
