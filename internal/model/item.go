package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a physical item stored on behalf of a customer.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	WidthCm  float64 `json:"width_cm"`
	LengthCm float64 `json:"length_cm"`
	HeightCm float64 `json:"height_cm"`
	Barcode  string  `json:"barcode,omitempty"`
	Location string  `json:"location,omitempty"`

	// Pricing-mode toggles. An empty mode means auto.
	PricingMode       string              `json:"pricing_mode,omitempty"`
	ManualMonthlyCost decimal.NullDecimal `json:"manual_monthly_cost"`

	PrepPricingMode string              `json:"prep_pricing_mode,omitempty"`
	ManualPrepCost  decimal.NullDecimal `json:"manual_prep_cost"`

	FulfillmentPricingMode string              `json:"fulfillment_pricing_mode,omitempty"`
	ManualFulfillmentCost  decimal.NullDecimal `json:"manual_fulfillment_cost"`

	DateAdded time.Time `json:"date_added"`
}

// Pricing modes.
const (
	PricingAuto   = "auto"
	PricingManual = "manual"
)
