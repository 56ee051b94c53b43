// Package pricing computes storage billing and order costs. All functions
// are pure: they read items, customer billing defaults, and orders, and
// never cache derived values.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mkoren/stash/internal/model"
)

// DefaultRatePerM3 is the monthly storage rate used when a customer has no
// rate of their own.
var DefaultRatePerM3 = decimal.NewFromInt(10)

// Volume returns an item's total volume in cubic meters across its full
// quantity. Dimensions are in centimeters.
func Volume(item model.Item) float64 {
	return item.WidthCm * item.LengthCm * item.HeightCm * float64(item.Quantity) / 1_000_000
}

// BilledStorageUnits returns the number of cubic-meter units the item is
// billed for: fractional volumes round up, and every item is billed for at
// least one unit no matter how small. Minimum-billing policy, not rounding.
func BilledStorageUnits(item model.Item) int64 {
	units := int64(math.Ceil(Volume(item)))
	if units < 1 {
		return 1
	}
	return units
}

// StorageCost returns the item's monthly storage cost. Manual mode uses the
// item's override; auto mode multiplies billed units by the customer's rate,
// falling back to DefaultRatePerM3 when the customer has none set.
func StorageCost(item model.Item, customer model.Customer) decimal.Decimal {
	if item.PricingMode == model.PricingManual {
		if item.ManualMonthlyCost.Valid {
			return item.ManualMonthlyCost.Decimal
		}
		return decimal.Zero
	}

	rate := DefaultRatePerM3
	if customer.RatePerM3.Valid {
		rate = customer.RatePerM3.Decimal
	}
	return rate.Mul(decimal.NewFromInt(BilledStorageUnits(item)))
}

// PrepUnitCost returns the per-unit prep cost for an item.
func PrepUnitCost(item model.Item, customer model.Customer) decimal.Decimal {
	if item.PrepPricingMode == model.PricingManual {
		if item.ManualPrepCost.Valid {
			return item.ManualPrepCost.Decimal
		}
		return decimal.Zero
	}
	if customer.PrepCostPerUnit.Valid {
		return customer.PrepCostPerUnit.Decimal
	}
	return decimal.Zero
}

// FulfillmentUnitCost returns the per-unit fulfillment cost for an item.
func FulfillmentUnitCost(item model.Item, customer model.Customer) decimal.Decimal {
	if item.FulfillmentPricingMode == model.PricingManual {
		if item.ManualFulfillmentCost.Valid {
			return item.ManualFulfillmentCost.Decimal
		}
		return decimal.Zero
	}
	if customer.FulfillmentCostPerUnit.Valid {
		return customer.FulfillmentCostPerUnit.Decimal
	}
	return decimal.Zero
}

// PrepTotal returns the item's prep cost across its full quantity.
func PrepTotal(item model.Item, customer model.Customer) decimal.Decimal {
	return PrepUnitCost(item, customer).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// FulfillmentTotal returns the item's fulfillment cost across its full
// quantity.
func FulfillmentTotal(item model.Item, customer model.Customer) decimal.Decimal {
	return FulfillmentUnitCost(item, customer).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// ItemMonthlyCost returns storage plus prep and fulfillment totals for a
// single item.
func ItemMonthlyCost(item model.Item, customer model.Customer) decimal.Decimal {
	return StorageCost(item, customer).
		Add(PrepTotal(item, customer)).
		Add(FulfillmentTotal(item, customer))
}

// CustomerMonthlyCost sums ItemMonthlyCost over a customer's active items.
// No additional rounding happens at the aggregate level.
func CustomerMonthlyCost(items []model.Item, customer model.Customer) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(ItemMonthlyCost(item, customer))
	}
	return total
}

// OrderTotal returns the order's cost: quantity times the sum of material,
// prep, and fulfillment per-unit costs. Prep and fulfillment are read from
// the referenced item's current state; item is nil when it has since been
// deleted or archived, in which case the customer's defaults apply. Totals
// are recomputed live and change when item pricing or customer defaults do.
func OrderTotal(order model.Order, item *model.Item, customer model.Customer) decimal.Decimal {
	var prep, fulfillment decimal.Decimal
	if item != nil {
		prep = PrepUnitCost(*item, customer)
		fulfillment = FulfillmentUnitCost(*item, customer)
	} else {
		if customer.PrepCostPerUnit.Valid {
			prep = customer.PrepCostPerUnit.Decimal
		}
		if customer.FulfillmentCostPerUnit.Valid {
			fulfillment = customer.FulfillmentCostPerUnit.Decimal
		}
	}

	perUnit := order.MaterialCostPerUnit.Add(prep).Add(fulfillment)
	return perUnit.Mul(decimal.NewFromInt(int64(order.Quantity)))
}
