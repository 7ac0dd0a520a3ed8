package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FulfillmentStatus is the per-line fulfillment state reported by the
// platform. Anything other than Fulfilled is not invoiceable under the
// default policy.
type FulfillmentStatus string

const (
	FulfillmentFulfilled   FulfillmentStatus = "fulfilled"
	FulfillmentUnfulfilled FulfillmentStatus = "unfulfilled"
	FulfillmentPartial     FulfillmentStatus = "partial"
)

// LineItem is one normalized order line. HSNCode is empty when the
// platform carries no classification for the variant; the invoice builder
// owns the fallback, the normalizer never invents a value.
type LineItem struct {
	Description string
	SKU         string
	Barcode     string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	HSNCode     string
	Fulfillment FulfillmentStatus
}

// Fulfilled reports whether the line is eligible under a fulfilled-only
// invoicing policy.
func (li LineItem) Fulfilled() bool {
	return li.Fulfillment == FulfillmentFulfilled
}

// Address is a flattened shipping address. Absent upstream fields are
// empty strings, never nulls, to satisfy the e-invoice schema downstream.
type Address struct {
	Line1 string
	Line2 string
	City  string
	Zip   string
}

// NormalizedOrder is the flat internal order representation produced by
// the normalizer and consumed exactly once by the invoice builder.
// Immutable once built.
type NormalizedOrder struct {
	ID           string
	Name         string
	CreatedAt    time.Time
	CustomerName string
	ShipTo       Address
	Items        []LineItem

	Shipping decimal.Decimal

	// Platform-reported aggregates, used only by the advisory
	// reconciliation check.
	Subtotal       decimal.Decimal
	TotalDiscounts decimal.Decimal

	// OrderDiscount is the order-level discount residual: total discounts
	// minus the per-line discounts already folded into line totals,
	// floored at zero so nothing is subtracted twice.
	OrderDiscount decimal.Decimal
}
