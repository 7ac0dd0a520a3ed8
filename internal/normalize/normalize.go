// Package normalize maps the raw, deeply nested platform order shape into
// the flat internal order model. Upstream objects can be absent at any
// nesting level; everything except the order identity degrades to a
// documented default instead of failing.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adukale/gst-shopify/internal/model"
	"github.com/adukale/gst-shopify/internal/money"
	"github.com/adukale/gst-shopify/internal/shopify"
)

// Normalize builds a NormalizedOrder from the raw order. It fails only
// when the order identity (id, name, creation date) is missing; every
// other absence degrades: empty strings for text, zero for amounts, the
// empty-string sentinel for a missing classification code.
func Normalize(raw *shopify.RemoteOrder) (*model.NormalizedOrder, error) {
	if raw == nil || raw.ID == "" {
		return nil, &model.MissingRequiredFieldError{Field: "id"}
	}
	if raw.Name == "" {
		return nil, &model.MissingRequiredFieldError{OrderID: raw.ID, Field: "name"}
	}
	if raw.CreatedAt == "" {
		return nil, &model.MissingRequiredFieldError{OrderID: raw.ID, Field: "createdAt"}
	}
	createdAt, err := time.Parse(time.RFC3339, raw.CreatedAt)
	if err != nil {
		return nil, &model.MissingRequiredFieldError{OrderID: raw.ID, Field: "createdAt"}
	}
	// A line-item connection with pages left would produce an invoice that
	// understates the totals. The fetcher drains the connection; refuse any
	// order that arrives partial regardless.
	if raw.LineItems.PageInfo.HasNextPage {
		return nil, &model.IncompleteLineItemsError{OrderID: raw.ID}
	}

	order := &model.NormalizedOrder{
		ID:           trimGID(raw.ID),
		Name:         raw.Name,
		CreatedAt:    createdAt,
		CustomerName: customerName(raw.Customer),
		ShipTo:       address(raw.ShippingAddress),
		Shipping:     amount(raw.TotalShippingPriceSet),
		Subtotal:     amount(raw.SubtotalPriceSet),
	}

	itemDiscounts := money.Zero
	for _, li := range raw.LineItems.Nodes() {
		item := normalizeItem(li)
		itemDiscounts = itemDiscounts.Add(item.Discount)
		order.Items = append(order.Items, item)
	}

	order.TotalDiscounts = amount(raw.TotalDiscountsSet)

	// Per-line discounts are already folded into line totals; only the
	// residual counts as an order-level discount. Floor at zero so a
	// platform rounding quirk can never inflate the invoice.
	residual := order.TotalDiscounts.Sub(itemDiscounts)
	if residual.IsNegative() {
		residual = money.Zero
	}
	order.OrderDiscount = residual

	return order, nil
}

func normalizeItem(li shopify.RemoteLineItem) model.LineItem {
	item := model.LineItem{
		Description: li.Title,
		SKU:         li.SKU,
		Quantity:    decimal.NewFromInt(int64(li.Quantity)),
		UnitPrice:   amount(li.OriginalUnitPriceSet),
		Discount:    amount(li.TotalDiscountSet),
		Fulfillment: fulfillment(li.FulfillmentStatus),
	}
	if li.Variant != nil {
		item.Barcode = li.Variant.Barcode
		if li.Variant.InventoryItem != nil {
			item.HSNCode = strings.TrimSpace(li.Variant.InventoryItem.HarmonizedSystemCode)
		}
	}
	return item
}

func fulfillment(status string) model.FulfillmentStatus {
	switch strings.ToLower(status) {
	case "fulfilled":
		return model.FulfillmentFulfilled
	case "partial":
		return model.FulfillmentPartial
	default:
		return model.FulfillmentUnfulfilled
	}
}

func customerName(c *shopify.RemoteCustomer) string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func address(a *shopify.RemoteAddress) model.Address {
	if a == nil {
		return model.Address{}
	}
	return model.Address{
		Line1: a.Address1,
		Line2: a.Address2,
		City:  a.City,
		Zip:   a.Zip,
	}
}

func amount(set *shopify.MoneySet) decimal.Decimal {
	if set == nil {
		return money.Zero
	}
	d, err := money.ParseAmount(set.ShopMoney.Amount)
	if err != nil {
		return money.Zero
	}
	return d
}

func trimGID(id string) string {
	if idx := strings.LastIndex(id, "/"); idx != -1 {
		return id[idx+1:]
	}
	return id
}
