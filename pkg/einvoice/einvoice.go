// Package einvoice provides the public API for generating GST export
// e-invoices (LUT scheme) from Shopify orders.
//
// Example usage:
//
//	client := einvoice.NewClient("example.myshopify.com", token)
//	raw, err := client.FetchOrder(ctx, "123456")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	order, err := einvoice.Normalize(raw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := einvoice.NewBuilder().Build(order, seller)
package einvoice

import (
	"github.com/adukale/gst-shopify/internal/invoice"
	"github.com/adukale/gst-shopify/internal/model"
	"github.com/adukale/gst-shopify/internal/normalize"
	"github.com/adukale/gst-shopify/internal/shopify"
)

// Re-export core types for public use
type (
	InvoiceDocument = model.InvoiceDocument
	InvoiceLineItem = model.InvoiceLineItem
	ValueTotals     = model.ValueTotals
	SellerProfile   = model.SellerProfile
	NormalizedOrder = model.NormalizedOrder
	LineItem        = model.LineItem

	Client  = shopify.Client
	Builder = invoice.Builder
)

// Re-export error types
type (
	TransportError            = model.TransportError
	MaxRetriesExceededError   = model.MaxRetriesExceededError
	MissingRequiredFieldError = model.MissingRequiredFieldError
	IncompleteLineItemsError  = model.IncompleteLineItemsError
	NoInvoiceableItemsError   = model.NoInvoiceableItemsError
)

// Re-export schema constants
const (
	SupplyTypeExportLUT = model.SupplyTypeExportLUT
	FallbackHSNCode     = model.FallbackHSNCode
)

// NewClient creates a transport client for one store.
var NewClient = shopify.NewClient

// NewBuilder creates an invoice builder with the default policy.
var NewBuilder = invoice.NewBuilder

// Normalize converts a raw platform order into the internal model.
var Normalize = normalize.Normalize
