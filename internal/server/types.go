package server

import (
	"github.com/adukale/gst-shopify/internal/model"
)

// GenerateRequest asks for one invoice by order display name or numeric
// order ID.
type GenerateRequest struct {
	OrderName string `json:"order_name"`
	OrderID   string `json:"order_id"`
}

// GenerateResponse carries the generated document plus advisory warnings
// (reconciliation mismatches are reported, never blocking).
type GenerateResponse struct {
	Invoice  *model.InvoiceDocument `json:"invoice"`
	Warnings []string               `json:"warnings,omitempty"`
}

// ErrorResponse is the standard error shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
