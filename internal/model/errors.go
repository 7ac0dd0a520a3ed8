package model

import "fmt"

// TransportError represents a non-retryable HTTP failure from the platform:
// bad query, auth failure, schema violation. The response body is carried
// verbatim for diagnostics.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("platform request failed with status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("platform request failed with status %d", e.Status)
}

// RateLimitedError is the internal signal for an HTTP 429. Callers normally
// never see it; the transport recovers via Retry-After backoff and only a
// blown retry budget escalates to MaxRetriesExceededError.
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfterSeconds)
}

// MaxRetriesExceededError indicates the transport exhausted its retry
// allowance, either the connection-failure bound or the rate-limit budget.
type MaxRetriesExceededError struct {
	Attempts int
	Cause    error
}

func (e *MaxRetriesExceededError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("max retries exceeded after %d attempts: %v", e.Attempts, e.Cause)
	}
	return fmt.Sprintf("max retries exceeded after %d attempts", e.Attempts)
}

func (e *MaxRetriesExceededError) Unwrap() error {
	return e.Cause
}

// MissingRequiredFieldError reports an order that cannot be normalized
// because a field the invoice cannot exist without is absent upstream.
type MissingRequiredFieldError struct {
	OrderID string
	Field   string
}

func (e *MissingRequiredFieldError) Error() string {
	if e.OrderID != "" {
		return fmt.Sprintf("order %s: required field %q missing", e.OrderID, e.Field)
	}
	return fmt.Sprintf("required field %q missing", e.Field)
}

// IncompleteLineItemsError reports an order whose line-item connection
// still has unfetched pages. An invoice built from a partial line set
// would silently understate the totals, so this is fatal for the order.
type IncompleteLineItemsError struct {
	OrderID string
}

func (e *IncompleteLineItemsError) Error() string {
	return fmt.Sprintf("order %s: line items incomplete, further pages not fetched", e.OrderID)
}

// NoInvoiceableItemsError reports an order left with zero eligible line
// items after fulfillment filtering.
type NoInvoiceableItemsError struct {
	OrderName string
}

func (e *NoInvoiceableItemsError) Error() string {
	return fmt.Sprintf("order %s has no invoiceable line items", e.OrderName)
}

// MutationError carries the per-item userErrors of one mutation batch.
// The batch as a whole succeeded at the HTTP level; these are record-level
// rejections the reconciler reports without retrying.
type MutationError struct {
	SKU      string
	Messages []string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("mutation rejected for sku %s: %v", e.SKU, e.Messages)
}
