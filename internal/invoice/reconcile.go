package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/adukale/gst-shopify/internal/money"
)

// DefaultTolerance absorbs platform-side rounding when comparing totals.
var DefaultTolerance = money.MustFromString("0.01")

// CheckResult is the outcome of the advisory total reconciliation.
type CheckResult struct {
	OK         bool
	Computed   decimal.Decimal
	Expected   decimal.Decimal
	Delta      decimal.Decimal
	Diagnostic string
}

// ValidateTotal cross-checks the computed line-items total against the
// platform-reported subtotal minus discounts. The check is advisory:
// upstream totals can legitimately include taxes the export invoice
// omits, so a mismatch is logged by callers, never blocking.
func ValidateTotal(computed, platformSubtotal, platformDiscounts decimal.Decimal, tolerance decimal.Decimal) CheckResult {
	expected := platformSubtotal.Sub(platformDiscounts)
	delta := computed.Sub(expected).Abs()

	res := CheckResult{
		Computed: computed,
		Expected: expected,
		Delta:    delta,
	}
	if delta.LessThanOrEqual(tolerance) {
		res.OK = true
		res.Diagnostic = "line items total matches platform subtotal"
		return res
	}

	res.Diagnostic = fmt.Sprintf(
		"line items total validation failed: computed=%s expected(subtotal-discounts)=%s subtotal=%s discounts=%s delta=%s",
		computed.StringFixed(2), expected.StringFixed(2),
		platformSubtotal.StringFixed(2), platformDiscounts.StringFixed(2), delta.StringFixed(2))
	return res
}
