package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adukale/gst-shopify/internal/invoice"
	"github.com/adukale/gst-shopify/internal/money"
)

func TestValidateTotal(t *testing.T) {
	tests := []struct {
		name      string
		computed  string
		subtotal  string
		discounts string
		ok        bool
	}{
		{"exact match", "34.50", "34.50", "0.00", true},
		{"match after discounts", "34.50", "35.50", "1.00", true},
		{"within tolerance", "34.50", "34.51", "0.00", true},
		{"just outside tolerance", "34.50", "34.52", "0.00", false},
		{"platform includes tax invoice omits", "34.50", "38.00", "0.00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := invoice.ValidateTotal(
				money.MustFromString(tt.computed),
				money.MustFromString(tt.subtotal),
				money.MustFromString(tt.discounts),
				invoice.DefaultTolerance,
			)
			assert.Equal(t, tt.ok, res.OK)
			assert.NotEmpty(t, res.Diagnostic)
		})
	}
}

func TestValidateTotal_DiagnosticListsFigures(t *testing.T) {
	res := invoice.ValidateTotal(
		money.MustFromString("34.50"),
		money.MustFromString("38.00"),
		money.MustFromString("1.00"),
		invoice.DefaultTolerance,
	)
	assert.False(t, res.OK)
	assert.Contains(t, res.Diagnostic, "34.50")
	assert.Contains(t, res.Diagnostic, "37.00")
	assert.Contains(t, res.Diagnostic, "2.50")
	assert.True(t, res.Delta.Equal(money.MustFromString("2.50")))
}
