package invoice_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adukale/gst-shopify/internal/invoice"
	"github.com/adukale/gst-shopify/internal/model"
	"github.com/adukale/gst-shopify/internal/money"
)

func seller() model.SellerProfile {
	return model.SellerProfile{
		Gstin: "29AAACB1234F1Z5",
		LglNm: "Acme Exports Pvt Ltd",
		Addr1: "14 Industrial Estate",
		Loc:   "Bengaluru",
		Pin:   560001,
		Stcd:  "29",
	}
}

// scenarioOrder is the worked example: qty 3 @ 10.00, qty 1 @ 5.50 with
// 1.00 discount, shipping 2.00.
func scenarioOrder() *model.NormalizedOrder {
	return &model.NormalizedOrder{
		ID:           "123456",
		Name:         "#1001",
		CreatedAt:    time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC),
		CustomerName: "Asha Mehta",
		ShipTo:       model.Address{Line1: "12 Harbour Road", City: "Singapore"},
		Items: []model.LineItem{
			{
				Description: "Cotton Kurta",
				Barcode:     "8901234567890",
				Quantity:    money.MustFromString("3"),
				UnitPrice:   money.MustFromString("10.00"),
				Discount:    money.Zero,
				HSNCode:     "620520",
				Fulfillment: model.FulfillmentFulfilled,
			},
			{
				Description: "Silk Scarf",
				Quantity:    money.MustFromString("1"),
				UnitPrice:   money.MustFromString("5.50"),
				Discount:    money.MustFromString("1.00"),
				HSNCode:     "621410",
				Fulfillment: model.FulfillmentFulfilled,
			},
		},
		Shipping:      money.MustFromString("2.00"),
		Subtotal:      money.MustFromString("35.50"),
		OrderDiscount: money.Zero,
	}
}

func TestBuild_ScenarioTotals(t *testing.T) {
	doc, err := invoice.NewBuilder().Build(scenarioOrder(), seller())
	require.NoError(t, err)

	// Two product lines plus the freight line.
	require.Len(t, doc.ItemList, 3)
	assert.True(t, doc.ItemList[0].TotItemVal.Equal(money.MustFromString("30.00")))
	assert.True(t, doc.ItemList[1].TotItemVal.Equal(money.MustFromString("4.50")))
	assert.Equal(t, "8901234567890", doc.ItemList[0].Barcde)

	assert.True(t, doc.ValDtls.AssVal.Equal(money.MustFromString("34.50")),
		"AssVal = %s", doc.ValDtls.AssVal)
	assert.True(t, doc.ValDtls.OthChrg.Equal(money.MustFromString("2.00")))
	assert.True(t, doc.ValDtls.TotInvVal.Equal(money.MustFromString("36.50")),
		"TotInvVal = %s", doc.ValDtls.TotInvVal)
}

func TestBuild_Header(t *testing.T) {
	doc, err := invoice.NewBuilder().Build(scenarioOrder(), seller())
	require.NoError(t, err)

	assert.Equal(t, "1.1", doc.Version)
	assert.Equal(t, "GST", doc.TranDtls.TaxSch)
	assert.Equal(t, "EXPWOP", doc.TranDtls.SupTyp)
	assert.Equal(t, "INV", doc.DocDtls.Typ)
	assert.Equal(t, "#1001", doc.DocDtls.No)
	assert.Equal(t, "14/02/2026", doc.DocDtls.Dt, "date is day/month/year")

	assert.Equal(t, "URP", doc.BuyerDtls.Gstin)
	assert.Equal(t, "96", doc.BuyerDtls.Pos)
	assert.Equal(t, "96", doc.BuyerDtls.Stcd)
	assert.Equal(t, "999999", doc.BuyerDtls.Pin)
	assert.Equal(t, "Asha Mehta", doc.BuyerDtls.LglNm)
	assert.Equal(t, seller(), doc.SellerDtls, "seller block passes through untransformed")
}

func TestBuild_FreightLine(t *testing.T) {
	doc, err := invoice.NewBuilder().Build(scenarioOrder(), seller())
	require.NoError(t, err)

	freight := doc.ItemList[len(doc.ItemList)-1]
	assert.Equal(t, "3", freight.SlNo, "freight line follows the last product SlNo")
	assert.Equal(t, "Y", freight.IsServc)
	assert.Equal(t, model.FreightSACCode, freight.HsnCd)
	assert.True(t, freight.Qty.Equal(money.MustFromString("1")))
	assert.True(t, freight.UnitPrice.Equal(money.MustFromString("2.00")))
}

func TestBuild_NoFreightLineWithoutShipping(t *testing.T) {
	order := scenarioOrder()
	order.Shipping = money.Zero

	doc, err := invoice.NewBuilder().Build(order, seller())
	require.NoError(t, err)
	require.Len(t, doc.ItemList, 2)
	assert.True(t, doc.ValDtls.OthChrg.IsZero())
	assert.True(t, doc.ValDtls.TotInvVal.Equal(money.MustFromString("34.50")))
}

func TestBuild_OrderDiscountSubtractedOnce(t *testing.T) {
	order := scenarioOrder()
	order.OrderDiscount = money.MustFromString("4.00")

	doc, err := invoice.NewBuilder().Build(order, seller())
	require.NoError(t, err)
	assert.True(t, doc.ValDtls.Discount.Equal(money.MustFromString("4.00")))
	assert.True(t, doc.ValDtls.TotInvVal.Equal(money.MustFromString("32.50")),
		"34.50 + 2.00 - 4.00, TotInvVal = %s", doc.ValDtls.TotInvVal)
}

func TestBuild_HalfUpBoundary(t *testing.T) {
	order := scenarioOrder()
	order.Items = []model.LineItem{{
		Description: "Boundary",
		Quantity:    money.MustFromString("1"),
		UnitPrice:   money.MustFromString("2.005"),
		Discount:    money.Zero,
		HSNCode:     "620520",
		Fulfillment: model.FulfillmentFulfilled,
	}}
	order.Shipping = money.Zero

	doc, err := invoice.NewBuilder().Build(order, seller())
	require.NoError(t, err)
	assert.True(t, doc.ItemList[0].TotItemVal.Equal(money.MustFromString("2.01")),
		"2.005 rounds half up to 2.01, got %s", doc.ItemList[0].TotItemVal)
}

func TestBuild_MissingHSNFallback(t *testing.T) {
	order := scenarioOrder()
	order.Items[0].HSNCode = ""

	doc, err := invoice.NewBuilder().Build(order, seller())
	require.NoError(t, err)
	assert.Equal(t, model.FallbackHSNCode, doc.ItemList[0].HsnCd)
	for _, item := range doc.ItemList {
		assert.NotEmpty(t, item.HsnCd, "no line may carry an empty classification code")
	}
}

func TestBuild_UnfulfilledItemsSkipped(t *testing.T) {
	order := scenarioOrder()
	order.Items[0].Fulfillment = model.FulfillmentUnfulfilled

	doc, err := invoice.NewBuilder().Build(order, seller())
	require.NoError(t, err)

	// One product line plus freight; SlNo restarts at 1 for the
	// remaining eligible item.
	require.Len(t, doc.ItemList, 2)
	assert.Equal(t, "1", doc.ItemList[0].SlNo)
	assert.Equal(t, "Silk Scarf", doc.ItemList[0].PrdDesc)
	assert.True(t, doc.ValDtls.AssVal.Equal(money.MustFromString("4.50")))
}

func TestBuild_ZeroQuantityItemsSkipped(t *testing.T) {
	order := scenarioOrder()
	order.Items[0].Quantity = money.Zero

	doc, err := invoice.NewBuilder().Build(order, seller())
	require.NoError(t, err)

	// The zero-quantity line never lands on the document; the remaining
	// product line plus freight do.
	require.Len(t, doc.ItemList, 2)
	assert.Equal(t, "Silk Scarf", doc.ItemList[0].PrdDesc)
	assert.True(t, doc.ValDtls.AssVal.Equal(money.MustFromString("4.50")))
}

func TestBuild_FulfilledOnlyDisabled(t *testing.T) {
	order := scenarioOrder()
	order.Items[0].Fulfillment = model.FulfillmentUnfulfilled

	doc, err := invoice.NewBuilder(invoice.WithFulfilledOnly(false)).Build(order, seller())
	require.NoError(t, err)
	require.Len(t, doc.ItemList, 3)
}

func TestBuild_NoInvoiceableItems(t *testing.T) {
	order := scenarioOrder()
	for i := range order.Items {
		order.Items[i].Fulfillment = model.FulfillmentUnfulfilled
	}

	_, err := invoice.NewBuilder().Build(order, seller())
	require.Error(t, err)

	var noItems *model.NoInvoiceableItemsError
	require.ErrorAs(t, err, &noItems)
	assert.Equal(t, "#1001", noItems.OrderName)
}

func TestBuild_MissingBuyerNameIsEmptyString(t *testing.T) {
	order := scenarioOrder()
	order.CustomerName = ""

	doc, err := invoice.NewBuilder().Build(order, seller())
	require.NoError(t, err)
	assert.Equal(t, "", doc.BuyerDtls.LglNm)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"LglNm":""`, "never null")
}

func TestBuild_Idempotent(t *testing.T) {
	b := invoice.NewBuilder()

	first, err := b.Build(scenarioOrder(), seller())
	require.NoError(t, err)
	second, err := b.Build(scenarioOrder(), seller())
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "same inputs must serialize byte-identical")
}

func TestBuild_DecimalStringSerialization(t *testing.T) {
	doc, err := invoice.NewBuilder().Build(scenarioOrder(), seller())
	require.NoError(t, err)

	data, err := json.Marshal(doc.ValDtls)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"TotInvVal":"36.5"`, "monetary values serialize as decimal strings")
	assert.NotContains(t, string(data), `"TotInvVal":36.5`, "never a bare JSON float")
}
