// Package invoice constructs GST export e-invoice documents (LUT scheme)
// from normalized orders, and cross-checks the computed totals against the
// platform-reported aggregates.
package invoice

import (
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/adukale/gst-shopify/internal/model"
	"github.com/adukale/gst-shopify/internal/money"
)

// DateLayout is the document date format required by the schema.
const DateLayout = "02/01/2006"

// Builder turns a NormalizedOrder plus SellerProfile into an
// InvoiceDocument. Building is deterministic: the same inputs produce a
// byte-identical serialized document.
type Builder struct {
	requireFulfilled bool
	log              *zap.SugaredLogger
}

// Option configures the builder.
type Option func(*Builder)

// WithFulfilledOnly controls whether unfulfilled line items are skipped.
// The default invoices shipped goods only.
func WithFulfilledOnly(v bool) Option {
	return func(b *Builder) { b.requireFulfilled = v }
}

// WithLogger attaches a logger for skip diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(b *Builder) { b.log = log }
}

// NewBuilder creates a builder with the default fulfilled-only policy.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		requireFulfilled: true,
		log:              zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs the e-invoice document. It fails with
// NoInvoiceableItemsError when fulfillment filtering leaves no lines.
func (b *Builder) Build(order *model.NormalizedOrder, seller model.SellerProfile) (*model.InvoiceDocument, error) {
	doc := &model.InvoiceDocument{
		Version: model.SchemaVersion,
		TranDtls: model.TranDtls{
			TaxSch:      model.TaxScheme,
			SupTyp:      model.SupplyTypeExportLUT,
			IgstOnIntra: "N",
			RegRev:      "N",
			EcmGstin:    nil,
		},
		DocDtls: model.DocDtls{
			Typ: model.DocumentTypeInvoice,
			No:  order.Name,
			Dt:  order.CreatedAt.Format(DateLayout),
		},
		SellerDtls: seller,
		BuyerDtls: model.BuyerDtls{
			Gstin: model.BuyerGSTINUnregistered,
			LglNm: order.CustomerName,
			Pos:   model.PlaceOfSupplyExport,
			Addr1: order.ShipTo.Line1,
			Addr2: order.ShipTo.Line2,
			Loc:   order.ShipTo.City,
			Pin:   model.ExportPincode,
			Stcd:  model.PlaceOfSupplyExport,
		},
	}

	assVal := money.Zero
	slNo := 0
	for _, item := range order.Items {
		if b.requireFulfilled && !item.Fulfilled() {
			b.log.Debugw("skipping line item, not fulfilled",
				"order", order.Name, "item", item.Description, "status", item.Fulfillment)
			continue
		}
		// Zero or negative quantities are invalid; a zero-value line on the
		// document would be noise at best.
		if !item.Quantity.IsPositive() {
			b.log.Warnw("skipping line item, non-positive quantity",
				"order", order.Name, "item", item.Description, "quantity", item.Quantity)
			continue
		}
		slNo++
		before, total := money.LineTotal(item.UnitPrice, item.Quantity, item.Discount)
		doc.ItemList = append(doc.ItemList, productLine(slNo, item, before, total))
		assVal = assVal.Add(total)
	}

	if len(doc.ItemList) == 0 {
		return nil, &model.NoInvoiceableItemsError{OrderName: order.Name}
	}

	othChrg := money.Zero
	if money.IsPositive(order.Shipping) {
		shipping := money.Round2(order.Shipping)
		doc.ItemList = append(doc.ItemList, freightLine(slNo+1, shipping))
		othChrg = shipping
	}

	// Assessable value covers product lines; shipping rides in OthChrg;
	// the order-level discount is subtracted exactly once, and the grand
	// total is rounded once, at the end.
	doc.ValDtls = model.ValueTotals{
		AssVal:    assVal,
		CgstVal:   money.Zero,
		SgstVal:   money.Zero,
		IgstVal:   money.Zero,
		CesVal:    money.Zero,
		StCesVal:  money.Zero,
		Discount:  order.OrderDiscount,
		OthChrg:   othChrg,
		RndOffAmt: money.Zero,
		TotInvVal: money.Round2(assVal.Add(othChrg).Sub(order.OrderDiscount)),
	}

	return doc, nil
}

func productLine(slNo int, item model.LineItem, before, total decimal.Decimal) model.InvoiceLineItem {
	hsn := item.HSNCode
	if hsn == "" {
		hsn = model.FallbackHSNCode
	}
	return model.InvoiceLineItem{
		SlNo:      strconv.Itoa(slNo),
		PrdDesc:   item.Description,
		IsServc:   "N",
		HsnCd:     hsn,
		Barcde:    item.Barcode,
		Unit:      "PCS",
		Qty:       item.Quantity,
		FreeQty:   money.Zero,
		UnitPrice: item.UnitPrice,
		TotAmt:    before,
		Discount:  item.Discount,
		PreTaxVal: total,
		AssAmt:    total,

		GstRt:              money.Zero,
		IgstAmt:            money.Zero,
		CgstAmt:            money.Zero,
		SgstAmt:            money.Zero,
		CesRt:              money.Zero,
		CesAmt:             money.Zero,
		CesNonAdvlAmt:      money.Zero,
		StateCesRt:         money.Zero,
		StateCesAmt:        money.Zero,
		StateCesNonAdvlAmt: money.Zero,

		OthChrg:    money.Zero,
		TotItemVal: total,
	}
}

// freightLine synthesizes the shipping-charge service line appended after
// the product lines.
func freightLine(slNo int, shipping decimal.Decimal) model.InvoiceLineItem {
	one := decimal.NewFromInt(1)
	return model.InvoiceLineItem{
		SlNo:      strconv.Itoa(slNo),
		PrdDesc:   "Shipping charges",
		IsServc:   "Y",
		HsnCd:     model.FreightSACCode,
		Unit:      "OTH",
		Qty:       one,
		FreeQty:   money.Zero,
		UnitPrice: shipping,
		TotAmt:    shipping,
		Discount:  money.Zero,
		PreTaxVal: shipping,
		AssAmt:    shipping,

		GstRt:              money.Zero,
		IgstAmt:            money.Zero,
		CgstAmt:            money.Zero,
		SgstAmt:            money.Zero,
		CesRt:              money.Zero,
		CesAmt:             money.Zero,
		CesNonAdvlAmt:      money.Zero,
		StateCesRt:         money.Zero,
		StateCesAmt:        money.Zero,
		StateCesNonAdvlAmt: money.Zero,

		OthChrg:    money.Zero,
		TotItemVal: shipping,
	}
}
