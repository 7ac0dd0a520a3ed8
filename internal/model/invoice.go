package model

import (
	"github.com/shopspring/decimal"
)

// Schema constants of the GST e-invoice (INV-01) payload for zero-rated
// exports under a Letter of Undertaking.
const (
	SchemaVersion = "1.1"
	TaxScheme     = "GST"
	// SupplyTypeExportLUT is "export without payment of tax".
	SupplyTypeExportLUT = "EXPWOP"
	DocumentTypeInvoice = "INV"

	// PlaceOfSupplyExport is the state code reserved for out-of-country
	// supply, used for both Pos and the buyer state code.
	PlaceOfSupplyExport = "96"
	// BuyerGSTINUnregistered marks an unregistered recipient.
	BuyerGSTINUnregistered = "URP"
	// ExportPincode is the fixed pincode for foreign addresses.
	ExportPincode = "999999"

	// FallbackHSNCode substitutes a missing classification code. Same
	// digit length as the scheme default, never empty.
	FallbackHSNCode = "00000000"
	// FreightSACCode classifies the synthesized shipping service line.
	FreightSACCode = "996812"
)

// TranDtls is the transaction-details block, fixed for this scheme.
type TranDtls struct {
	TaxSch      string  `json:"TaxSch"`
	SupTyp      string  `json:"SupTyp"`
	IgstOnIntra string  `json:"IgstOnIntra"`
	RegRev      string  `json:"RegRev"`
	EcmGstin    *string `json:"EcmGstin"`
}

// DocDtls is the document header.
type DocDtls struct {
	Typ string `json:"Typ"`
	No  string `json:"No"`
	Dt  string `json:"Dt"` // DD/MM/YYYY
}

// SellerProfile is the registered-seller block. It matches the SellerDtls
// schema of the payload exactly and passes through untransformed from the
// seller configuration file.
type SellerProfile struct {
	Gstin string  `json:"Gstin"`
	LglNm string  `json:"LglNm"`
	TrdNm string  `json:"TrdNm,omitempty"`
	Addr1 string  `json:"Addr1"`
	Addr2 string  `json:"Addr2,omitempty"`
	Loc   string  `json:"Loc"`
	Pin   int     `json:"Pin"`
	Stcd  string  `json:"Stcd"`
	Ph    *string `json:"Ph"`
	Em    *string `json:"Em"`
}

// BuyerDtls is the recipient block. Export invoices carry the URP GSTIN
// and the 96 place-of-supply code.
type BuyerDtls struct {
	Gstin string  `json:"Gstin"`
	LglNm string  `json:"LglNm"`
	Pos   string  `json:"Pos"`
	Addr1 string  `json:"Addr1"`
	Addr2 string  `json:"Addr2"`
	Loc   string  `json:"Loc"`
	Pin   string  `json:"Pin"`
	Stcd  string  `json:"Stcd"`
	Ph    *string `json:"Ph"`
	Em    *string `json:"Em"`
}

// InvoiceLineItem is one ItemList entry. All tax rates and amounts are
// populated zero: the LUT export scheme is zero-rated, the fields exist to
// satisfy the schema, never to be computed.
type InvoiceLineItem struct {
	SlNo      string          `json:"SlNo"`
	PrdDesc   string          `json:"PrdDesc"`
	IsServc   string          `json:"IsServc"`
	HsnCd     string          `json:"HsnCd"`
	Barcde    string          `json:"Barcde"`
	Qty       decimal.Decimal `json:"Qty"`
	FreeQty   decimal.Decimal `json:"FreeQty"`
	Unit      string          `json:"Unit"`
	UnitPrice decimal.Decimal `json:"UnitPrice"`
	TotAmt    decimal.Decimal `json:"TotAmt"`    // before discount
	Discount  decimal.Decimal `json:"Discount"`  // item-level discount
	PreTaxVal decimal.Decimal `json:"PreTaxVal"` // after discount
	AssAmt    decimal.Decimal `json:"AssAmt"`

	GstRt              decimal.Decimal `json:"GstRt"`
	IgstAmt            decimal.Decimal `json:"IgstAmt"`
	CgstAmt            decimal.Decimal `json:"CgstAmt"`
	SgstAmt            decimal.Decimal `json:"SgstAmt"`
	CesRt              decimal.Decimal `json:"CesRt"`
	CesAmt             decimal.Decimal `json:"CesAmt"`
	CesNonAdvlAmt      decimal.Decimal `json:"CesNonAdvlAmt"`
	StateCesRt         decimal.Decimal `json:"StateCesRt"`
	StateCesAmt        decimal.Decimal `json:"StateCesAmt"`
	StateCesNonAdvlAmt decimal.Decimal `json:"StateCesNonAdvlAmt"`

	OthChrg    decimal.Decimal `json:"OthChrg"`
	TotItemVal decimal.Decimal `json:"TotItemVal"`
}

// ValueTotals is the ValDtls aggregate block. AssVal covers product lines
// only; shipping rides in OthChrg; Discount is the order-level residual.
type ValueTotals struct {
	AssVal    decimal.Decimal `json:"AssVal"`
	CgstVal   decimal.Decimal `json:"CgstVal"`
	SgstVal   decimal.Decimal `json:"SgstVal"`
	IgstVal   decimal.Decimal `json:"IgstVal"`
	CesVal    decimal.Decimal `json:"CesVal"`
	StCesVal  decimal.Decimal `json:"StCesVal"`
	Discount  decimal.Decimal `json:"Discount"`
	OthChrg   decimal.Decimal `json:"OthChrg"`
	RndOffAmt decimal.Decimal `json:"RndOffAmt"`
	TotInvVal decimal.Decimal `json:"TotInvVal"`
}

// InvoiceDocument is one complete e-invoice payload. Monetary fields are
// decimals and serialize as quoted decimal strings, never binary floats.
type InvoiceDocument struct {
	Version    string            `json:"Version"`
	TranDtls   TranDtls          `json:"TranDtls"`
	DocDtls    DocDtls           `json:"DocDtls"`
	SellerDtls SellerProfile     `json:"SellerDtls"`
	BuyerDtls  BuyerDtls         `json:"BuyerDtls"`
	ItemList   []InvoiceLineItem `json:"ItemList"`
	ValDtls    ValueTotals       `json:"ValDtls"`
}
