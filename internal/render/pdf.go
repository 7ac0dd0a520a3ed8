// Package render produces a printable PDF copy of an invoice document.
// The JSON payload stays the document of record; the PDF exists for
// humans and couriers.
package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/adukale/gst-shopify/internal/model"
)

// WritePDF renders a single-page invoice: header, seller and buyer
// blocks, line-item table, totals.
func WritePDF(doc *model.InvoiceDocument, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "TAX INVOICE (EXPORT UNDER LUT)")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice No: %s    Date: %s", doc.DocDtls.No, doc.DocDtls.Dt))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(95, 6, "Seller")
	pdf.Cell(95, 6, "Buyer")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)

	sellerLines := []string{
		doc.SellerDtls.LglNm,
		"GSTIN: " + doc.SellerDtls.Gstin,
		doc.SellerDtls.Addr1,
		fmt.Sprintf("%s - %d", doc.SellerDtls.Loc, doc.SellerDtls.Pin),
	}
	buyerLines := []string{
		doc.BuyerDtls.LglNm,
		doc.BuyerDtls.Addr1,
		doc.BuyerDtls.Addr2,
		doc.BuyerDtls.Loc,
	}
	for i := 0; i < len(sellerLines) || i < len(buyerLines); i++ {
		left, right := "", ""
		if i < len(sellerLines) {
			left = sellerLines[i]
		}
		if i < len(buyerLines) {
			right = buyerLines[i]
		}
		pdf.Cell(95, 5, left)
		pdf.Cell(95, 5, right)
		pdf.Ln(5)
	}
	pdf.Ln(6)

	// Item table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(12, 7, "Sl", "1", 0, "C", true, 0, "")
	pdf.CellFormat(68, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(24, 7, "HSN/SAC", "1", 0, "C", true, 0, "")
	pdf.CellFormat(18, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(28, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 0, "R", true, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	for _, item := range doc.ItemList {
		pdf.CellFormat(12, 6, item.SlNo, "1", 0, "C", false, 0, "")
		pdf.CellFormat(68, 6, item.PrdDesc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(24, 6, item.HsnCd, "1", 0, "C", false, 0, "")
		pdf.CellFormat(18, 6, item.Qty.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, item.TotItemVal.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	pdf.Ln(4)

	totals := []struct {
		label string
		value string
	}{
		{"Assessable Value", doc.ValDtls.AssVal.StringFixed(2)},
		{"Other Charges", doc.ValDtls.OthChrg.StringFixed(2)},
		{"Discount", doc.ValDtls.Discount.StringFixed(2)},
		{"Total Invoice Value", doc.ValDtls.TotInvVal.StringFixed(2)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Arial", "B", 10)
		}
		pdf.CellFormat(150, 6, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, t.value, "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, "Supply meant for export under Letter of Undertaking without payment of integrated tax.")

	return pdf.Output(w)
}
