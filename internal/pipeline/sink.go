package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adukale/gst-shopify/internal/model"
	"github.com/adukale/gst-shopify/internal/render"
)

// Sink receives finished invoice documents.
type Sink interface {
	WriteInvoice(doc *model.InvoiceDocument) error
}

// DirSink writes one indented JSON document per order into a directory,
// optionally with a printable PDF alongside. Monetary values serialize as
// quoted decimal strings.
type DirSink struct {
	Dir       string
	RenderPDF bool
}

// WriteInvoice persists the document, keyed by the order display name.
func (s *DirSink) WriteInvoice(doc *model.InvoiceDocument) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}

	base := "gst_export_invoice_lut_" + sanitizeName(doc.DocDtls.No)

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode invoice %s: %w", doc.DocDtls.No, err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, base+".json"), data, 0o644); err != nil {
		return err
	}

	if s.RenderPDF {
		f, err := os.Create(filepath.Join(s.Dir, base+".pdf"))
		if err != nil {
			return err
		}
		defer f.Close()
		if err := render.WritePDF(doc, f); err != nil {
			return fmt.Errorf("render invoice %s: %w", doc.DocDtls.No, err)
		}
	}
	return nil
}

// sanitizeName strips the characters order display names carry that file
// names cannot ("#1001" → "1001").
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '#', '/', '\\', ':':
			return -1
		}
		return r
	}, name)
}
