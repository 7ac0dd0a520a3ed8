// Package hsn reconciles product tax-classification (HSN) codes across
// the storefront catalog: it scans every product variant, diffs the
// stored code against a supplied SKU mapping, and pushes bounded batches
// of update mutations for the records that drifted.
package hsn

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Mapping is the desired state, keyed by product SKU. Codes are opaque
// strings so leading zeros survive.
type Mapping map[string]string

// LoadMapping reads a two-column CSV (sku, hsncode) with a header row.
func LoadMapping(path string) (Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMapping(f)
}

// ReadMapping parses the mapping CSV from a reader.
func ReadMapping(r io.Reader) (Mapping, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read mapping header: %w", err)
	}
	if !strings.EqualFold(strings.TrimSpace(header[0]), "sku") {
		return nil, fmt.Errorf("unexpected mapping header %q, want sku,hsncode", strings.Join(header, ","))
	}

	m := make(Mapping)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read mapping row: %w", err)
		}
		sku := strings.TrimSpace(rec[0])
		code := strings.TrimSpace(rec[1])
		if sku == "" {
			continue
		}
		m[sku] = code
	}
	return m, nil
}
