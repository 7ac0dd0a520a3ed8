package hsn

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"time"

	"github.com/adukale/gst-shopify/internal/shopify"
)

// VariantIssue flags a non-archived variant whose classification code is
// blank or structurally invalid (not 6 or 8 digits).
type VariantIssue struct {
	SKU  string
	Code string
}

// validCodeLen reports whether the code has a scheme-valid digit length.
func validCodeLen(code string) bool {
	return len(code) == 6 || len(code) == 8
}

// UniqueCodes scans the catalog and returns the sorted distinct
// classification codes in use.
func UniqueCodes(ctx context.Context, client *shopify.Client, pageSize int, pageDelay time.Duration) ([]string, error) {
	seen := map[string]struct{}{}
	err := shopify.ForEachPage(ctx, client.CatalogVariants(pageSize), pageDelay,
		func(variants []shopify.CatalogVariant) error {
			for _, v := range variants {
				if code := v.HSNCode(); code != "" {
					seen[code] = struct{}{}
				}
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes, nil
}

// InvalidVariants scans the catalog and returns every live variant whose
// code is blank or of invalid length. Archived products are skipped.
func InvalidVariants(ctx context.Context, client *shopify.Client, pageSize int, pageDelay time.Duration) ([]VariantIssue, error) {
	var issues []VariantIssue
	err := shopify.ForEachPage(ctx, client.CatalogVariants(pageSize), pageDelay,
		func(variants []shopify.CatalogVariant) error {
			for _, v := range variants {
				if v.Archived() {
					continue
				}
				code := v.HSNCode()
				if code == "" || !validCodeLen(code) {
					issues = append(issues, VariantIssue{SKU: v.SKU, Code: code})
				}
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// WriteCodesCSV writes the unique-code report.
func WriteCodesCSV(w io.Writer, codes []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"hsn_code"}); err != nil {
		return err
	}
	for _, c := range codes {
		if err := cw.Write([]string{c}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteIssuesCSV writes the invalid-variant report.
func WriteIssuesCSV(w io.Writer, issues []VariantIssue) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sku", "hsn_code"}); err != nil {
		return err
	}
	for _, is := range issues {
		code := is.Code
		if code == "" {
			code = "Blank"
		}
		if err := cw.Write([]string{is.SKU, code}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
