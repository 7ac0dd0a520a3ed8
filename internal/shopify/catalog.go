package shopify

import (
	"context"
	"encoding/json"
	"fmt"
)

// CatalogVariant is one product variant row of the catalog scan.
type CatalogVariant struct {
	SKU           string               `json:"sku"`
	InventoryItem *RemoteInventoryItem `json:"inventoryItem"`
	Product       *struct {
		Status string `json:"status"`
	} `json:"product"`
}

// HSNCode returns the stored classification code, empty when the variant
// carries none.
func (v CatalogVariant) HSNCode() string {
	if v.InventoryItem == nil {
		return ""
	}
	return v.InventoryItem.HarmonizedSystemCode
}

// Archived reports whether the owning product is archived and should be
// skipped by catalog reports.
func (v CatalogVariant) Archived() bool {
	return v.Product != nil && v.Product.Status == "ARCHIVED"
}

const catalogPageQuery = `
query catalogVariants($first: Int!, $after: String) {
  productVariants(first: $first, after: $after) {
    edges {
      node {
        sku
        inventoryItem { id harmonizedSystemCode }
        product { status }
      }
    }
    pageInfo { hasNextPage endCursor }
  }
}`

// CatalogVariants returns a PageFetcher over the full product catalog with
// the given read page size, for use with CollectAll or ForEachPage.
func (c *Client) CatalogVariants(pageSize int) PageFetcher[CatalogVariant] {
	return func(ctx context.Context, after string) ([]CatalogVariant, PageInfo, error) {
		vars := map[string]any{"first": pageSize}
		if after != "" {
			vars["after"] = after
		}
		resp, err := c.Do(ctx, catalogPageQuery, vars)
		if err != nil {
			return nil, PageInfo{}, err
		}

		var data struct {
			ProductVariants Connection[CatalogVariant] `json:"productVariants"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return nil, PageInfo{}, fmt.Errorf("decode catalog page: %w", err)
		}
		return data.ProductVariants.Nodes(), data.ProductVariants.PageInfo, nil
	}
}
