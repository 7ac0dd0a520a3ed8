package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// DefaultQueryBatchSize is the read page size used for order lookups.
const DefaultQueryBatchSize = 250

// Money is a platform money value. Amount stays a decimal string until
// the normalizer parses it.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

// MoneySet nests the shop-currency amount.
type MoneySet struct {
	ShopMoney Money `json:"shopMoney"`
}

// RemoteAddress is the raw shipping address object.
type RemoteAddress struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
}

// RemoteCustomer is the raw customer object.
type RemoteCustomer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RemoteInventoryItem carries the tax-classification association.
type RemoteInventoryItem struct {
	ID                   string `json:"id"`
	HarmonizedSystemCode string `json:"harmonizedSystemCode"`
}

// RemoteVariant is the raw product variant on a line item.
type RemoteVariant struct {
	SKU           string               `json:"sku"`
	Barcode       string               `json:"barcode"`
	InventoryItem *RemoteInventoryItem `json:"inventoryItem"`
}

// RemoteLineItem is the raw order line. Every nested object is optional;
// upstream data is adversarial by default.
type RemoteLineItem struct {
	Title                string         `json:"title"`
	SKU                  string         `json:"sku"`
	Quantity             int            `json:"quantity"`
	FulfillmentStatus    string         `json:"fulfillmentStatus"`
	OriginalUnitPriceSet *MoneySet      `json:"originalUnitPriceSet"`
	TotalDiscountSet     *MoneySet      `json:"totalDiscountSet"`
	Variant              *RemoteVariant `json:"variant"`
}

// RemoteOrder is the raw order representation, schema owned by the
// platform. It is only ever read, never mutated.
type RemoteOrder struct {
	ID                    string                     `json:"id"`
	Name                  string                     `json:"name"`
	CreatedAt             string                     `json:"createdAt"`
	SubtotalPriceSet      *MoneySet                  `json:"subtotalPriceSet"`
	TotalShippingPriceSet *MoneySet                  `json:"totalShippingPriceSet"`
	TotalDiscountsSet     *MoneySet                  `json:"totalDiscountsSet"`
	Customer              *RemoteCustomer            `json:"customer"`
	ShippingAddress       *RemoteAddress             `json:"shippingAddress"`
	LineItems             Connection[RemoteLineItem] `json:"lineItems"`
}

const orderQuery = `
query orderForInvoice($id: ID!) {
  order(id: $id) {
    id
    name
    createdAt
    subtotalPriceSet { shopMoney { amount currencyCode } }
    totalShippingPriceSet { shopMoney { amount currencyCode } }
    totalDiscountsSet { shopMoney { amount currencyCode } }
    customer { firstName lastName }
    shippingAddress { address1 address2 city zip }
    lineItems(first: 250) {
      edges {
        node {
          title
          sku
          quantity
          fulfillmentStatus
          originalUnitPriceSet { shopMoney { amount } }
          totalDiscountSet { shopMoney { amount } }
          variant {
            sku
            barcode
            inventoryItem { id harmonizedSystemCode }
          }
        }
      }
      pageInfo { hasNextPage endCursor }
    }
  }
}`

const lineItemsPageQuery = `
query orderLineItemsPage($id: ID!, $after: String!) {
  order(id: $id) {
    lineItems(first: 250, after: $after) {
      edges {
        node {
          title
          sku
          quantity
          fulfillmentStatus
          originalUnitPriceSet { shopMoney { amount } }
          totalDiscountSet { shopMoney { amount } }
          variant {
            sku
            barcode
            inventoryItem { id harmonizedSystemCode }
          }
        }
      }
      pageInfo { hasNextPage endCursor }
    }
  }
}`

// FetchOrder retrieves one order with everything the invoice needs in a
// single enriched query, including the inventory classification per line.
// Orders beyond 250 line items cost one extra call per further page; the
// returned connection is always complete.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*RemoteOrder, error) {
	resp, err := c.Do(ctx, orderQuery, map[string]any{
		"id": fmt.Sprintf("gid://shopify/Order/%s", orderID),
	})
	if err != nil {
		return nil, err
	}

	var data struct {
		Order *RemoteOrder `json:"order"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	if data.Order == nil {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	if err := c.fetchRemainingLineItems(ctx, data.Order); err != nil {
		return nil, err
	}
	return data.Order, nil
}

// fetchRemainingLineItems drains the line-item connection of orders whose
// first page was not the whole story.
func (c *Client) fetchRemainingLineItems(ctx context.Context, order *RemoteOrder) error {
	for order.LineItems.PageInfo.HasNextPage {
		resp, err := c.Do(ctx, lineItemsPageQuery, map[string]any{
			"id":    order.ID,
			"after": order.LineItems.PageInfo.EndCursor,
		})
		if err != nil {
			return err
		}

		var data struct {
			Order *struct {
				LineItems Connection[RemoteLineItem] `json:"lineItems"`
			} `json:"order"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return fmt.Errorf("decode line items page for order %s: %w", order.ID, err)
		}
		if data.Order == nil {
			return fmt.Errorf("order %s disappeared while paging line items", order.ID)
		}
		order.LineItems.Edges = append(order.LineItems.Edges, data.Order.LineItems.Edges...)
		order.LineItems.PageInfo = data.Order.LineItems.PageInfo
	}
	return nil
}

const orderLookupQuery = `
query orderIDs($first: Int!, $query: String!) {
  orders(first: $first, query: $query) {
    edges {
      node { id name }
    }
    pageInfo { hasNextPage endCursor }
  }
}`

// OrderIDsFromNames resolves display names ("#1001") to numeric order IDs
// in batches. Names the platform does not know are reported together in
// one error after all batches ran.
func (c *Client) OrderIDsFromNames(ctx context.Context, names []string, batchSize int) (map[string]string, error) {
	if batchSize <= 0 {
		batchSize = DefaultQueryBatchSize
	}

	nameToID := make(map[string]string, len(names))
	notFound := make(map[string]struct{}, len(names))
	for _, n := range names {
		notFound[n] = struct{}{}
	}

	for i := 0; i < len(names); i += batchSize {
		end := i + batchSize
		if end > len(names) {
			end = len(names)
		}
		batch := names[i:end]

		terms := make([]string, len(batch))
		for j, n := range batch {
			terms[j] = "name:" + n
		}

		resp, err := c.Do(ctx, orderLookupQuery, map[string]any{
			"first": batchSize,
			"query": strings.Join(terms, " OR "),
		})
		if err != nil {
			return nil, err
		}

		var data struct {
			Orders Connection[struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			}] `json:"orders"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return nil, fmt.Errorf("decode order lookup: %w", err)
		}
		for _, node := range data.Orders.Nodes() {
			id := node.ID
			if idx := strings.LastIndex(id, "/"); idx != -1 {
				id = id[idx+1:]
			}
			nameToID[node.Name] = id
			delete(notFound, node.Name)
		}
	}

	if len(notFound) > 0 {
		missing := make([]string, 0, len(notFound))
		for n := range notFound {
			missing = append(missing, n)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("orders not found: %s", strings.Join(missing, ", "))
	}
	return nameToID, nil
}
