package shopify_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderIDsFromNames(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		q, _ := req.Variables["query"].(string)
		assert.Contains(t, q, "name:#1001")
		assert.Contains(t, q, " OR ")

		fmt.Fprint(w, `{"data":{"orders":{"edges":[
			{"node":{"id":"gid://shopify/Order/111","name":"#1001"}},
			{"node":{"id":"gid://shopify/Order/222","name":"#1002"}}
		],"pageInfo":{"hasNextPage":false,"endCursor":""}}}}`)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	c := newTestClient(t, srv.URL, rec)

	ids, err := c.OrderIDsFromNames(context.Background(), []string{"#1001", "#1002"}, 250)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"#1001": "111", "#1002": "222"}, ids)
	assert.Equal(t, 1, requests, "one batch covers both names")
}

func TestOrderIDsFromNames_MissingReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"orders":{"edges":[
			{"node":{"id":"gid://shopify/Order/111","name":"#1001"}}
		],"pageInfo":{"hasNextPage":false,"endCursor":""}}}}`)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	c := newTestClient(t, srv.URL, rec)

	_, err := c.OrderIDsFromNames(context.Background(), []string{"#1001", "#1002", "#1003"}, 250)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#1002")
	assert.Contains(t, err.Error(), "#1003")
	assert.NotContains(t, err.Error(), "#1001,")
}

func TestFetchOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		assert.Equal(t, "gid://shopify/Order/123", req.Variables["id"])
		assert.Contains(t, req.Query, "harmonizedSystemCode",
			"the one enriched query must carry the classification association")
		assert.Contains(t, req.Query, "barcode")

		fmt.Fprint(w, `{"data":{"order":{
			"id":"gid://shopify/Order/123","name":"#1001","createdAt":"2026-02-14T10:30:00Z",
			"lineItems":{"edges":[],"pageInfo":{"hasNextPage":false,"endCursor":""}}
		}}}`)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	c := newTestClient(t, srv.URL, rec)

	order, err := c.FetchOrder(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "#1001", order.Name)
}

func TestFetchOrder_PaginatesLineItems(t *testing.T) {
	var extraPages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		if strings.Contains(req.Query, "orderLineItemsPage") {
			extraPages++
			assert.Equal(t, "gid://shopify/Order/123", req.Variables["id"])
			assert.Equal(t, "c1", req.Variables["after"])
			fmt.Fprint(w, `{"data":{"order":{"lineItems":{
				"edges":[{"node":{"title":"Silk Scarf","quantity":1}}],
				"pageInfo":{"hasNextPage":false,"endCursor":""}
			}}}}`)
			return
		}

		fmt.Fprint(w, `{"data":{"order":{
			"id":"gid://shopify/Order/123","name":"#1001","createdAt":"2026-02-14T10:30:00Z",
			"lineItems":{
				"edges":[{"node":{"title":"Cotton Kurta","quantity":3}}],
				"pageInfo":{"hasNextPage":true,"endCursor":"c1"}
			}
		}}}`)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	c := newTestClient(t, srv.URL, rec)

	order, err := c.FetchOrder(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, 1, extraPages)

	require.Len(t, order.LineItems.Edges, 2, "the tail page must not be dropped")
	assert.Equal(t, "Cotton Kurta", order.LineItems.Edges[0].Node.Title)
	assert.Equal(t, "Silk Scarf", order.LineItems.Edges[1].Node.Title)
	assert.False(t, order.LineItems.PageInfo.HasNextPage,
		"connection closes once every page is fetched")
}

func TestFetchOrder_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"order":null}}`)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	c := newTestClient(t, srv.URL, rec)

	_, err := c.FetchOrder(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not found"))
}
