package shopify

import (
	"context"
	"time"
)

// PageInfo is the cursor-pagination footer of a GraphQL connection.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// Edge wraps one connection node.
type Edge[T any] struct {
	Node T `json:"node"`
}

// Connection is the standard edges/pageInfo envelope.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// Nodes unwraps the edge list.
func (c Connection[T]) Nodes() []T {
	nodes := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		nodes = append(nodes, e.Node)
	}
	return nodes
}

// PageFetcher returns one page of nodes starting after the given cursor.
// The page size is owned by the fetcher closure, so callers can run small
// pages for mutation-heavy pipelines and large ones for reads.
type PageFetcher[T any] func(ctx context.Context, after string) ([]T, PageInfo, error)

// CollectAll drives a PageFetcher to exhaustion and returns every node in
// server cursor order. delay is the courtesy pause between pages; zero
// disables it. There is no mid-stream checkpoint: a failure loses the
// pages already fetched.
func CollectAll[T any](ctx context.Context, fetch PageFetcher[T], delay time.Duration) ([]T, error) {
	var all []T
	err := ForEachPage(ctx, fetch, delay, func(nodes []T) error {
		all = append(all, nodes...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// ForEachPage invokes fn once per fetched page, pausing delay between
// pages. The first error from the fetcher or fn aborts the walk.
func ForEachPage[T any](ctx context.Context, fetch PageFetcher[T], delay time.Duration, fn func(nodes []T) error) error {
	var cursor string
	for {
		nodes, page, err := fetch(ctx, cursor)
		if err != nil {
			return err
		}
		if err := fn(nodes); err != nil {
			return err
		}
		if !page.HasNextPage {
			return nil
		}
		cursor = page.EndCursor
		if delay > 0 {
			if err := sleepCtx(ctx, delay); err != nil {
				return err
			}
		}
	}
}
