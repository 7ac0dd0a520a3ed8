package shopify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adukale/gst-shopify/internal/shopify"
)

// fakePages builds a fetcher over fixed pages, recording received cursors.
func fakePages(pages [][]string, cursors *[]string) shopify.PageFetcher[string] {
	return func(_ context.Context, after string) ([]string, shopify.PageInfo, error) {
		*cursors = append(*cursors, after)
		idx := len(*cursors) - 1
		info := shopify.PageInfo{
			HasNextPage: idx < len(pages)-1,
			EndCursor:   "cursor-" + pages[idx][len(pages[idx])-1],
		}
		return pages[idx], info, nil
	}
}

func TestCollectAll(t *testing.T) {
	var cursors []string
	fetch := fakePages([][]string{
		{"a", "b"},
		{"c", "d"},
		{"e"},
	}, &cursors)

	all, err := shopify.CollectAll(context.Background(), fetch, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, all)
	// First call has no cursor, subsequent calls thread the end cursor.
	assert.Equal(t, []string{"", "cursor-b", "cursor-d"}, cursors)
}

func TestCollectAll_SinglePage(t *testing.T) {
	var cursors []string
	fetch := fakePages([][]string{{"only"}}, &cursors)

	all, err := shopify.CollectAll(context.Background(), fetch, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, all)
	assert.Len(t, cursors, 1)
}

func TestForEachPage_CallbackError(t *testing.T) {
	var cursors []string
	fetch := fakePages([][]string{{"a"}, {"b"}, {"c"}}, &cursors)

	wantErr := errors.New("stop")
	calls := 0
	err := shopify.ForEachPage(context.Background(), fetch, 0, func(nodes []string) error {
		calls++
		if calls == 2 {
			return wantErr
		}
		return nil
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 2, calls, "walk aborts on first callback error")
}

func TestForEachPage_FetchError(t *testing.T) {
	wantErr := errors.New("fetch failed")
	fetch := func(_ context.Context, after string) ([]string, shopify.PageInfo, error) {
		return nil, shopify.PageInfo{}, wantErr
	}

	err := shopify.ForEachPage(context.Background(), fetch, 0, func([]string) error {
		t.Fatal("callback must not run on fetch error")
		return nil
	})
	require.ErrorIs(t, err, wantErr)
}

func TestConnectionNodes(t *testing.T) {
	conn := shopify.Connection[int]{
		Edges: []shopify.Edge[int]{{Node: 1}, {Node: 2}},
	}
	assert.Equal(t, []int{1, 2}, conn.Nodes())
	assert.Empty(t, shopify.Connection[int]{}.Nodes())
}
