package hsn

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/adukale/gst-shopify/internal/model"
	"github.com/adukale/gst-shopify/internal/shopify"
)

const (
	// DefaultQueryBatchSize is the catalog read page size.
	DefaultQueryBatchSize = 250
	// DefaultUpdateBatchSize bounds one multi-mutation request. Mutations
	// are far heavier than reads, so this sits well below the read size.
	DefaultUpdateBatchSize = 3
	// DefaultPageDelay is the courtesy pause between catalog pages.
	DefaultPageDelay = 2 * time.Second
)

// candidate is one out-of-sync record selected during diffing.
type candidate struct {
	SKU             string
	InventoryItemID string
	Code            string
}

// Summary is the end-of-run report. Counts are best effort, not
// exactly-once: partially failed batches are reported and skipped, never
// retried within the run.
type Summary struct {
	PagesScanned int
	Candidates   int
	Updated      int
	Errors       []*model.MutationError
}

// Reconciler drives the scan/diff/mutate loop over the catalog.
type Reconciler struct {
	client          *shopify.Client
	mapping         Mapping
	queryBatchSize  int
	updateBatchSize int
	pageDelay       time.Duration
	log             *zap.SugaredLogger
}

// ReconcilerOption configures the reconciler.
type ReconcilerOption func(*Reconciler)

// WithQueryBatchSize sets the catalog read page size.
func WithQueryBatchSize(n int) ReconcilerOption {
	return func(r *Reconciler) { r.queryBatchSize = n }
}

// WithUpdateBatchSize bounds the mutations per request.
func WithUpdateBatchSize(n int) ReconcilerOption {
	return func(r *Reconciler) { r.updateBatchSize = n }
}

// WithPageDelay sets the inter-page courtesy delay.
func WithPageDelay(d time.Duration) ReconcilerOption {
	return func(r *Reconciler) { r.pageDelay = d }
}

// WithLogger attaches a logger.
func WithLogger(log *zap.SugaredLogger) ReconcilerOption {
	return func(r *Reconciler) { r.log = log }
}

// NewReconciler creates a reconciler for the given client and desired
// mapping.
func NewReconciler(client *shopify.Client, mapping Mapping, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		client:          client,
		mapping:         mapping,
		queryBatchSize:  DefaultQueryBatchSize,
		updateBatchSize: DefaultUpdateBatchSize,
		pageDelay:       DefaultPageDelay,
		log:             zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run walks the whole catalog page by page, updating only the records
// whose stored code differs from the mapping (a blank stored code with a
// mapping entry always counts as drift). A page whose mutation batch
// reports per-item errors is not retried; the run advances and the
// failures land in the summary.
func (r *Reconciler) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	err := shopify.ForEachPage(ctx, r.client.CatalogVariants(r.queryBatchSize), r.pageDelay,
		func(variants []shopify.CatalogVariant) error {
			summary.PagesScanned++

			selected := r.diff(variants)
			summary.Candidates += len(selected)
			if len(selected) == 0 {
				r.log.Debugw("page in sync", "page", summary.PagesScanned)
				return nil
			}

			updated, errs := r.mutate(ctx, selected)
			summary.Updated += updated
			summary.Errors = append(summary.Errors, errs...)

			r.log.Infow("page reconciled",
				"page", summary.PagesScanned,
				"candidates", len(selected),
				"updated", summary.Updated)
			return nil
		})
	if err != nil {
		return summary, err
	}
	return summary, nil
}

// diff selects the variants whose stored code is out of sync with the
// mapping. Records already matching are never selected.
func (r *Reconciler) diff(variants []shopify.CatalogVariant) []candidate {
	var selected []candidate
	for _, v := range variants {
		want, ok := r.mapping[v.SKU]
		if !ok || v.InventoryItem == nil {
			continue
		}
		current := v.HSNCode()
		if current == want {
			continue
		}
		selected = append(selected, candidate{
			SKU:             v.SKU,
			InventoryItemID: v.InventoryItem.ID,
			Code:            want,
		})
	}
	return selected
}

// mutate pushes the selected records in bounded batches, one combined
// multi-mutation request per batch.
func (r *Reconciler) mutate(ctx context.Context, selected []candidate) (int, []*model.MutationError) {
	var (
		updated int
		errs    []*model.MutationError
	)
	for i := 0; i < len(selected); i += r.updateBatchSize {
		end := i + r.updateBatchSize
		if end > len(selected) {
			end = len(selected)
		}
		batch := selected[i:end]

		resp, err := r.client.Do(ctx, buildUpdateMutation(batch), nil)
		if err != nil {
			// Whole batch lost; report per record and move on.
			for _, c := range batch {
				errs = append(errs, &model.MutationError{SKU: c.SKU, Messages: []string{err.Error()}})
			}
			continue
		}

		batchUpdated, batchErrs := parseMutationResult(resp.Data, batch)
		updated += batchUpdated
		errs = append(errs, batchErrs...)
	}
	return updated, errs
}

// buildUpdateMutation combines one aliased inventoryItemUpdate per record
// into a single mutation document.
func buildUpdateMutation(batch []candidate) string {
	var sb strings.Builder
	sb.WriteString("mutation {\n")
	for idx, c := range batch {
		fmt.Fprintf(&sb, `updateInventoryItem_%d: inventoryItemUpdate(
    id: %q,
    input: { harmonizedSystemCode: %q }
  ) {
    inventoryItem { id harmonizedSystemCode }
    userErrors { message }
  }
`, idx, c.InventoryItemID, c.Code)
	}
	sb.WriteString("}")
	return sb.String()
}

type mutationResult struct {
	InventoryItem *struct {
		ID string `json:"id"`
	} `json:"inventoryItem"`
	UserErrors []struct {
		Message string `json:"message"`
	} `json:"userErrors"`
}

func parseMutationResult(data json.RawMessage, batch []candidate) (int, []*model.MutationError) {
	results := map[string]mutationResult{}
	if err := json.Unmarshal(data, &results); err != nil {
		errs := make([]*model.MutationError, 0, len(batch))
		for _, c := range batch {
			errs = append(errs, &model.MutationError{SKU: c.SKU, Messages: []string{"undecodable mutation response"}})
		}
		return 0, errs
	}

	var (
		updated int
		errs    []*model.MutationError
	)
	for idx, c := range batch {
		res, ok := results[fmt.Sprintf("updateInventoryItem_%d", idx)]
		if !ok {
			errs = append(errs, &model.MutationError{SKU: c.SKU, Messages: []string{"no result for mutation"}})
			continue
		}
		if len(res.UserErrors) > 0 {
			msgs := make([]string, 0, len(res.UserErrors))
			for _, ue := range res.UserErrors {
				msgs = append(msgs, ue.Message)
			}
			errs = append(errs, &model.MutationError{SKU: c.SKU, Messages: msgs})
			continue
		}
		updated++
	}
	return updated, errs
}
