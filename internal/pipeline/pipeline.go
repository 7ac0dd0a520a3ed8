// Package pipeline drives batch invoice generation: resolve order names,
// fetch, normalize, build, cross-check, emit. One bad order never aborts
// the run; every item is attempted and the final report is complete.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/adukale/gst-shopify/internal/invoice"
	"github.com/adukale/gst-shopify/internal/model"
	"github.com/adukale/gst-shopify/internal/normalize"
	"github.com/adukale/gst-shopify/internal/shopify"
)

// OrderResult records the outcome for one order in a batch run.
type OrderResult struct {
	Name     string
	OrderID  string
	Err      error
	Mismatch string // advisory reconciliation diagnostic, empty when clean
}

// Report is the batch summary: every requested order appears exactly once
// under Succeeded or Failed.
type Report struct {
	Succeeded []OrderResult
	Failed    []OrderResult
}

// Runner wires the remote client, builder, seller profile and output
// sink into one sequential batch pipeline.
type Runner struct {
	client  *shopify.Client
	builder *invoice.Builder
	seller  model.SellerProfile
	sink    Sink
	log     *zap.SugaredLogger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRunnerLogger attaches a logger.
func WithRunnerLogger(log *zap.SugaredLogger) RunnerOption {
	return func(r *Runner) { r.log = log }
}

// NewRunner creates a batch runner.
func NewRunner(client *shopify.Client, builder *invoice.Builder, seller model.SellerProfile, sink Sink, opts ...RunnerOption) *Runner {
	r := &Runner{
		client:  client,
		builder: builder,
		seller:  seller,
		sink:    sink,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GenerateAll resolves the given order display names and generates one
// invoice document per order. Name resolution failure is the only abort
// path; after that, per-order failures are collected and the run
// continues.
func (r *Runner) GenerateAll(ctx context.Context, orderNames []string) (*Report, error) {
	nameToID, err := r.client.OrderIDsFromNames(ctx, orderNames, shopify.DefaultQueryBatchSize)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	// Iterate in request order so the report reads like the input file.
	for _, name := range orderNames {
		id := nameToID[name]
		res := r.generateOne(ctx, name, id)
		if res.Err != nil {
			r.log.Warnw("invoice generation failed", "order", name, "error", res.Err)
			report.Failed = append(report.Failed, res)
			continue
		}
		report.Succeeded = append(report.Succeeded, res)
	}
	return report, nil
}

// GenerateOne produces a single invoice document without emitting it,
// for callers (like the API server) that own the output.
func (r *Runner) GenerateOne(ctx context.Context, orderID string) (*model.InvoiceDocument, string, error) {
	raw, err := r.client.FetchOrder(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	order, err := normalize.Normalize(raw)
	if err != nil {
		return nil, "", err
	}
	doc, err := r.builder.Build(order, r.seller)
	if err != nil {
		return nil, "", err
	}

	check := invoice.ValidateTotal(doc.ValDtls.AssVal, order.Subtotal, order.TotalDiscounts, invoice.DefaultTolerance)
	mismatch := ""
	if !check.OK {
		mismatch = check.Diagnostic
		r.log.Warnw("reconciliation mismatch", "order", order.Name, "diagnostic", check.Diagnostic)
	}
	return doc, mismatch, nil
}

func (r *Runner) generateOne(ctx context.Context, name, id string) OrderResult {
	res := OrderResult{Name: name, OrderID: id}

	doc, mismatch, err := r.GenerateOne(ctx, id)
	if err != nil {
		res.Err = err
		return res
	}
	res.Mismatch = mismatch

	if err := r.sink.WriteInvoice(doc); err != nil {
		res.Err = err
		return res
	}
	r.log.Infow("invoice generated", "order", name)
	return res
}
