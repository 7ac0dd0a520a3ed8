package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/adukale/gst-shopify/internal/config"
	"github.com/adukale/gst-shopify/internal/invoice"
	"github.com/adukale/gst-shopify/internal/model"
	"github.com/adukale/gst-shopify/internal/pipeline"
	"github.com/adukale/gst-shopify/internal/server"
)

var (
	serveAddr   string
	serveDebug  bool
	serveSeller string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve invoice generation over HTTP",
	Long: `Start an HTTP API server.

Endpoints:
  GET  /health
  POST /api/v1/invoices   {"order_name": "#1001"} or {"order_id": "123"}`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug mode and request logging")
	serveCmd.Flags().StringVar(&serveSeller, "seller", config.DefaultSellerPath, "Seller profile JSON file")
}

func runServe(cmd *cobra.Command, args []string) error {
	seller, err := config.LoadSellerProfile(serveSeller)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	builder := invoice.NewBuilder(invoice.WithLogger(log))
	runner := pipeline.NewRunner(client, builder, seller, discardSink{},
		pipeline.WithRunnerLogger(log))

	srv := server.NewServer(&server.Config{
		Address:      serveAddr,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		Debug:        serveDebug,
	}, client, runner, log)

	log.Infow("serving", "addr", serveAddr)
	return srv.Run()
}

// discardSink satisfies the pipeline sink for API use, where documents go
// back to the caller instead of disk.
type discardSink struct{}

func (discardSink) WriteInvoice(*model.InvoiceDocument) error { return nil }
