package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adukale/gst-shopify/internal/config"
	"github.com/adukale/gst-shopify/internal/shopify"
)

var (
	version = "1.0.0"

	// Global flags
	verbose     bool
	storeDomain string
	accessToken string

	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "gst-shopify",
	Short: "GST compliance tools for Shopify stores",
	Long: `gst-shopify generates GST export e-invoices (LUT scheme) from Shopify
orders and reconciles HSN classification codes across the catalog.

Credentials come from --store/--token or the SHOPIFY_STORE and API_TOKEN
environment variables (a .env file is honored).

Examples:
  # Generate e-invoices for the orders listed in orders.txt
  gst-shopify generate orders.txt --out invoices

  # Bulk-update HSN codes from a SKU mapping
  gst-shopify hsn update hsn-codes.csv

  # Report HSN codes in use
  gst-shopify hsn report --unique unique_hsn_codes.csv

  # Serve the invoice API
  gst-shopify serve --addr :8080`,
	Version: version,
}

func Execute() error {
	defer func() {
		if log != nil {
			_ = log.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&storeDomain, "store", "", "Store domain, e.g. example.myshopify.com (env: SHOPIFY_STORE)")
	rootCmd.PersistentFlags().StringVar(&accessToken, "token", "", "Admin API access token (env: API_TOKEN)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	env := config.CredentialsFromEnv()
	if storeDomain == "" {
		storeDomain = env.StoreDomain
	}
	if accessToken == "" {
		accessToken = env.AccessToken
	}

	logger, err := newLogger(verbose)
	if err != nil {
		panic(err)
	}
	log = logger.Sugar()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

// newClient builds the transport from the resolved credentials.
func newClient() (*shopify.Client, error) {
	creds := config.Credentials{StoreDomain: storeDomain, AccessToken: accessToken}
	if !creds.Valid() {
		return nil, fmt.Errorf("store credentials missing: set --store/--token or SHOPIFY_STORE/API_TOKEN")
	}
	return shopify.NewClient(creds.StoreDomain, creds.AccessToken, shopify.WithLogger(log)), nil
}
