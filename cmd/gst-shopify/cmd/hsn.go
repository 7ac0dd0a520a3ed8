package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adukale/gst-shopify/internal/hsn"
)

var (
	qryBatchSize    int
	updateBatchSize int
	pageDelay       time.Duration

	uniqueOut  string
	invalidOut string
)

var hsnCmd = &cobra.Command{
	Use:   "hsn",
	Short: "HSN classification-code tools",
}

var hsnUpdateCmd = &cobra.Command{
	Use:   "update <mapping.csv>",
	Short: "Bulk-update catalog HSN codes from a SKU mapping",
	Long: `Scan the full product catalog and update every variant whose stored
HSN code differs from the mapping (blank codes included). The mapping is
a two-column CSV: sku,hsncode.

Mutations run in small batches; per-record rejections are reported at the
end and are not retried within the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runHSNUpdate,
}

var hsnReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report HSN codes in use and variants with invalid codes",
	RunE:  runHSNReport,
}

func init() {
	rootCmd.AddCommand(hsnCmd)
	hsnCmd.AddCommand(hsnUpdateCmd)
	hsnCmd.AddCommand(hsnReportCmd)

	hsnCmd.PersistentFlags().IntVar(&qryBatchSize, "qry-batch-size", hsn.DefaultQueryBatchSize, "Catalog read page size")
	hsnCmd.PersistentFlags().DurationVar(&pageDelay, "page-delay", hsn.DefaultPageDelay, "Courtesy delay between catalog pages")
	hsnUpdateCmd.Flags().IntVar(&updateBatchSize, "update-batch-size", hsn.DefaultUpdateBatchSize, "Mutations per update request")

	hsnReportCmd.Flags().StringVar(&uniqueOut, "unique", "", "Write unique codes CSV to this path")
	hsnReportCmd.Flags().StringVar(&invalidOut, "invalid", "", "Write invalid variants CSV to this path")
}

func runHSNUpdate(cmd *cobra.Command, args []string) error {
	mapping, err := hsn.LoadMapping(args[0])
	if err != nil {
		return err
	}
	log.Infow("mapping loaded", "skus", len(mapping))

	client, err := newClient()
	if err != nil {
		return err
	}

	rec := hsn.NewReconciler(client, mapping,
		hsn.WithQueryBatchSize(qryBatchSize),
		hsn.WithUpdateBatchSize(updateBatchSize),
		hsn.WithPageDelay(pageDelay),
		hsn.WithLogger(log),
	)

	summary, err := rec.Run(cmd.Context())
	if err != nil {
		return err
	}

	for _, me := range summary.Errors {
		log.Warnw("record rejected", "sku", me.SKU, "messages", me.Messages)
	}
	log.Infow("update complete",
		"pages", summary.PagesScanned,
		"candidates", summary.Candidates,
		"updated", summary.Updated,
		"rejected", len(summary.Errors))

	if len(summary.Errors) > 0 {
		return fmt.Errorf("%d records rejected", len(summary.Errors))
	}
	return nil
}

func runHSNReport(cmd *cobra.Command, args []string) error {
	if uniqueOut == "" && invalidOut == "" {
		return fmt.Errorf("nothing to do: set --unique and/or --invalid")
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if uniqueOut != "" {
		codes, err := hsn.UniqueCodes(ctx, client, qryBatchSize, pageDelay)
		if err != nil {
			return err
		}
		if err := writeCSVFile(uniqueOut, func(f *os.File) error {
			return hsn.WriteCodesCSV(f, codes)
		}); err != nil {
			return err
		}
		log.Infow("unique codes written", "path", uniqueOut, "count", len(codes))
	}

	if invalidOut != "" {
		issues, err := hsn.InvalidVariants(ctx, client, qryBatchSize, pageDelay)
		if err != nil {
			return err
		}
		if err := writeCSVFile(invalidOut, func(f *os.File) error {
			return hsn.WriteIssuesCSV(f, issues)
		}); err != nil {
			return err
		}
		log.Infow("invalid variants written", "path", invalidOut, "count", len(issues))
	}
	return nil
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
