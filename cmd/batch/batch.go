// Package batch handles batch processing of receipt files
package batch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"fjacquet/receipt-csv/cmd/root"
	"fjacquet/receipt-csv/internal/batch"
	"fjacquet/receipt-csv/internal/container"
	"fjacquet/receipt-csv/internal/fileutils"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/validation"
)

var (
	inputDir  string
	outputDir string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process receipts from a directory",
	Long: `Batch process every PDF and PNG receipt found in an input directory.

Receipts are parsed concurrently. Each parsed receipt gets its own CSV file in the
output directory, and all of them are also consolidated into one file named after
the covered payment dates. A receipt that fails does not stop the others.

Example:
  receipt-csv batch --input-dir receipts/ --output-dir out/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.MustContainer()
		if err != nil {
			return err
		}
		in, out := inputDir, outputDir
		if in == "" {
			in = root.SharedFlags.Input
		}
		if out == "" {
			out = root.SharedFlags.Output
		}
		summary, err := Run(cmd.Context(), c, in, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Processed %d receipts: %d succeeded, %d failed\n",
			summary.Total, summary.Succeeded, summary.Failed)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory containing receipt files")
	Cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory receiving the CSV files")
}

// Run processes every receipt under inputDir and writes CSV files to outputDir.
func Run(ctx context.Context, c *container.Container, inputDir, outputDir string) (batch.Summary, error) {
	logger := c.GetLogger()
	if err := validation.IsValidDirectory(inputDir); err != nil {
		return batch.Summary{}, fmt.Errorf("invalid input directory: %w", err)
	}
	if outputDir == "" {
		return batch.Summary{}, fmt.Errorf("output directory must be specified")
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return batch.Summary{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := fileutils.ListReceiptFiles(inputDir)
	if err != nil {
		return batch.Summary{}, err
	}
	if len(files) == 0 {
		logger.Warn("No supported files found in input directory", logging.F(logging.FieldFile, inputDir))
		return batch.Summary{}, nil
	}

	results := c.GetProcessor().ProcessFiles(ctx, files)
	writer := c.GetCSVWriter()

	for _, r := range results {
		log := logger.WithField(logging.FieldInputFile, r.File)
		if r.Err != nil {
			log.WithError(r.Err).Error("Failed to process receipt")
		}
		if r.Invoice == nil {
			continue
		}
		outPath := fileutils.OutputPath(outputDir, r.File, "csv")
		if err := writer.WriteFile(outPath, r.Invoice); err != nil {
			log.WithError(err).Error("Failed to write receipt CSV")
		}
	}

	summary := batch.Summarize(results)
	if len(summary.Invoices) > 0 {
		consolidated := filepath.Join(outputDir, batch.OutputFilename("receipts", summary.Period))
		if err := writer.WriteFile(consolidated, summary.Invoices...); err != nil {
			return summary, fmt.Errorf("failed to write consolidated CSV: %w", err)
		}
	}

	logger.Info("Batch processing completed",
		logging.F(logging.FieldCount, summary.Total),
		logging.F("succeeded", summary.Succeeded),
		logging.F("failed", summary.Failed))
	return summary, nil
}
