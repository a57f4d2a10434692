// Package ledger handles the ledger transaction command
package ledger

import (
	"bytes"
	"context"
	"io"

	"github.com/spf13/cobra"

	"fjacquet/receipt-csv/cmd/common"
	"fjacquet/receipt-csv/cmd/root"
	"fjacquet/receipt-csv/internal/container"
	"fjacquet/receipt-csv/internal/fileutils"
	"fjacquet/receipt-csv/internal/ledger"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/validation"
)

var (
	format     string
	accountID  string
	categoryID string
)

// Cmd represents the ledger command
var Cmd = &cobra.Command{
	Use:   "ledger",
	Short: "Print the ledger transaction for a receipt",
	Long: `Parse a receipt and map it to a split ledger transaction, one split per product.

Amounts are outflows in milliunits. A split absorbs any difference between the
printed total and the sum of items.

Example:
  receipt-csv ledger -i ticket.pdf --account-id checking --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.MustContainer()
		if err != nil {
			return err
		}
		opts := c.LedgerOptions()
		if accountID != "" {
			opts.AccountID = accountID
		}
		if categoryID != "" {
			opts.CategoryID = categoryID
		}
		return Run(cmd.Context(), c, root.SharedFlags.Input, root.SharedFlags.Output, format, opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", validation.FormatJSON, "Output format: json or yaml")
	Cmd.Flags().StringVar(&accountID, "account-id", "", "Ledger account identifier (overrides ledger.account_id)")
	Cmd.Flags().StringVar(&categoryID, "category-id", "", "Ledger category identifier (overrides ledger.category_id)")
}

// Run parses inputFile and writes its ledger transaction to outputFile, or to out.
func Run(ctx context.Context, c *container.Container, inputFile, outputFile, format string, opts ledger.Options, out io.Writer) error {
	if err := validation.IsValidOutputFormat(format, validation.LedgerFormats...); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	inv, err := common.ProcessFile(ctx, c.GetExtractor(), c.GetAssembler(), inputFile, c.GetLogger())
	if err != nil {
		return err
	}

	tx, err := ledger.FromInvoice(inv, opts)
	if err != nil {
		return err
	}

	if outputFile == "" {
		return ledger.Encode(out, tx, format)
	}

	var buf bytes.Buffer
	if err := ledger.Encode(&buf, tx, format); err != nil {
		return err
	}
	if err := fileutils.WriteFile(outputFile, buf.Bytes()); err != nil {
		return err
	}
	c.GetLogger().Info("Wrote ledger transaction", logging.F(logging.FieldOutputFile, outputFile))
	return nil
}
