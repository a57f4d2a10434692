// Package parse handles the single-receipt parse command
package parse

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fjacquet/receipt-csv/cmd/common"
	"fjacquet/receipt-csv/cmd/root"
	internalcommon "fjacquet/receipt-csv/internal/common"
	"fjacquet/receipt-csv/internal/container"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/validation"
)

var format string

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one receipt",
	Long: `Parse a Mercadona or Consum receipt and print the resulting invoice.

With -o the product rows are written to a CSV file instead.

Example:
  receipt-csv parse -i ticket.pdf --format json
  receipt-csv parse -i ticket.png -o ticket.csv --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.MustContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c, root.SharedFlags.Input, root.SharedFlags.Output, format, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", validation.FormatText, "Output format: text, json, yaml or csv")
}

// Run parses inputFile and writes the invoice to outputFile as CSV, or to out in format.
// A strict total mismatch still renders the invoice before returning the error.
func Run(ctx context.Context, c *container.Container, inputFile, outputFile, format string, out io.Writer) error {
	if err := validation.IsValidOutputFormat(format, validation.ParseFormats...); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	log := c.GetLogger()
	inv, err := common.ProcessFile(ctx, c.GetExtractor(), c.GetAssembler(), inputFile, log)
	if inv == nil {
		return err
	}

	if outputFile != "" {
		if werr := internalcommon.WriteInvoiceToCSV(inv, outputFile, c.GetConfig().Delimiter(), log); werr != nil {
			return werr
		}
	} else if werr := common.WriteInvoice(out, inv, format, c.GetCSVWriter()); werr != nil {
		return fmt.Errorf("error writing invoice: %w", werr)
	}

	if err != nil {
		return err
	}
	log.Info("Receipt parsed successfully", logging.F(logging.FieldInputFile, inputFile))
	return nil
}
