// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/receipt-csv/internal/assembler"
	"fjacquet/receipt-csv/internal/common"
	"fjacquet/receipt-csv/internal/currencyutils"
	"fjacquet/receipt-csv/internal/dateutils"
	"fjacquet/receipt-csv/internal/extractor"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/validation"
)

// ProcessFile extracts the text of inputFile and assembles it into an invoice.
// Like Assembler.Parse, it may return an invoice together with a total mismatch error.
func ProcessFile(ctx context.Context, ext extractor.TextExtractor, asm *assembler.Assembler, inputFile string, log logging.Logger) (*models.Invoice, error) {
	if err := validation.IsValidInputFile(inputFile); err != nil {
		return nil, err
	}

	log = log.WithField(logging.FieldInputFile, inputFile)
	text, err := ext.ExtractText(ctx, inputFile)
	if err != nil {
		return nil, fmt.Errorf("error extracting text: %w", err)
	}
	log.Debug("Extracted receipt text", logging.F(logging.FieldCount, len(text)))

	return asm.Parse(text)
}

// WriteInvoice renders inv to out in the given format (text, json, yaml or csv).
func WriteInvoice(out io.Writer, inv *models.Invoice, format string, csvWriter *common.CSVWriter) error {
	switch strings.ToLower(format) {
	case validation.FormatText, "":
		_, err := io.WriteString(out, FormatSummary(inv))
		return err
	case validation.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(inv)
	case validation.FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(inv); err != nil {
			return err
		}
		return enc.Close()
	case validation.FormatCSV:
		return csvWriter.Marshal(out, inv)
	default:
		return validation.IsValidOutputFormat(format, validation.ParseFormats...)
	}
}

// FormatSummary returns a human readable rendering of inv.
func FormatSummary(inv *models.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vendor:   %s\n", inv.Vendor)
	order, number := inv.Identifiers()
	if order != "" {
		fmt.Fprintf(&b, "Order:    %s\n", order)
	}
	fmt.Fprintf(&b, "Invoice:  %s\n", number)
	fmt.Fprintf(&b, "Date:     %s\n", dateutils.FormatDate(inv.PaymentDate, dateutils.DateLayoutDateTime))
	b.WriteString("\n")
	for _, p := range inv.Products {
		name := p.Name
		if p.Unit != "" {
			name += " " + p.Unit
		}
		fmt.Fprintf(&b, "  %-10s %8s  %-40s %8s\n",
			p.Category, p.Quantity.String(), name, currencyutils.FormatAmount(p.TotalPrice))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Items:    %d\n", len(inv.Products))
	fmt.Fprintf(&b, "Sum:      %s\n", currencyutils.FormatAmount(inv.SumTotal()))
	fmt.Fprintf(&b, "Total:    %s\n", currencyutils.FormatAmount(inv.Total))
	if diff := assembler.Difference(inv); !diff.IsZero() {
		fmt.Fprintf(&b, "Difference: %s\n", currencyutils.FormatAmount(diff))
	}
	return b.String()
}
