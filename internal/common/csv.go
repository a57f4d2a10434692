// Package common provides the CSV export shared by the commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
)

// DefaultDelimiter is the CSV field separator used when none is configured.
const DefaultDelimiter rune = ','

// CSVWriter writes invoice rows with a configurable delimiter.
type CSVWriter struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVWriter creates a writer. A zero delimiter selects DefaultDelimiter.
func NewCSVWriter(delimiter rune, logger logging.Logger) *CSVWriter {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &CSVWriter{delimiter: delimiter, logger: logger}
}

// Delimiter returns the field separator.
func (w *CSVWriter) Delimiter() rune { return w.delimiter }

// Marshal writes the rows of every invoice, with one header line, to out.
func (w *CSVWriter) Marshal(out io.Writer, invoices ...*models.Invoice) error {
	rows := make([]models.ProductRow, 0)
	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		rows = append(rows, inv.Rows()...)
	}

	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteFile writes the rows of the invoices to csvFile, creating its directory.
func (w *CSVWriter) WriteFile(csvFile string, invoices ...*models.Invoice) error {
	if len(invoices) == 0 {
		return fmt.Errorf("cannot write an empty invoice list to CSV")
	}

	log := w.logger.WithField(logging.FieldOutputFile, csvFile)
	log.Info("Writing invoice rows to CSV file", logging.F(logging.FieldCount, len(invoices)))

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := w.Marshal(file, invoices...); err != nil {
		log.WithError(err).Error("Failed to marshal invoice rows to CSV")
		return err
	}

	log.Info("Successfully wrote invoice rows to CSV file")
	return nil
}

// WriteInvoiceToCSV writes one invoice to csvFile with the given delimiter.
func WriteInvoiceToCSV(inv *models.Invoice, csvFile string, delimiter rune, logger logging.Logger) error {
	if inv == nil {
		return fmt.Errorf("cannot write nil invoice to CSV")
	}
	return NewCSVWriter(delimiter, logger).WriteFile(csvFile, inv)
}
