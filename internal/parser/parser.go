package parser

import (
	"fjacquet/receipt-csv/internal/models"
)

// Grammar is the set of line grammars and metadata extractors of one vendor.
// Implementations hold only immutable pattern tables and may be shared between
// goroutines.
type Grammar interface {
	// Vendor returns the vendor this grammar understands.
	Vendor() models.Vendor

	// ClassifyLines turns the receipt text into products in order of appearance.
	// Lines matching no grammar are ignored.
	ClassifyLines(text string) []models.Product

	// ExtractMetadata pulls the invoice number, payment date and declared total.
	// A required field that cannot be found yields a *parsererror.MissingFieldError;
	// a numeric token that cannot be normalized yields a *parsererror.MalformedNumericError.
	ExtractMetadata(text string) (models.Metadata, error)
}
