// Package factory maps receipt text to the grammar of the vendor that printed it.
package factory

import (
	"fmt"
	"strings"

	"fjacquet/receipt-csv/internal/consumparser"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/mercadonaparser"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parser"
	"fjacquet/receipt-csv/internal/parsererror"
	"fjacquet/receipt-csv/internal/textutils"
)

// signatures is searched in order; the first vendor whose name appears wins.
var signatures = []models.Vendor{
	models.VendorConsum,
	models.VendorMercadona,
}

// DetectVendor finds the vendor signature in text, ignoring case.
func DetectVendor(text string) (models.Vendor, error) {
	folded := textutils.Fold(text)
	for _, v := range signatures {
		if strings.Contains(folded, textutils.Fold(v.Signature())) {
			return v, nil
		}
	}
	return models.VendorUnknown, &parsererror.UnsupportedVendorError{Snippet: textutils.Snippet(text, 0)}
}

// GetGrammar returns a new instance of the grammar for vendor with the provided
// logger for dependency injection.
func GetGrammar(vendor models.Vendor, logger logging.Logger) (parser.Grammar, error) {
	switch vendor {
	case models.VendorMercadona:
		return mercadonaparser.NewAdapter(logger), nil
	case models.VendorConsum:
		return consumparser.NewAdapter(logger), nil
	default:
		return nil, fmt.Errorf("no grammar for vendor %s: %w", vendor, parsererror.ErrUnsupportedVendor)
	}
}

// SelectGrammar detects the vendor of text and returns it together with its grammar.
func SelectGrammar(text string, logger logging.Logger) (models.Vendor, parser.Grammar, error) {
	vendor, err := DetectVendor(text)
	if err != nil {
		return models.VendorUnknown, nil, err
	}
	grammar, err := GetGrammar(vendor, logger)
	if err != nil {
		return models.VendorUnknown, nil, err
	}
	return vendor, grammar, nil
}
