package consumparser

import (
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parser"
)

// Adapter implements parser.Grammar for Consum tickets.
type Adapter struct {
	parser.BaseParser
	classifier *parser.Classifier
}

// NewAdapter creates a new adapter for the consumparser.
func NewAdapter(logger logging.Logger) *Adapter {
	base := parser.NewBaseParser(logger)
	return &Adapter{
		BaseParser: base,
		classifier: parser.NewClassifier(base.GetLogger(), Rules()...),
	}
}

// Vendor implements parser.Grammar.
func (a *Adapter) Vendor() models.Vendor {
	return models.VendorConsum
}

// ClassifyLines implements parser.Grammar.
func (a *Adapter) ClassifyLines(text string) []models.Product {
	return a.classifier.Classify(text)
}

// ExtractMetadata implements parser.Grammar.
func (a *Adapter) ExtractMetadata(text string) (models.Metadata, error) {
	return ExtractMetadata(text)
}

// SetLogger replaces the logger of the adapter and its classifier.
func (a *Adapter) SetLogger(logger logging.Logger) {
	a.BaseParser.SetLogger(logger)
	a.classifier = parser.NewClassifier(a.GetLogger(), Rules()...)
}
