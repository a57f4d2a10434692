// Package consumparser provides the line grammars and metadata extractors for
// Consum tickets, as produced by OCR of the printed receipt.
package consumparser

import (
	"strings"

	"fjacquet/receipt-csv/internal/currencyutils"
	"fjacquet/receipt-csv/internal/dateutils"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parser"
	"fjacquet/receipt-csv/internal/textutils"
)

// Rule names
const (
	RuleDiscount   = "consum-discount"
	RuleUnitary    = "consum-unitary"
	RuleMultiple   = "consum-multiple"
	RuleFractional = "consum-fractional"
)

const (
	discountPattern = `^((?:Descuento|Dto Mis Fav).*?)[ \t]+(-?\d*[.,]\d+)$`
	unitaryPattern  = `^(-?1)[ \t]+(.+?)[ \t]+(-?\d+[.,]\d+)$`
	// Quantity, name, optional unit price, total.
	multiplePattern   = `^(-?(?:0|[2-9]|[1-9]\d+))[ \t]+(.+?)(?:[ \t]+(-?\d*[.,]\d+))?[ \t]+(-?\d+[.,]\d+)$`
	fractionalPattern = `^(-?\d+[.,]\d+)[ \t]+(.+?)[ \t]+(-?\d+[.,]\d+)$`
)

var lineRules = []parser.LineRule{
	parser.NewLineRule(RuleDiscount, models.CategoryDiscount, discountPattern, func(g []string) (models.Product, error) {
		return parser.DiscountProduct(g[1], g[2])
	}),
	parser.NewLineRule(RuleUnitary, models.CategoryUnitary, unitaryPattern, func(g []string) (models.Product, error) {
		return parser.UnitaryProduct(g[1], g[2], g[3])
	}),
	parser.NewLineRule(RuleMultiple, models.CategoryMultiple, multiplePattern, func(g []string) (models.Product, error) {
		return parser.MultipleProduct(g[1], g[2], g[3], g[4], "")
	}),
	parser.NewLineRule(RuleFractional, models.CategoryFractional, fractionalPattern, func(g []string) (models.Product, error) {
		return parser.FractionalProduct(models.CategoryFractional, g[1], g[2], g[3], "")
	}),
}

// Rules returns the Consum line grammars, most specific first.
func Rules() []parser.LineRule {
	return append([]parser.LineRule(nil), lineRules...)
}

var (
	// "C:123 4/567 12.03.2023 18:45 8901" carries the order and invoice identifiers.
	headerRule = parser.NewFieldRule(parser.FieldInvoiceNumber,
		`(?i)(C:\d+\s+\d+/\d+)\s+\d{2}\.\d{2}\.\d{4}\s+\d{2}:\d{2}\s+(\d+)`)
	dateRule  = parser.NewFieldRule(parser.FieldPaymentDate, `(\d{2})\.(\d{2})\.(\d{4})(?:\s+(\d{2}):(\d{2}))?`)
	totalRule = parser.NewFieldRule(parser.FieldInvoiceTotal, `(?i)importe a abonar:?\s*€?\s*(\d+[.,]\d+)`)
)

// ExtractMetadata extracts the invoice number, payment date and declared total.
// The invoice number joins the register identifier and the ticket number.
func ExtractMetadata(text string) (models.Metadata, error) {
	text = textutils.NormalizeLines(text)
	vendor := models.VendorConsum

	header, err := parser.RequireMatch(vendor, headerRule, text)
	if err != nil {
		return models.Metadata{}, err
	}

	date, err := parser.RequireMatch(vendor, dateRule, text)
	if err != nil {
		return models.Metadata{}, err
	}
	paymentDate, err := dateutils.BuildPaymentDate(date[1], date[2], date[3], date[4], date[5])
	if err != nil {
		return models.Metadata{}, err
	}

	total, err := parser.RequireMatch(vendor, totalRule, text)
	if err != nil {
		return models.Metadata{}, err
	}
	amount, err := currencyutils.ParseAmount(parser.FieldInvoiceTotal, total[1])
	if err != nil {
		return models.Metadata{}, err
	}

	return models.Metadata{
		InvoiceNumber: parser.JoinIdentifiers(strings.Join(strings.Fields(header[1]), " "), header[2]),
		PaymentDate:   paymentDate,
		Total:         amount,
	}, nil
}
