// Package mercadonaparser provides the line grammars and metadata extractors for
// Mercadona receipts and invoices, as produced by PDF text extraction.
package mercadonaparser

import (
	"regexp"
	"strings"

	"fjacquet/receipt-csv/internal/currencyutils"
	"fjacquet/receipt-csv/internal/dateutils"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parser"
	"fjacquet/receipt-csv/internal/textutils"
)

// Rule names
const (
	RuleWeighed    = "mercadona-weighed"
	RuleDiscount   = "mercadona-discount"
	RuleTabular    = "mercadona-tabular"
	RuleUnitary    = "mercadona-unitary"
	RuleMultiple   = "mercadona-multiple"
	RuleFractional = "mercadona-fractional"
)

const (
	// A count line with a name that does not end in a digit, followed by
	// "0,780 kg 1,99 €/kg 1,55".
	weighedPattern = `^[1-9]\d*[ \t]+(.*[^\d\n])\n(\d+[.,]\d+)[ \t]+(.+?)[ \t]+(-?\d+[.,]\d{2})$`

	discountPattern = `^((?:Descuento|Dto|Ahorro|Promoci[oó]n)(?:[ \t.:].*?)?)[ \t]+(-?\d*[.,]\d{2})$`

	// Invoice layout: description, quantity, unit net price, VAT rate, amount.
	tabularPattern = `^([^\d\n-].*?)[ \t]+(\d+(?:[.,]\d+)?)[ \t]+\d+[.,]\d+[ \t]+\d+(?:[.,]\d+)?[ \t]*%[ \t]+(-?\d+[.,]\d{2})$`

	unitaryPattern    = `^(-?1)[ \t]+(.+?)[ \t]+(-?\d+[.,]\d{2})$`
	multiplePattern   = `^(-?(?:0|[2-9]|[1-9]\d+))[ \t]+(.+?)[ \t]+(-?\d+[.,]\d{2})$`
	fractionalPattern = `^(\d+[.,]\d+)[ \t]+(.+?)[ \t]+(-?\d+[.,]\d{2})$`
)

// Trailing unit price embedded in a multi-quantity name, "AGUA MINERAL 0,50".
var unitPriceSuffix = regexp.MustCompile(`^(.*?)[ \t]+(\d+[.,]\d{2})$`)

// lineRules is compiled once and shared by every adapter.
var lineRules = []parser.LineRule{
	parser.NewLineRule(RuleWeighed, models.CategoryWeighed, weighedPattern, buildWeighed),
	parser.NewLineRule(RuleDiscount, models.CategoryDiscount, discountPattern, buildDiscount),
	parser.NewLineRule(RuleTabular, models.CategoryTabular, tabularPattern, buildTabular),
	parser.NewLineRule(RuleUnitary, models.CategoryUnitary, unitaryPattern, buildUnitary),
	parser.NewLineRule(RuleMultiple, models.CategoryMultiple, multiplePattern, buildMultiple),
	parser.NewLineRule(RuleFractional, models.CategoryFractional, fractionalPattern, buildFractional),
}

// Rules returns the Mercadona line grammars, most specific first.
func Rules() []parser.LineRule {
	return append([]parser.LineRule(nil), lineRules...)
}

func buildWeighed(g []string) (models.Product, error) {
	unit := strings.TrimSpace(g[2] + " " + g[3])
	return parser.FractionalProduct(models.CategoryWeighed, g[2], g[1], g[4], unit)
}

func buildDiscount(g []string) (models.Product, error) {
	return parser.DiscountProduct(g[1], g[2])
}

func buildTabular(g []string) (models.Product, error) {
	return parser.TabularProduct(g[1], g[2], g[3])
}

func buildUnitary(g []string) (models.Product, error) {
	return parser.UnitaryProduct(g[1], g[2], g[3])
}

// buildMultiple peels the unit price off the name into the unit note. The unit
// price itself is derived from the total.
func buildMultiple(g []string) (models.Product, error) {
	qty, name, unit := g[1], g[2], ""
	if m := unitPriceSuffix.FindStringSubmatch(name); m != nil {
		name = m[1]
		unit = parser.UnitAnnotation(qty, strings.Replace(m[2], ",", ".", 1))
	}
	return parser.MultipleProduct(qty, name, "", g[3], unit)
}

func buildFractional(g []string) (models.Product, error) {
	return parser.FractionalProduct(models.CategoryFractional, g[1], g[2], g[3], "")
}

var (
	invoiceRule = parser.NewFieldRule(parser.FieldInvoiceNumber, `(?i)Factura\s+\S+:\s*([0-9](?:[0-9\- ]*[0-9])?)`)
	orderRule   = parser.NewFieldRule(parser.FieldOrderNumber, `(?:Pedido Nº|Pedido N°|OP):\s+([0-9]+)`)
	dateRule    = parser.NewFieldRule(parser.FieldPaymentDate,
		`(\d{1,2})/(\d{1,2})/(\d{4})(?:(?:\s+a\s+las)?\s+(\d{1,2}):(\d{2}))?`)
	totalRule = parser.NewFieldRule(parser.FieldInvoiceTotal, `(?im)^TOTAL\b[^\d\n-]*(-?\d+[.,]\d{2})`)
)

// ExtractMetadata extracts the invoice number, payment date and declared total.
// When an order number is printed it is joined in front of the invoice number.
func ExtractMetadata(text string, logger logging.Logger) (models.Metadata, error) {
	text = textutils.NormalizeLines(text)
	vendor := models.VendorMercadona

	inv, err := parser.RequireMatch(vendor, invoiceRule, text)
	if err != nil {
		return models.Metadata{}, err
	}
	invoiceNumber := strings.TrimSpace(inv[1])
	if order := orderRule.Find(text); order != nil {
		invoiceNumber = parser.JoinIdentifiers(order[1], invoiceNumber)
	} else {
		logger.Debug("No order number printed", logging.F(logging.FieldVendor, vendor.String()))
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
		InvoiceNumber: invoiceNumber,
		PaymentDate:   paymentDate,
		Total:         amount,
	}, nil
}
