package parser

import (
	"regexp"

	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parsererror"
	"fjacquet/receipt-csv/internal/textutils"
)

// Metadata field names reported in errors.
const (
	FieldInvoiceNumber = "invoice_number"
	FieldOrderNumber   = "order_number"
	FieldPaymentDate   = "payment_date"
	FieldInvoiceTotal  = "invoice_total"
)

// FieldRule is a single-shot extraction rule for one metadata field.
type FieldRule struct {
	Field   string
	Pattern *regexp.Regexp
}

// NewFieldRule compiles a field rule. It panics if the pattern is invalid.
func NewFieldRule(field, pattern string) FieldRule {
	return FieldRule{Field: field, Pattern: regexp.MustCompile(pattern)}
}

// Find returns the submatches of the first match, or nil when the rule does not match.
func (r FieldRule) Find(text string) []string {
	return r.Pattern.FindStringSubmatch(text)
}

// RequireMatch is Find for mandatory fields. A missing match is reported as a
// *parsererror.MissingFieldError carrying the start of the text.
func RequireMatch(vendor models.Vendor, rule FieldRule, text string) ([]string, error) {
	groups := rule.Find(text)
	if groups == nil {
		return nil, &parsererror.MissingFieldError{
			Vendor:  vendor.String(),
			Field:   rule.Field,
			Snippet: textutils.Snippet(text, 0),
		}
	}
	return groups, nil
}

// JoinIdentifiers combines an order and an invoice identifier. An empty order
// leaves the invoice identifier alone.
func JoinIdentifiers(order, invoice string) string {
	if order == "" {
		return invoice
	}
	return order + models.InvoiceNumberSeparator + invoice
}
