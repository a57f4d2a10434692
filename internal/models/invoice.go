package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/receipt-csv/internal/currencyutils"
	"fjacquet/receipt-csv/internal/dateutils"
	"fjacquet/receipt-csv/internal/parsererror"
)

// Metadata holds the header fields a vendor grammar extracts from a receipt.
type Metadata struct {
	InvoiceNumber string
	PaymentDate   time.Time
	Total         decimal.Decimal
}

// Invoice is the parsed form of one receipt. It is built once by InvoiceBuilder
// and not modified afterwards.
type Invoice struct {
	Vendor        Vendor          `json:"vendor" yaml:"vendor"`
	InvoiceNumber string          `json:"invoice_number" yaml:"invoice_number"`
	PaymentDate   time.Time       `json:"payment_date" yaml:"payment_date"`
	Products      []Product       `json:"products" yaml:"products"`
	Total         decimal.Decimal `json:"total" yaml:"total"`
}

// SumTotal returns the sum of the product totals rounded to currency precision.
func (i *Invoice) SumTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range i.Products {
		sum = sum.Add(p.TotalPrice)
	}
	return currencyutils.RoundAmount(sum)
}

// Reconcile compares the declared total with SumTotal. It returns a
// *parsererror.TotalMismatchError when they differ by more than tolerance.
func (i *Invoice) Reconcile(tolerance decimal.Decimal) error {
	sum := i.SumTotal()
	if i.Total.Sub(sum).Abs().GreaterThan(tolerance) {
		return &parsererror.TotalMismatchError{
			Vendor:        i.Vendor.String(),
			InvoiceNumber: i.InvoiceNumber,
			Declared:      currencyutils.FormatAmount(i.Total),
			Computed:      currencyutils.FormatAmount(sum),
			Tolerance:     tolerance.String(),
		}
	}
	return nil
}

// Identifiers splits the invoice number into its order and invoice parts.
// Order is empty when the vendor printed a single identifier.
func (i *Invoice) Identifiers() (order, invoice string) {
	if idx := strings.Index(i.InvoiceNumber, InvoiceNumberSeparator); idx >= 0 {
		return i.InvoiceNumber[:idx], i.InvoiceNumber[idx+len(InvoiceNumberSeparator):]
	}
	return "", i.InvoiceNumber
}

// ProductRow is the flat CSV representation of one product with its invoice header.
type ProductRow struct {
	Name          string `csv:"name"`
	TotalPrice    string `csv:"total_price"`
	Unit          string `csv:"unit"`
	Quantity      string `csv:"quantity"`
	UnitPrice     string `csv:"unit_price"`
	Category      string `csv:"category"`
	InvoiceNumber string `csv:"invoice_number"`
	PaymentDate   string `csv:"payment_date"`
	InvoiceTotal  string `csv:"invoice_total"`
	Vendor        string `csv:"vendor"`
}

// Rows flattens the invoice into one row per product.
func (i *Invoice) Rows() []ProductRow {
	rows := make([]ProductRow, 0, len(i.Products))
	for _, p := range i.Products {
		rows = append(rows, ProductRow{
			Name:          p.Name,
			TotalPrice:    currencyutils.FormatAmount(p.TotalPrice),
			Unit:          p.Unit,
			Quantity:      p.Quantity.String(),
			UnitPrice:     currencyutils.FormatAmount(p.UnitPrice),
			Category:      string(p.Category),
			InvoiceNumber: i.InvoiceNumber,
			PaymentDate:   dateutils.FormatDate(i.PaymentDate, dateutils.DateLayoutDateTime),
			InvoiceTotal:  currencyutils.FormatAmount(i.Total),
			Vendor:        i.Vendor.String(),
		})
	}
	return rows
}
