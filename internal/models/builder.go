package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceBuilder provides a fluent API for constructing invoices
type InvoiceBuilder struct {
	inv Invoice
	err error
}

// NewInvoiceBuilder creates a new InvoiceBuilder with default values
func NewInvoiceBuilder() *InvoiceBuilder {
	return &InvoiceBuilder{
		inv: Invoice{
			Vendor:   VendorUnknown,
			Total:    decimal.Zero,
			Products: []Product{},
		},
	}
}

// WithVendor sets the vendor
func (b *InvoiceBuilder) WithVendor(v Vendor) *InvoiceBuilder {
	if b.err != nil {
		return b
	}
	if !v.IsKnown() {
		b.err = fmt.Errorf("unsupported vendor %d", int(v))
		return b
	}
	b.inv.Vendor = v
	return b
}

// WithInvoiceNumber sets the invoice number
func (b *InvoiceBuilder) WithInvoiceNumber(number string) *InvoiceBuilder {
	if b.err != nil {
		return b
	}
	if number == "" {
		b.err = errors.New("invoice number cannot be empty")
		return b
	}
	b.inv.InvoiceNumber = number
	return b
}

// WithPaymentDate sets the payment date
func (b *InvoiceBuilder) WithPaymentDate(date time.Time) *InvoiceBuilder {
	if b.err != nil {
		return b
	}
	if date.IsZero() {
		b.err = errors.New("payment date cannot be zero")
		return b
	}
	b.inv.PaymentDate = date
	return b
}

// WithTotal sets the declared total
func (b *InvoiceBuilder) WithTotal(total decimal.Decimal) *InvoiceBuilder {
	if b.err != nil {
		return b
	}
	b.inv.Total = total
	return b
}

// WithMetadata sets the invoice number, payment date and total in one call
func (b *InvoiceBuilder) WithMetadata(m Metadata) *InvoiceBuilder {
	return b.WithInvoiceNumber(m.InvoiceNumber).
		WithPaymentDate(m.PaymentDate).
		WithTotal(m.Total)
}

// WithProducts sets the products. The slice is copied.
func (b *InvoiceBuilder) WithProducts(products []Product) *InvoiceBuilder {
	if b.err != nil {
		return b
	}
	b.inv.Products = append(make([]Product, 0, len(products)), products...)
	return b
}

// AddProduct appends one product
func (b *InvoiceBuilder) AddProduct(p Product) *InvoiceBuilder {
	if b.err != nil {
		return b
	}
	b.inv.Products = append(b.inv.Products, p)
	return b
}

// Build returns the invoice or the first error recorded while building it
func (b *InvoiceBuilder) Build() (*Invoice, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.inv.Vendor == VendorUnknown {
		return nil, errors.New("vendor is required")
	}
	if b.inv.InvoiceNumber == "" {
		return nil, errors.New("invoice number is required")
	}
	if b.inv.PaymentDate.IsZero() {
		return nil, errors.New("payment date is required")
	}

	inv := b.inv
	inv.Products = append(make([]Product, 0, len(b.inv.Products)), b.inv.Products...)
	return &inv, nil
}
