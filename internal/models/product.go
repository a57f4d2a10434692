package models

import (
	"github.com/shopspring/decimal"

	"fjacquet/receipt-csv/internal/currencyutils"
)

// Product is one purchased line of a receipt.
type Product struct {
	Name       string          `json:"name" yaml:"name"`
	Quantity   decimal.Decimal `json:"quantity" yaml:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" yaml:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price" yaml:"total_price"`
	Unit       string          `json:"unit,omitempty" yaml:"unit,omitempty"`
	Category   Category        `json:"category,omitempty" yaml:"category,omitempty"`
}

// NewProduct builds a product whose unit price is derived from the total and quantity.
// Discount products always get a zero quantity and unit price.
func NewProduct(category Category, name string, quantity, total decimal.Decimal, unit string) Product {
	p := Product{
		Name:       name,
		Quantity:   quantity,
		TotalPrice: currencyutils.RoundAmount(total),
		Unit:       unit,
		Category:   category,
	}
	if category == CategoryDiscount {
		p.Quantity = decimal.Zero
	}
	p.UnitPrice = currencyutils.UnitPrice(p.TotalPrice, p.Quantity)
	return p
}

// WithUnitPrice returns a copy of p with an explicit unit price, for layouts that print it.
func (p Product) WithUnitPrice(unitPrice decimal.Decimal) Product {
	if p.Quantity.IsZero() {
		p.UnitPrice = decimal.Zero
		return p
	}
	p.UnitPrice = currencyutils.RoundAmount(unitPrice)
	return p
}

// IsDiscount reports whether the product is a discount line.
func (p Product) IsDiscount() bool {
	return p.Category == CategoryDiscount
}
