package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/receipt-csv/internal/currencyutils"
	"fjacquet/receipt-csv/internal/models"
)

// Field names used when a product token fails to normalize.
const (
	fieldQuantity   = "quantity"
	fieldUnitPrice  = "unit_price"
	fieldTotalPrice = "total_price"
)

// UnitaryProduct builds a product sold by the unit. The quantity token is 1 or -1
// and the unit price equals the total.
func UnitaryProduct(qty, name, total string) (models.Product, error) {
	q, err := currencyutils.ParseField(fieldQuantity, qty)
	if err != nil {
		return models.Product{}, err
	}
	t, err := currencyutils.ParseAmount(fieldTotalPrice, total)
	if err != nil {
		return models.Product{}, err
	}
	p := models.NewProduct(models.CategoryUnitary, CleanName(name), q, t, "")
	p.UnitPrice = t
	return p, nil
}

// MultipleProduct builds a product bought in an integer quantity. unitPrice may be
// empty, in which case it is derived from the total.
func MultipleProduct(qty, name, unitPrice, total, unit string) (models.Product, error) {
	q, err := currencyutils.ParseField(fieldQuantity, qty)
	if err != nil {
		return models.Product{}, err
	}
	t, err := currencyutils.ParseAmount(fieldTotalPrice, total)
	if err != nil {
		return models.Product{}, err
	}
	p := models.NewProduct(models.CategoryMultiple, CleanName(name), q, t, unit)
	if unitPrice == "" {
		return p, nil
	}
	u, err := currencyutils.ParseAmount(fieldUnitPrice, unitPrice)
	if err != nil {
		return models.Product{}, err
	}
	return p.WithUnitPrice(u), nil
}

// FractionalProduct builds a product sold by weight or volume. The unit price is
// the total divided by the quantity.
func FractionalProduct(category models.Category, qty, name, total, unit string) (models.Product, error) {
	q, err := currencyutils.ParseQuantity(fieldQuantity, qty)
	if err != nil {
		return models.Product{}, err
	}
	t, err := currencyutils.ParseAmount(fieldTotalPrice, total)
	if err != nil {
		return models.Product{}, err
	}
	return models.NewProduct(category, CleanName(name), q, t, unit), nil
}

// DiscountProduct builds a discount line with zero quantity and unit price.
func DiscountProduct(name, amount string) (models.Product, error) {
	t, err := currencyutils.ParseAmount(fieldTotalPrice, amount)
	if err != nil {
		return models.Product{}, err
	}
	return models.NewProduct(models.CategoryDiscount, CleanName(name), decimal.Zero, t, ""), nil
}

// TabularProduct builds a product from an invoice table row. With a quantity of one
// the unit price is the total; otherwise it is derived from the total.
func TabularProduct(name, qty, total string) (models.Product, error) {
	q, err := currencyutils.ParseQuantity(fieldQuantity, qty)
	if err != nil {
		return models.Product{}, err
	}
	t, err := currencyutils.ParseAmount(fieldTotalPrice, total)
	if err != nil {
		return models.Product{}, err
	}
	p := models.NewProduct(models.CategoryTabular, CleanName(name), q, t, "")
	if q.Equal(decimal.NewFromInt(1)) {
		p.UnitPrice = t
	}
	return p, nil
}

// UnitAnnotation formats the "(3 x 1,20€)" note kept on multi-quantity products.
func UnitAnnotation(qty, unitPrice string) string {
	return fmt.Sprintf("(%s x %s€)", strings.TrimSpace(qty), strings.TrimSpace(unitPrice))
}

// CleanName trims a product name and collapses internal runs of blanks.
func CleanName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
