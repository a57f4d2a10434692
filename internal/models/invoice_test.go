package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/receipt-csv/internal/parsererror"
)

func sampleInvoice(t *testing.T, total string) *Invoice {
	t.Helper()
	inv, err := NewInvoiceBuilder().
		WithVendor(VendorMercadona).
		WithMetadata(Metadata{
			InvoiceNumber: "2345-012-123456|4001-021-987654",
			PaymentDate:   time.Date(2023, 3, 12, 18, 45, 0, 0, time.UTC),
			Total:         d(total),
		}).
		WithProducts([]Product{
			NewProduct(CategoryUnitary, "PAN", d("1"), d("1.20"), ""),
			NewProduct(CategoryMultiple, "AGUA", d("3"), d("1.50"), "(3 x 0,50€)"),
			NewProduct(CategoryDiscount, "Descuento", d("0"), d("-0.30"), ""),
		}).
		Build()
	require.NoError(t, err)
	return inv
}

func TestSumTotal(t *testing.T) {
	inv := sampleInvoice(t, "2.40")
	assert.Equal(t, "2.40", inv.SumTotal().StringFixed(2))

	empty := &Invoice{}
	assert.True(t, empty.SumTotal().IsZero())
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		wantErr  bool
	}{
		{"exact", "2.40", false},
		{"within tolerance", "2.41", false},
		{"beyond tolerance", "2.42", true},
		{"below", "2.30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := sampleInvoice(t, tt.declared)
			err := inv.Reconcile(d(DefaultTolerance))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, parsererror.ErrTotalMismatch))

			var mismatch *parsererror.TotalMismatchError
			require.True(t, errors.As(err, &mismatch))
			assert.Equal(t, d(tt.declared).StringFixed(2), mismatch.Declared)
			assert.Equal(t, "2.40", mismatch.Computed)
			assert.Equal(t, "Mercadona", mismatch.Vendor)
			assert.Equal(t, inv.InvoiceNumber, mismatch.InvoiceNumber)
		})
	}
}

func TestReconcile_PerturbedItem(t *testing.T) {
	inv := sampleInvoice(t, "2.40")
	require.NoError(t, inv.Reconcile(d(DefaultTolerance)))

	inv.Products[0].TotalPrice = inv.Products[0].TotalPrice.Add(d("0.02"))
	assert.Error(t, inv.Reconcile(d(DefaultTolerance)))
}

func TestIdentifiers(t *testing.T) {
	inv := sampleInvoice(t, "2.40")
	order, number := inv.Identifiers()
	assert.Equal(t, "2345-012-123456", order)
	assert.Equal(t, "4001-021-987654", number)

	single := &Invoice{InvoiceNumber: "4001-021-987654"}
	order, number = single.Identifiers()
	assert.Empty(t, order)
	assert.Equal(t, "4001-021-987654", number)
}

func TestRows(t *testing.T) {
	inv := sampleInvoice(t, "2.40")
	rows := inv.Rows()
	require.Len(t, rows, 3)

	assert.Equal(t, ProductRow{
		Name:          "AGUA",
		TotalPrice:    "1.50",
		Unit:          "(3 x 0,50€)",
		Quantity:      "3",
		UnitPrice:     "0.50",
		Category:      "multiple",
		InvoiceNumber: "2345-012-123456|4001-021-987654",
		PaymentDate:   "2023-03-12 18:45",
		InvoiceTotal:  "2.40",
		Vendor:        "Mercadona",
	}, rows[1])
	assert.Equal(t, "0", rows[2].Quantity)
}

func TestInvoiceBuilder_Errors(t *testing.T) {
	_, err := NewInvoiceBuilder().WithVendor(VendorUnknown).Build()
	assert.Error(t, err)

	_, err = NewInvoiceBuilder().WithVendor(VendorConsum).WithInvoiceNumber("").Build()
	assert.EqualError(t, err, "invoice number cannot be empty")

	_, err = NewInvoiceBuilder().WithVendor(VendorConsum).WithInvoiceNumber("1").
		WithPaymentDate(time.Time{}).Build()
	assert.EqualError(t, err, "payment date cannot be zero")

	_, err = NewInvoiceBuilder().WithVendor(VendorConsum).WithInvoiceNumber("1").Build()
	assert.EqualError(t, err, "payment date is required")

	_, err = NewInvoiceBuilder().WithInvoiceNumber("1").Build()
	assert.EqualError(t, err, "vendor is required")
}

func TestInvoiceBuilder_CopiesProducts(t *testing.T) {
	products := []Product{NewProduct(CategoryUnitary, "PAN", d("1"), d("1.20"), "")}

	inv, err := NewInvoiceBuilder().
		WithVendor(VendorConsum).
		WithInvoiceNumber("C:1 2/3|4").
		WithPaymentDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)).
		WithTotal(d("1.20")).
		WithProducts(products).
		AddProduct(NewProduct(CategoryDiscount, "Dto Mis Fav", d("0"), d("-0.10"), "")).
		Build()
	require.NoError(t, err)

	products[0].Name = "changed"
	assert.Equal(t, "PAN", inv.Products[0].Name)
	assert.Len(t, inv.Products, 2)
	assert.Len(t, products, 1)
}
