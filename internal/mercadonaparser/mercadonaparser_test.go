package mercadonaparser

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parser"
	"fjacquet/receipt-csv/internal/parsererror"
)

const ticket = `MERCADONA, S.A. A-46103834
C/ COLON 28
46004 VALENCIA
TELÉFONO: 963511111
12/03/2023 18:45 OP: 123456
FACTURA SIMPLIFICADA: 2345-012-123456
Descripción P. Unit Importe
1 BARRA PAN 0,60
3 AGUA MINERAL 0,50 1,50
1 PLATANO
0,780 kg 1,99 €/kg 1,55
-1 LECHE ENTERA -0,95
TOTAL (€) 2,70
TARJETA BANCARIA 2,70
IVA BASE IMPONIBLE (€) CUOTA (€)
4% 1,15 0,05`

const invoice = `MERCADONA, S.A.
Pedido Nº: 98765432
Factura Nº: 4001-021-987654
Fecha: 05/01/2024
Descripción Cantidad Precio IVA Importe
LECHE ENTERA 6 0,86 4% 5,70
ACEITE OLIVA 1 4,50 10% 4,95
TOTAL FACTURA 10,65`

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newAdapter() *Adapter {
	return NewAdapter(logging.NewDiscardLogger())
}

func TestAdapterImplementsGrammar(t *testing.T) {
	var _ parser.Grammar = newAdapter()
	assert.Equal(t, models.VendorMercadona, newAdapter().Vendor())
}

func TestClassifyLines_Ticket(t *testing.T) {
	products := newAdapter().ClassifyLines(ticket)
	require.Len(t, products, 4)

	expected := []struct {
		name     string
		category models.Category
		quantity string
		unit     string
		price    string
		total    string
	}{
		{"BARRA PAN", models.CategoryUnitary, "1", "", "0.60", "0.60"},
		{"AGUA MINERAL", models.CategoryMultiple, "3", "(3 x 0.50€)", "0.50", "1.50"},
		{"PLATANO", models.CategoryWeighed, "0.78", "0,780 kg 1,99 €/kg", "1.99", "1.55"},
		{"LECHE ENTERA", models.CategoryUnitary, "-1", "", "-0.95", "-0.95"},
	}

	for i, want := range expected {
		t.Run(want.name, func(t *testing.T) {
			p := products[i]
			assert.Equal(t, want.name, p.Name)
			assert.Equal(t, want.category, p.Category)
			assert.True(t, dec(want.quantity).Equal(p.Quantity), "quantity %s", p.Quantity)
			assert.Equal(t, want.unit, p.Unit)
			assert.Equal(t, want.price, p.UnitPrice.StringFixed(2))
			assert.Equal(t, want.total, p.TotalPrice.StringFixed(2))
		})
	}
}

func TestClassifyLines_SingleLineShapes(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		category models.Category
		quantity string
		price    string
		total    string
		unit     string
	}{
		{"unitary", "1 Bread 1,20", models.CategoryUnitary, "1", "1.20", "1.20", ""},
		{"unitary dot separator", "1 Bread 1.20", models.CategoryUnitary, "1", "1.20", "1.20", ""},
		{"multiple without printed unit price", "2 YOGUR NATURAL 1,30", models.CategoryMultiple, "2", "0.65", "1.30", ""},
		{"multiple with printed unit price", "12 HUEVOS 0,25 3,00", models.CategoryMultiple, "12", "0.25", "3.00", "(12 x 0.25€)"},
		{"multiple zero quantity", "0 BOLSA PLASTICO 0,15", models.CategoryMultiple, "0", "0.00", "0.15", ""},
		{"fractional", "0,250 QUESO TIERNO 1,00", models.CategoryFractional, "0.25", "4.00", "1.00", ""},
		{"fractional zero quantity", "0,000 QUESO TIERNO 1,00", models.CategoryFractional, "0", "0.00", "1.00", ""},
		{"discount", "Descuento -0,50", models.CategoryDiscount, "0", "0.00", "-0.50", ""},
		{"discount positive amount", "Dto. cupón 0,50", models.CategoryDiscount, "0", "0.00", "0.50", ""},
		{"tabular", "LECHE ENTERA 6 0,86 4% 5,70", models.CategoryTabular, "6", "0.95", "5.70", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := newAdapter().ClassifyLines(tt.line)
			require.Len(t, products, 1)
			p := products[0]
			assert.Equal(t, tt.category, p.Category)
			assert.True(t, dec(tt.quantity).Equal(p.Quantity), "quantity %s", p.Quantity)
			assert.Equal(t, tt.price, p.UnitPrice.StringFixed(2))
			assert.Equal(t, tt.total, p.TotalPrice.StringFixed(2))
			assert.Equal(t, tt.unit, p.Unit)
		})
	}
}

func TestClassifyLines_WeighedLineNotCountedTwice(t *testing.T) {
	text := "1 PLATANO\n0,780 kg 1,99 €/kg 1,55"
	products := newAdapter().ClassifyLines(text)
	require.Len(t, products, 1)
	assert.Equal(t, models.CategoryWeighed, products[0].Category)
}

func TestClassifyLines_WeighedTotalsAboveTen(t *testing.T) {
	products := newAdapter().ClassifyLines("1 JAMON SERRANO\n0,512 kg 24,90 €/kg 12,75")
	require.Len(t, products, 1)
	assert.Equal(t, "12.75", products[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "0,512 kg 24,90 €/kg", products[0].Unit)
}

func TestClassifyLines_Invoice(t *testing.T) {
	products := newAdapter().ClassifyLines(invoice)
	require.Len(t, products, 2)
	assert.Equal(t, "LECHE ENTERA", products[0].Name)
	assert.Equal(t, "ACEITE OLIVA", products[1].Name)
	assert.Equal(t, "4.95", products[1].UnitPrice.StringFixed(2))
}

func TestClassifyLines_EveryLineClassifiedOnce(t *testing.T) {
	logger := logging.NewMockLogger()
	products := NewAdapter(logger).ClassifyLines(ticket)

	seen := map[string]int{}
	for _, p := range products {
		seen[p.Name]++
	}
	for name, n := range seen {
		assert.Equal(t, 1, n, name)
	}
}

func TestExtractMetadata_Ticket(t *testing.T) {
	meta, err := newAdapter().ExtractMetadata(ticket)
	require.NoError(t, err)

	assert.Equal(t, "123456|2345-012-123456", meta.InvoiceNumber)
	assert.True(t, time.Date(2023, 3, 12, 18, 45, 0, 0, time.UTC).Equal(meta.PaymentDate))
	assert.Equal(t, "2.70", meta.Total.StringFixed(2))
}

func TestExtractMetadata_Invoice(t *testing.T) {
	logger := logging.NewMockLogger()
	meta, err := NewAdapter(logger).ExtractMetadata(invoice)
	require.NoError(t, err)

	assert.Equal(t, "98765432|4001-021-987654", meta.InvoiceNumber)
	assert.True(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC).Equal(meta.PaymentDate), "midnight default")
	assert.Equal(t, "10.65", meta.Total.StringFixed(2))
	assert.False(t, logger.HasEntry("DEBUG", "No order number printed"))
}

func TestExtractMetadata_WithoutOrder(t *testing.T) {
	logger := logging.NewMockLogger()
	text := "MERCADONA\n01/02/2023 a las 09:15\nFactura simplificada: 1111-222-333333\n1 Bread 1,20\nTOTAL ... 1,20"

	meta, err := NewAdapter(logger).ExtractMetadata(text)
	require.NoError(t, err)
	assert.Equal(t, "1111-222-333333", meta.InvoiceNumber)
	assert.True(t, time.Date(2023, 2, 1, 9, 15, 0, 0, time.UTC).Equal(meta.PaymentDate))
	assert.Equal(t, "1.20", meta.Total.StringFixed(2))
	assert.True(t, logger.HasEntry("DEBUG", "No order number printed"))
}

func TestExtractMetadata_ValueOnNextLine(t *testing.T) {
	text := "MERCADONA, S.A.\n12/03/2023\n18:45 OP:\n123456\nFACTURA SIMPLIFICADA:\n2345-012-123456\n1 Bread 1,20\nTOTAL (€) 1,20"

	meta, err := newAdapter().ExtractMetadata(text)
	require.NoError(t, err)
	assert.Equal(t, "123456|2345-012-123456", meta.InvoiceNumber)
	assert.True(t, time.Date(2023, 3, 12, 18, 45, 0, 0, time.UTC).Equal(meta.PaymentDate))
	assert.Equal(t, "1.20", meta.Total.StringFixed(2))
}

func TestExtractMetadata_SingleDigitInvoice(t *testing.T) {
	text := "MERCADONA\n05/01/2024\nFactura Nº: 7\nTOTAL FACTURA 4,95"

	meta, err := newAdapter().ExtractMetadata(text)
	require.NoError(t, err)
	assert.Equal(t, "7", meta.InvoiceNumber)
}

func TestExtractMetadata_Missing(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field string
	}{
		{"invoice number", "MERCADONA\n12/03/2023 18:45\nTOTAL (€) 2,70", parser.FieldInvoiceNumber},
		{"payment date", "MERCADONA\nFACTURA SIMPLIFICADA: 2345-012-123456\nTOTAL (€) 2,70", parser.FieldPaymentDate},
		{"total", "MERCADONA\n12/03/2023 18:45\nFACTURA SIMPLIFICADA: 2345-012-123456\nSUBTOTAL 2,70", parser.FieldInvoiceTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAdapter().ExtractMetadata(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, parsererror.ErrMissingField))

			var missing *parsererror.MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.field, missing.Field)
			assert.Equal(t, "Mercadona", missing.Vendor)
			assert.NotEmpty(t, missing.Snippet)
		})
	}
}

func TestExtractMetadata_InvalidDate(t *testing.T) {
	text := "MERCADONA\n31/02/2023 18:45\nFACTURA SIMPLIFICADA: 2345-012-123456\nTOTAL (€) 2,70"
	_, err := newAdapter().ExtractMetadata(text)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsererror.ErrMalformedNumeric))
}

func TestRules_Order(t *testing.T) {
	rules := Rules()
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{RuleWeighed, RuleDiscount, RuleTabular, RuleUnitary, RuleMultiple, RuleFractional}, names)

	rules[0].Name = "changed"
	assert.Equal(t, RuleWeighed, Rules()[0].Name)
}

func TestSetLogger(t *testing.T) {
	a := newAdapter()
	logger := logging.NewMockLogger()
	a.SetLogger(logger)

	a.ClassifyLines("1 Bread 1,20")
	assert.True(t, logger.HasEntry("DEBUG", "Classified receipt lines"))
}
