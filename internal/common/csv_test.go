package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
)

func sampleInvoice(t *testing.T) *models.Invoice {
	t.Helper()
	d := decimal.RequireFromString
	inv, err := models.NewInvoiceBuilder().
		WithVendor(models.VendorConsum).
		WithInvoiceNumber("C:123 4/567|8901").
		WithPaymentDate(time.Date(2023, 3, 12, 18, 45, 0, 0, time.UTC)).
		WithTotal(d("1.85")).
		AddProduct(models.NewProduct(models.CategoryUnitary, "PAN BARRA", d("1"), d("0.85"), "")).
		AddProduct(models.NewProduct(models.CategoryMultiple, "AGUA, MINERAL", d("2"), d("1.00"), "")).
		Build()
	require.NoError(t, err)
	return inv
}

func TestCSVWriter_Marshal(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(0, logging.NewDiscardLogger())
	require.NoError(t, w.Marshal(&buf, sampleInvoice(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,total_price,unit,quantity,unit_price,category,invoice_number,payment_date,invoice_total,vendor", lines[0])
	assert.Equal(t, "PAN BARRA,0.85,,1,0.85,unitary,C:123 4/567|8901,2023-03-12 18:45,1.85,Consum", lines[1])
	assert.Equal(t, `"AGUA, MINERAL",1.00,,2,0.50,multiple,C:123 4/567|8901,2023-03-12 18:45,1.85,Consum`, lines[2])
}

func TestCSVWriter_Delimiter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(';', nil)
	assert.Equal(t, ';', w.Delimiter())
	require.NoError(t, w.Marshal(&buf, sampleInvoice(t), nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "AGUA, MINERAL;1.00;"))
}

func TestCSVWriter_WriteFile(t *testing.T) {
	logger := logging.NewMockLogger()
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	require.NoError(t, NewCSVWriter(',', logger).WriteFile(path, sampleInvoice(t)))
	assert.True(t, logger.HasEntry("INFO", "Successfully wrote invoice rows to CSV file"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rows []models.ProductRow
	require.NoError(t, gocsv.UnmarshalBytes(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "AGUA, MINERAL", rows[1].Name)
	assert.Equal(t, "0.50", rows[1].UnitPrice)
	assert.Equal(t, "Consum", rows[0].Vendor)
}

func TestCSVWriter_WriteFile_Errors(t *testing.T) {
	assert.Error(t, NewCSVWriter(',', nil).WriteFile(filepath.Join(t.TempDir(), "out.csv")))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	err := NewCSVWriter(',', logging.NewDiscardLogger()).WriteFile(filepath.Join(blocker, "out.csv"), sampleInvoice(t))
	assert.Error(t, err)
}

func TestWriteInvoiceToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteInvoiceToCSV(sampleInvoice(t), path, ';', logging.NewDiscardLogger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "name;total_price;"))

	assert.Error(t, WriteInvoiceToCSV(nil, path, ',', nil))
}
