package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/receipt-csv/internal/assembler"
	"fjacquet/receipt-csv/internal/config"
	"fjacquet/receipt-csv/internal/extractor"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
)

const receipt = `MERCADONA, S.A. A-46103834
12/03/2023 18:45 OP: 123456
FACTURA SIMPLIFICADA: 2345-012-123456
1 Bread 1,20
TOTAL ... 1,20`

func TestNewContainer_NilConfig(t *testing.T) {
	c, err := NewContainer(nil)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "configuration cannot be nil")
}

func TestNewContainer_Defaults(t *testing.T) {
	cfg := config.Default()
	logger := logging.NewMockLogger()

	c, err := NewContainer(cfg, WithLogger(logger))
	require.NoError(t, err)

	assert.Same(t, cfg, c.GetConfig())
	assert.Equal(t, logger, c.GetLogger())
	assert.Equal(t, assembler.Lenient, c.GetAssembler().Policy())
	assert.Equal(t, "0.01", c.GetAssembler().Tolerance().String())
	assert.Equal(t, ',', c.GetCSVWriter().Delimiter())
	assert.Equal(t, 4, c.GetProcessor().Workers())
	assert.IsType(t, &extractor.FileExtractor{}, c.GetExtractor())
	assert.True(t, logger.HasEntry("DEBUG", "Container initialized successfully"))
}

func TestNewContainer_FromConfigValues(t *testing.T) {
	cfg := config.Default()
	cfg.Reconcile.Strict = true
	cfg.Reconcile.Tolerance = "0.10"
	cfg.CSV.Delimiter = ";"
	cfg.Batch.Workers = 2
	cfg.Ledger.AccountID = "acc"
	cfg.Ledger.CategoryID = "cat"

	c, err := NewContainer(cfg, WithLogger(logging.NewDiscardLogger()))
	require.NoError(t, err)

	assert.Equal(t, assembler.Strict, c.GetAssembler().Policy())
	assert.Equal(t, "0.1", c.GetAssembler().Tolerance().String())
	assert.Equal(t, ';', c.GetCSVWriter().Delimiter())
	assert.Equal(t, 2, c.GetProcessor().Workers())

	opts := c.LedgerOptions()
	assert.Equal(t, "acc", opts.AccountID)
	assert.Equal(t, "cat", opts.CategoryID)
	assert.Equal(t, int64(1000), opts.Scale)
}

func TestContainer_GetGrammar(t *testing.T) {
	c, err := NewContainer(config.Default(), WithLogger(logging.NewDiscardLogger()))
	require.NoError(t, err)

	for _, vendor := range models.Vendors() {
		t.Run(vendor.String(), func(t *testing.T) {
			g, err := c.GetGrammar(vendor)
			require.NoError(t, err)
			assert.Equal(t, vendor, g.Vendor())
		})
	}

	_, err = c.GetGrammar(models.VendorUnknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown vendor")
}

func TestContainer_ProcessorUsesInjectedExtractor(t *testing.T) {
	mock := extractor.NewMockExtractor(receipt, nil)
	c, err := NewContainer(config.Default(),
		WithLogger(logging.NewDiscardLogger()),
		WithExtractor(mock))
	require.NoError(t, err)

	results := c.GetProcessor().ProcessFiles(context.Background(), []string{"ticket.pdf"})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, models.VendorMercadona, results[0].Invoice.Vendor)
	assert.Equal(t, []string{"ticket.pdf"}, mock.Calls())
}
