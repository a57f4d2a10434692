package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parsererror"
)

func TestFieldRule_Find(t *testing.T) {
	rule := NewFieldRule(FieldInvoiceTotal, `TOTAL[^\d]*(\d+[.,]\d{2})`)

	groups := rule.Find("MERCADONA\nTOTAL (€) 12,30")
	require.Len(t, groups, 2)
	assert.Equal(t, "12,30", groups[1])

	assert.Nil(t, rule.Find("no total here"))
}

func TestRequireMatch(t *testing.T) {
	rule := NewFieldRule(FieldPaymentDate, `(\d{2})/(\d{2})/(\d{4})`)

	groups, err := RequireMatch(models.VendorMercadona, rule, "12/03/2023 18:45")
	require.NoError(t, err)
	assert.Equal(t, []string{"12/03/2023", "12", "03", "2023"}, groups)

	_, err = RequireMatch(models.VendorMercadona, rule, "MERCADONA\nsin fecha")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsererror.ErrMissingField))

	var missing *parsererror.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Mercadona", missing.Vendor)
	assert.Equal(t, FieldPaymentDate, missing.Field)
	assert.Equal(t, "MERCADONA sin fecha", missing.Snippet)
}

func TestJoinIdentifiers(t *testing.T) {
	assert.Equal(t, "123|456", JoinIdentifiers("123", "456"))
	assert.Equal(t, "456", JoinIdentifiers("", "456"))
}
