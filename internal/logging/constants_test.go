package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants(t *testing.T) {
	keys := []string{
		FieldFile, FieldVendor, FieldRule, FieldCategory, FieldField, FieldLine,
		FieldLastLine, FieldOffset, FieldReason, FieldCount, FieldInvoiceNumber, FieldDeclaredTotal,
		FieldComputedTotal, FieldFileType, FieldWorkers, FieldInputFile, FieldOutputFile,
	}

	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		assert.NotEmpty(t, k)
		assert.False(t, seen[k], "duplicate field key %q", k)
		seen[k] = true
	}
}
