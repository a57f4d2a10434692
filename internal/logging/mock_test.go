package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareStore(t *testing.T) {
	root := NewMockLogger()
	child := root.WithField(FieldVendor, "Consum").WithError(errors.New("boom"))

	child.Warn("total mismatch", F(FieldDeclaredTotal, "3.00"))

	entries := root.GetEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.EqualError(t, entries[0].Error, "boom")

	vendor, ok := entries[0].FieldValue(FieldVendor)
	assert.True(t, ok)
	assert.Equal(t, "Consum", vendor)

	total, ok := entries[0].FieldValue(FieldDeclaredTotal)
	assert.True(t, ok)
	assert.Equal(t, "3.00", total)
}

func TestMockLogger_Queries(t *testing.T) {
	m := &MockLogger{}
	m.Debug("line dropped by unitary rule")
	m.Info("invoice assembled")
	m.Fatalf("cannot open %s", "ticket.pdf")

	assert.True(t, m.HasEntry("INFO", "invoice assembled"))
	assert.True(t, m.HasEntryContaining("DEBUG", "unitary"))
	assert.True(t, m.HasEntry("FATAL", "cannot open ticket.pdf"))
	assert.Len(t, m.GetEntriesByLevel("DEBUG"), 1)

	_, ok := m.GetEntries()[1].FieldValue("missing")
	assert.False(t, ok)

	m.Clear()
	assert.Empty(t, m.GetEntries())
}

func TestMockLogger_ConcurrentUse(t *testing.T) {
	m := NewMockLogger()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.WithField(FieldCount, i).Info("parsed")
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.GetEntries(), 20)
}
