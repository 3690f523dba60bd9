package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceqc/pkg/models"
)

func sampleReport() models.Report {
	return models.Report{
		Summary: models.Summary{
			TotalInvoices:   2,
			ValidInvoices:   1,
			InvalidInvoices: 1,
			ErrorCounts:     map[string]int{"invalid_currency: XXX": 1},
		},
		Results: []models.ValidationResult{
			{InvoiceID: "INV-1", SourceFile: "a.txt", IsValid: true, Errors: []string{}},
			{InvoiceID: "INV-2", SourceFile: "b.txt", IsValid: false, Errors: []string{"invalid_currency: XXX"}},
		},
	}
}

func TestRunStoreSaveAndGet(t *testing.T) {
	db, err := InitDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	s := NewRunStore(db)
	id, err := s.SaveRun(sampleReport())
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.GetRun(id)
	require.NoError(t, err)
	assert.Equal(t, sampleReport(), got)
}

func TestRunStoreListNewestFirst(t *testing.T) {
	db, err := InitDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	s := NewRunStore(db)
	first, err := s.SaveRun(sampleReport())
	require.NoError(t, err)
	second, err := s.SaveRun(sampleReport())
	require.NoError(t, err)

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, 2, runs[0].TotalInvoices)
	assert.Equal(t, 1, runs[0].InvalidInvoices)
}

func TestRunStoreGetMissing(t *testing.T) {
	db, err := InitDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = NewRunStore(db).GetRun(12345)
	assert.Error(t, err)
}
