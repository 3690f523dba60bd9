package validate

import (
	"invoiceqc/internal/logger"
	"invoiceqc/pkg/models"
)

// Validate is the sole externally consumed entrypoint of the core. It runs
// the per-record checks over every invoice in input order, then duplicate
// detection over the whole batch, and merges both into one result per record.
//
// The two phases are strictly ordered: per-record checks complete for all
// records before duplicate detection begins. Duplicate tags are merged as a
// pure concatenation per record rather than mutating shared result state, so
// the outcome depends only on the input batch.
func (e *Engine) Validate(invoices []models.Invoice) models.Report {
	log := logger.WithComponent("validator")

	perRecord := make([][]string, len(invoices))
	for i, inv := range invoices {
		perRecord[i] = e.Check(inv)
	}

	duplicates := FindDuplicates(invoices)
	duplicateErrs := make([][]string, len(invoices))
	for _, key := range duplicateKeysInOrder(invoices, duplicates) {
		for _, idx := range duplicates[key] {
			duplicateErrs[idx] = append(duplicateErrs[idx], TagDuplicateInvoice)
		}
	}

	results := make([]models.ValidationResult, len(invoices))
	errorCounts := make(map[string]int)
	valid := 0
	for i, inv := range invoices {
		errs := make([]string, 0, len(perRecord[i])+len(duplicateErrs[i]))
		errs = append(errs, perRecord[i]...)
		errs = append(errs, duplicateErrs[i]...)

		for _, tag := range errs {
			errorCounts[tag]++
		}
		if len(errs) == 0 {
			valid++
		}

		results[i] = models.ValidationResult{
			InvoiceID:  inv.InvoiceNumber,
			SourceFile: inv.SourceFile,
			IsValid:    len(errs) == 0,
			Errors:     errs,
		}
	}

	summary := models.Summary{
		TotalInvoices:   len(invoices),
		ValidInvoices:   valid,
		InvalidInvoices: len(invoices) - valid,
		ErrorCounts:     errorCounts,
	}

	log.Info().
		Int("total", summary.TotalInvoices).
		Int("valid", summary.ValidInvoices).
		Int("invalid", summary.InvalidInvoices).
		Int("duplicate_groups", len(duplicates)).
		Msg("Batch validation completed")

	return models.Report{Summary: summary, Results: results}
}
