package models

// ValidationResult is the per-invoice outcome of a validation run. Errors are
// ordered: completeness checks first, then business-rule checks, then the
// duplicate annotation if any.
type ValidationResult struct {
	InvoiceID  string   `json:"invoice_id"`
	SourceFile string   `json:"source_file"`
	IsValid    bool     `json:"is_valid"`
	Errors     []string `json:"errors"`
}

// Summary tallies validity and error-tag counts across one batch.
type Summary struct {
	TotalInvoices   int            `json:"total_invoices"`
	ValidInvoices   int            `json:"valid_invoices"`
	InvalidInvoices int            `json:"invalid_invoices"`
	ErrorCounts     map[string]int `json:"error_counts"`
}

// Report is the full quality-control report for one batch: the summary plus
// one result per invoice, in input order.
type Report struct {
	Summary Summary            `json:"summary"`
	Results []ValidationResult `json:"results"`
}
