// Package models holds the data structures shared by the extractor, the
// validation engine, the CLI and the HTTP API.
package models

// LineItem represents one billed line in the invoice table.
// It has no identity beyond its position in the parent invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Invoice is the core invoice record used across the extractor, the validator,
// the CLI and the API. It is a plain value object: the extractor builds it once
// and nothing mutates it afterwards. Cross-field consistency (gross = net + tax,
// non-negative totals, due date ordering) is deliberately NOT enforced here;
// those checks belong to the validation engine.
type Invoice struct {
	// SourceFile is the document this invoice was extracted from.
	SourceFile string `json:"source_file"`

	// InvoiceNumber is the invoice identifier, or "UNKNOWN" when it could
	// not be recovered from the text.
	InvoiceNumber string `json:"invoice_number"`

	// InvoiceDate is the issue date. Unrecoverable dates fall back to a
	// fixed sentinel date in the past.
	InvoiceDate Date `json:"invoice_date"`

	// DueDate is the payment due date, nil when absent.
	DueDate *Date `json:"due_date"`

	SellerName  string  `json:"seller_name"`
	SellerTaxID *string `json:"seller_tax_id"`

	BuyerName  string  `json:"buyer_name"`
	BuyerTaxID *string `json:"buyer_tax_id"`

	// Currency is the 3-letter currency code, e.g. INR, EUR, USD.
	Currency string `json:"currency"`

	NetTotal   float64 `json:"net_total"`
	TaxAmount  float64 `json:"tax_amount"`
	GrossTotal float64 `json:"gross_total"`

	// PaymentTerms is free text such as "30 days" or "50% advance".
	PaymentTerms *string `json:"payment_terms"`

	LineItems []LineItem `json:"line_items"`
}
