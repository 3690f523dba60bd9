// Package extract recovers structured invoice records from raw document text
// using ordered, label-based pattern rules.
//
// Extraction is total: any text input, including text with no recognizable
// fields at all, yields a complete Invoice. Missing fields degrade to fixed
// sentinel values instead of failing the document; judging the content is the
// validation engine's job, not the extractor's.
package extract

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"invoiceqc/internal/logger"
	"invoiceqc/internal/parse"
	"invoiceqc/pkg/models"
)

// Sentinel values substituted when a field cannot be recovered from text.
const (
	UnknownInvoiceNumber = "UNKNOWN"
	UnknownSeller        = "UNKNOWN_SELLER"
	UnknownBuyer         = "UNKNOWN_BUYER"
	DefaultCurrency      = "INR"
)

// SentinelDate is substituted when the invoice date cannot be recovered.
var SentinelDate = models.NewDate(2000, 1, 1)

// FieldRule is one label-based pattern with the capture group holding the
// field value. Rules for a field are tried in order; the first match wins.
type FieldRule struct {
	Pattern *regexp.Regexp
	Group   int
}

// Options configures the extractor. Zero-value fields fall back to the
// defaults from DefaultOptions, so tests can override a single rule set
// without restating the rest.
type Options struct {
	InvoiceNumberRules []FieldRule
	InvoiceDateRules   []FieldRule
	DueDateRules       []FieldRule
	SellerRules        []FieldRule
	BuyerRules         []FieldRule
	TaxIDRule          *FieldRule
	PaymentTermsRule   *FieldRule

	// CurrencyCodes is scanned in priority order; the first code found as a
	// whole word anywhere in the text wins.
	CurrencyCodes []string
}

func rules(pairs ...FieldRule) []FieldRule { return pairs }

func rule(pattern string, group int) FieldRule {
	return FieldRule{Pattern: regexp.MustCompile(pattern), Group: group}
}

// DefaultOptions returns the built-in label patterns and currency priority.
func DefaultOptions() Options {
	return Options{
		InvoiceNumberRules: rules(
			rule(`(?i)invoice\s*(no\.?|number|#)\s*[:\-]\s*(\S+)`, 2),
			rule(`(?i)inv\s*#\s*[:\-]\s*(\S+)`, 1),
		),
		InvoiceDateRules: rules(
			rule(`(?i)invoice\s*date\s*[:\-]\s*([A-Za-z0-9/\-\. ]+)`, 1),
			rule(`(?i)date\s*[:\-]\s*([A-Za-z0-9/\-\. ]+)`, 1),
		),
		DueDateRules: rules(
			rule(`(?i)due\s*date\s*[:\-]\s*([A-Za-z0-9/\-\. ]+)`, 1),
		),
		SellerRules: rules(
			rule(`(?i)seller\s*[:\-]\s*(.+)`, 1),
			rule(`(?i)supplier\s*[:\-]\s*(.+)`, 1),
		),
		BuyerRules: rules(
			rule(`(?i)buyer\s*[:\-]\s*(.+)`, 1),
			rule(`(?i)customer\s*[:\-]\s*(.+)`, 1),
		),
		TaxIDRule:        &FieldRule{Pattern: regexp.MustCompile(`(?i)(GSTIN|VAT|Tax\s*ID)\s*[:\-]\s*([A-Za-z0-9\-]+)`), Group: 2},
		PaymentTermsRule: &FieldRule{Pattern: regexp.MustCompile(`(?i)payment\s*terms\s*[:\-]\s*(.+)`), Group: 1},
		CurrencyCodes:    []string{"INR", "EUR", "USD", "GBP"},
	}
}

// Extractor turns raw document text into Invoice records.
type Extractor struct {
	opts          Options
	currencyRules []*regexp.Regexp
	log           zerolog.Logger
}

// New creates an Extractor with the given options. Unset option fields take
// their defaults.
func New(opts Options) *Extractor {
	defaults := DefaultOptions()
	if opts.InvoiceNumberRules == nil {
		opts.InvoiceNumberRules = defaults.InvoiceNumberRules
	}
	if opts.InvoiceDateRules == nil {
		opts.InvoiceDateRules = defaults.InvoiceDateRules
	}
	if opts.DueDateRules == nil {
		opts.DueDateRules = defaults.DueDateRules
	}
	if opts.SellerRules == nil {
		opts.SellerRules = defaults.SellerRules
	}
	if opts.BuyerRules == nil {
		opts.BuyerRules = defaults.BuyerRules
	}
	if opts.TaxIDRule == nil {
		opts.TaxIDRule = defaults.TaxIDRule
	}
	if opts.PaymentTermsRule == nil {
		opts.PaymentTermsRule = defaults.PaymentTermsRule
	}
	if opts.CurrencyCodes == nil {
		opts.CurrencyCodes = defaults.CurrencyCodes
	}

	// Whole-word, case-sensitive currency detection.
	currencyRules := make([]*regexp.Regexp, len(opts.CurrencyCodes))
	for i, code := range opts.CurrencyCodes {
		currencyRules[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(code) + `\b`)
	}

	return &Extractor{
		opts:          opts,
		currencyRules: currencyRules,
		log:           logger.WithComponent("extractor"),
	}
}

// NewDefault creates an Extractor with the built-in rules.
func NewDefault() *Extractor {
	return New(Options{})
}

// searchFirst applies an ordered rule list against the whole text and returns
// the first match, trimmed. The ok flag is false when no rule matches.
func searchFirst(fieldRules []FieldRule, text string) (string, bool) {
	for _, r := range fieldRules {
		if m := r.Pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[r.Group]), true
		}
	}
	return "", false
}

// searchOptional applies a single optional rule, returning nil when the rule
// is absent or does not match.
func searchOptional(r *FieldRule, text string) *string {
	if r == nil {
		return nil
	}
	if m := r.Pattern.FindStringSubmatch(text); m != nil {
		v := strings.TrimSpace(m[r.Group])
		return &v
	}
	return nil
}

// guessCurrency scans for allowed currency codes as whole words, in priority
// order, defaulting to INR when none is present.
func (e *Extractor) guessCurrency(text string) string {
	for i, re := range e.currencyRules {
		if re.MatchString(text) {
			return e.opts.CurrencyCodes[i]
		}
	}
	return DefaultCurrency
}

// extractTotals scans the text line by line and classifies each line as the
// net/subtotal, tax or gross line. Later matching lines overwrite earlier
// ones, so the final line of each category determines the value. When gross
// is still zero but net or tax was found, gross falls back to net + tax so
// the arithmetic invariant stays satisfiable without all three numbers being
// textually present.
func extractTotals(text string) (net, tax, gross float64) {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "net") && strings.Contains(lower, "total") ||
			strings.Contains(lower, "subtotal"):
			if amt, ok := parse.Amount(line); ok {
				net = amt
			}
		case strings.Contains(lower, "tax") ||
			strings.Contains(lower, "vat") ||
			strings.Contains(lower, "gst"):
			if amt, ok := parse.Amount(line); ok {
				tax = amt
			}
		case strings.Contains(lower, "total") && !strings.Contains(lower, "net"):
			if amt, ok := parse.Amount(line); ok {
				gross = amt
			}
		}
	}

	if gross == 0 && (net > 0 || tax > 0) {
		gross = net + tax
	}
	return net, tax, gross
}

// Extract builds a best-effort Invoice from the full concatenated document
// text. It never fails: unrecovered fields are filled with sentinels and the
// record is left for the validation engine to judge.
func (e *Extractor) Extract(text, sourceFile string) models.Invoice {
	invoiceNumber, ok := searchFirst(e.opts.InvoiceNumberRules, text)
	if !ok {
		invoiceNumber = UnknownInvoiceNumber
	}

	invoiceDate := SentinelDate
	if raw, ok := searchFirst(e.opts.InvoiceDateRules, text); ok {
		if t, ok := parse.Date(raw); ok {
			invoiceDate = models.DateOf(t)
		}
	}

	var dueDate *models.Date
	if raw, ok := searchFirst(e.opts.DueDateRules, text); ok {
		if t, ok := parse.Date(raw); ok {
			d := models.DateOf(t)
			dueDate = &d
		}
	}

	sellerName, ok := searchFirst(e.opts.SellerRules, text)
	if !ok {
		sellerName = UnknownSeller
	}
	buyerName, ok := searchFirst(e.opts.BuyerRules, text)
	if !ok {
		buyerName = UnknownBuyer
	}

	// Buyer tax id is never populated by text scanning; the single labeled
	// pattern is attributed to the seller.
	sellerTaxID := searchOptional(e.opts.TaxIDRule, text)

	currency := e.guessCurrency(text)
	net, tax, gross := extractTotals(text)

	paymentTerms := searchOptional(e.opts.PaymentTermsRule, text)

	e.log.Debug().
		Str("source_file", sourceFile).
		Str("invoice_number", invoiceNumber).
		Str("currency", currency).
		Float64("gross_total", gross).
		Msg("Extracted invoice fields")

	return models.Invoice{
		SourceFile:    sourceFile,
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		SellerName:    sellerName,
		SellerTaxID:   sellerTaxID,
		BuyerName:     buyerName,
		BuyerTaxID:    nil,
		Currency:      currency,
		NetTotal:      net,
		TaxAmount:     tax,
		GrossTotal:    gross,
		PaymentTerms:  paymentTerms,
		// Line-item table detection is out of scope; items stay empty
		// unless supplied externally.
		LineItems: []models.LineItem{},
	}
}
