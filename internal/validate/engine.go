// Package validate checks extracted invoice records for completeness,
// arithmetic consistency and cross-record anomalies, and aggregates the
// outcome into a machine-readable quality report.
//
// Every check is total: a record that fails every rule still produces a
// complete, well-formed result entry. Error tags have the shape
// "<kind>: <detail>" with kind one of missing_field, invalid_currency,
// invalid_date, business_rule_failed and anomaly.
package validate

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"invoiceqc/pkg/models"
)

// Error tags emitted by the engine.
const (
	TagMissingInvoiceNumber  = "missing_field: invoice_number"
	TagMissingSellerName     = "missing_field: seller_name"
	TagMissingBuyerName      = "missing_field: buyer_name"
	TagInvoiceDateTooOld     = "invalid_date: invoice_date_too_old"
	TagDueBeforeInvoiceDate  = "business_rule_failed: due_date_before_invoice_date"
	TagTotalsMismatch        = "business_rule_failed: totals_mismatch_net_plus_tax_ne_gross"
	TagNegativeTotals        = "anomaly: negative_totals"
	TagLineItemsSumMismatch  = "business_rule_failed: line_items_sum_ne_net_total"
	TagDuplicateInvoice      = "anomaly: duplicate_invoice"
	invalidCurrencyTagFormat = "invalid_currency: %s"
)

// Config holds the tunable rule parameters. It is YAML-loadable so a rule set
// can be shipped next to the documents it applies to.
type Config struct {
	// Tolerance is the maximum allowed absolute discrepancy before an
	// arithmetic check fails. It absorbs float rounding in source
	// documents, not genuine mismatches.
	Tolerance float64 `yaml:"tolerance"`

	// AllowedCurrencies is the closed set of acceptable currency codes.
	AllowedCurrencies []string `yaml:"allowed_currencies"`

	// MinInvoiceYear is the oldest plausible invoice year.
	MinInvoiceYear int `yaml:"min_invoice_year"`
}

// DefaultConfig returns the built-in rule parameters.
func DefaultConfig() Config {
	return Config{
		Tolerance:         0.05,
		AllowedCurrencies: []string{"INR", "EUR", "USD", "GBP"},
		MinInvoiceYear:    2000,
	}
}

// LoadConfig reads a rule configuration from a YAML file. Fields absent from
// the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse rules file: %w", err)
	}
	return cfg, nil
}

// Engine applies per-record completeness and business-rule checks.
type Engine struct {
	cfg        Config
	currencies map[string]struct{}
}

// NewEngine creates an Engine for the given rule configuration.
func NewEngine(cfg Config) *Engine {
	currencies := make(map[string]struct{}, len(cfg.AllowedCurrencies))
	for _, code := range cfg.AllowedCurrencies {
		currencies[code] = struct{}{}
	}
	return &Engine{cfg: cfg, currencies: currencies}
}

// Check runs all per-record checks against one invoice and returns the error
// tags in fixed order: completeness checks first, then business rules. An
// empty slice means the record passed.
func (e *Engine) Check(inv models.Invoice) []string {
	errs := e.checkCompleteness(inv)
	errs = append(errs, e.checkBusinessRules(inv)...)
	return errs
}

func (e *Engine) checkCompleteness(inv models.Invoice) []string {
	var errs []string

	if isBlank(inv.InvoiceNumber) {
		errs = append(errs, TagMissingInvoiceNumber)
	}
	if isBlank(inv.SellerName) {
		errs = append(errs, TagMissingSellerName)
	}
	if isBlank(inv.BuyerName) {
		errs = append(errs, TagMissingBuyerName)
	}
	if _, ok := e.currencies[inv.Currency]; !ok {
		errs = append(errs, fmt.Sprintf(invalidCurrencyTagFormat, inv.Currency))
	}
	if inv.InvoiceDate.Year() < e.cfg.MinInvoiceYear {
		errs = append(errs, TagInvoiceDateTooOld)
	}
	if inv.DueDate != nil && inv.DueDate.Before(inv.InvoiceDate.Time) {
		errs = append(errs, TagDueBeforeInvoiceDate)
	}

	return errs
}

func (e *Engine) checkBusinessRules(inv models.Invoice) []string {
	var errs []string

	if math.Abs((inv.NetTotal+inv.TaxAmount)-inv.GrossTotal) > e.cfg.Tolerance {
		errs = append(errs, TagTotalsMismatch)
	}
	if inv.NetTotal < 0 || inv.TaxAmount < 0 || inv.GrossTotal < 0 {
		errs = append(errs, TagNegativeTotals)
	}
	if len(inv.LineItems) > 0 {
		var sum float64
		for _, li := range inv.LineItems {
			sum += li.LineTotal
		}
		if math.Abs(sum-inv.NetTotal) > e.cfg.Tolerance {
			errs = append(errs, TagLineItemsSumMismatch)
		}
	}

	return errs
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
