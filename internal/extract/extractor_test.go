package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceqc/pkg/models"
)

const sampleText = `ACME Traders Pvt Ltd
Invoice No: INV-2024-001
Invoice Date: 10/01/2024
Due Date: 09/02/2024
Seller: ACME Traders Pvt Ltd
GSTIN: 29ABCDE1234F1Z5
Buyer: Globex Corporation
Payment Terms: 30 days

Description        Qty   Price   Amount
Subtotal                         1,000.00
GST                                180.00
Grand Total INR                  1,180.00
`

func TestExtractSample(t *testing.T) {
	inv := NewDefault().Extract(sampleText, "acme.txt")

	assert.Equal(t, "acme.txt", inv.SourceFile)
	assert.Equal(t, "INV-2024-001", inv.InvoiceNumber)
	assert.Equal(t, "2024-01-10", inv.InvoiceDate.ISO())
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, "2024-02-09", inv.DueDate.ISO())
	assert.Equal(t, "ACME Traders Pvt Ltd", inv.SellerName)
	require.NotNil(t, inv.SellerTaxID)
	assert.Equal(t, "29ABCDE1234F1Z5", *inv.SellerTaxID)
	assert.Equal(t, "Globex Corporation", inv.BuyerName)
	assert.Nil(t, inv.BuyerTaxID)
	assert.Equal(t, "INR", inv.Currency)
	require.NotNil(t, inv.PaymentTerms)
	assert.Equal(t, "30 days", *inv.PaymentTerms)
	assert.Empty(t, inv.LineItems)

	assert.InDelta(t, 1000.00, inv.NetTotal, 1e-9)
	assert.InDelta(t, 180.00, inv.TaxAmount, 1e-9)
	assert.InDelta(t, 1180.00, inv.GrossTotal, 1e-9)
}

func TestExtractSentinels(t *testing.T) {
	inv := NewDefault().Extract("nothing recognizable in here", "blank.txt")

	assert.Equal(t, UnknownInvoiceNumber, inv.InvoiceNumber)
	assert.Equal(t, UnknownSeller, inv.SellerName)
	assert.Equal(t, UnknownBuyer, inv.BuyerName)
	assert.Equal(t, SentinelDate, inv.InvoiceDate)
	assert.Nil(t, inv.DueDate)
	assert.Nil(t, inv.SellerTaxID)
	assert.Nil(t, inv.PaymentTerms)
	assert.Equal(t, DefaultCurrency, inv.Currency)
	assert.Zero(t, inv.NetTotal)
	assert.Zero(t, inv.TaxAmount)
	assert.Zero(t, inv.GrossTotal)
}

func TestExtractFirstRuleWins(t *testing.T) {
	// "Invoice Date" must win over the generic "Date" rule even when the
	// generic label appears first in the text.
	text := "Date: 01/01/2020\nInvoice Date: 10/01/2024\n"
	inv := NewDefault().Extract(text, "dates.txt")
	assert.Equal(t, "2024-01-10", inv.InvoiceDate.ISO())
}

func TestExtractAlternateLabels(t *testing.T) {
	text := "Inv #: 42\nSupplier: Initech GmbH\nCustomer: Hooli Inc\n"
	inv := NewDefault().Extract(text, "alt.txt")
	assert.Equal(t, "42", inv.InvoiceNumber)
	assert.Equal(t, "Initech GmbH", inv.SellerName)
	assert.Equal(t, "Hooli Inc", inv.BuyerName)
}

func TestGuessCurrencyPriorityAndDefault(t *testing.T) {
	e := NewDefault()
	// Priority order, not text order: INR is checked before EUR.
	assert.Equal(t, "INR", e.guessCurrency("amounts in EUR and INR"))
	assert.Equal(t, "EUR", e.guessCurrency("Total EUR 100"))
	// Whole-word match only.
	assert.Equal(t, DefaultCurrency, e.guessCurrency("EURO zone invoice"))
	assert.Equal(t, DefaultCurrency, e.guessCurrency("no currency here"))
}

func TestExtractTotalsLastMatchWins(t *testing.T) {
	text := "Subtotal: 50.00\nSubtotal: 100.00\nTax: 18.00\nTotal: 90.00\nTotal: 118.00\n"
	net, tax, gross := extractTotals(text)
	assert.InDelta(t, 100.00, net, 1e-9)
	assert.InDelta(t, 18.00, tax, 1e-9)
	assert.InDelta(t, 118.00, gross, 1e-9)
}

func TestExtractTotalsGrossFallback(t *testing.T) {
	text := "Net Total: 100.00\nVAT: 19.00\n"
	net, tax, gross := extractTotals(text)
	assert.InDelta(t, 100.00, net, 1e-9)
	assert.InDelta(t, 19.00, tax, 1e-9)
	assert.InDelta(t, 119.00, gross, 1e-9)
}

func TestExtractTotalsUnparseableAmountKeepsDefault(t *testing.T) {
	net, tax, gross := extractTotals("Subtotal: TBD\nTax: n/a\n")
	assert.Zero(t, net)
	assert.Zero(t, tax)
	assert.Zero(t, gross)
}

func TestCustomCurrencyOptions(t *testing.T) {
	e := New(Options{CurrencyCodes: []string{"JPY", "USD"}})
	assert.Equal(t, "JPY", e.guessCurrency("Total JPY 5000"))
	inv := e.Extract("Total JPY 5000", "jp.txt")
	assert.Equal(t, "JPY", inv.Currency)
	assert.IsType(t, models.Invoice{}, inv)
}
