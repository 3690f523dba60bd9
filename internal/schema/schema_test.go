package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceqc/pkg/models"
)

func TestValidateInvoiceBatchRoundTrip(t *testing.T) {
	due := models.NewDate(2024, 2, 9)
	terms := "30 days"
	batch := []models.Invoice{{
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
		PaymentTerms:  &terms,
		LineItems:     []models.LineItem{{Description: "Widget", Quantity: 2, UnitPrice: 50, LineTotal: 100}},
	}}

	data, err := json.Marshal(batch)
	require.NoError(t, err)
	assert.NoError(t, ValidateInvoiceBatch(data))
}

func TestValidateInvoiceBatchRejectsBadShape(t *testing.T) {
	cases := map[string]string{
		"not an array":     `{"source_file": "x"}`,
		"missing required": `[{"source_file": "x"}]`,
		"bad date":         `[{"source_file":"x","invoice_number":"1","invoice_date":"10/01/2024","seller_name":"s","buyer_name":"b","currency":"INR","net_total":0,"tax_amount":0,"gross_total":0}]`,
		"string total":     `[{"source_file":"x","invoice_number":"1","invoice_date":"2024-01-10","seller_name":"s","buyer_name":"b","currency":"INR","net_total":"0","tax_amount":0,"gross_total":0}]`,
	}
	for name, raw := range cases {
		assert.Error(t, ValidateInvoiceBatch([]byte(raw)), name)
	}
}

func TestValidateInvoiceBatchRejectsMalformedJSON(t *testing.T) {
	assert.Error(t, ValidateInvoiceBatch([]byte(`[{"source_file": `)))
}

func TestValidateInvoiceBatchAllowsEmpty(t *testing.T) {
	assert.NoError(t, ValidateInvoiceBatch([]byte(`[]`)))
}
