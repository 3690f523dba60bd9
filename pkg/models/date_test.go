package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceJSONShape(t *testing.T) {
	due := NewDate(2024, 2, 9)
	inv := Invoice{
		SourceFile:    "a.txt",
		InvoiceNumber: "A-1",
		InvoiceDate:   NewDate(2024, 1, 10),
		DueDate:       &due,
		SellerName:    "Alpha Ltd",
		BuyerName:     "Buyer Co",
		Currency:      "EUR",
		NetTotal:      10,
		GrossTotal:    10,
		LineItems:     []LineItem{},
	}

	data, err := json.Marshal(inv)
	require.NoError(t, err)

	assert.JSONEq(t, `{
	  "source_file": "a.txt",
	  "invoice_number": "A-1",
	  "invoice_date": "2024-01-10",
	  "due_date": "2024-02-09",
	  "seller_name": "Alpha Ltd",
	  "seller_tax_id": null,
	  "buyer_name": "Buyer Co",
	  "buyer_tax_id": null,
	  "currency": "EUR",
	  "net_total": 10,
	  "tax_amount": 0,
	  "gross_total": 10,
	  "payment_terms": null,
	  "line_items": []
	}`, string(data))
}

func TestDateNullDueDate(t *testing.T) {
	inv := Invoice{InvoiceDate: NewDate(2024, 1, 10)}
	data, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"due_date":null`)

	var back Invoice
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Nil(t, back.DueDate)
	assert.Equal(t, "2024-01-10", back.InvoiceDate.ISO())
}
