// Package schema validates invoice batch JSON against a JSON-Schema before it
// enters the validation pipeline, so malformed files are rejected at the
// boundary with a precise message instead of surfacing as odd zero values.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildInvoiceBatchSchema returns a JSON-Schema (draft 2020-12 subset) for an
// array of invoice objects, as a generic map.
func BuildInvoiceBatchSchema() map[string]any {
	dateProp := map[string]any{
		"type":    "string",
		"pattern": `^\d{4}-\d{2}-\d{2}$`,
	}
	nullableDate := map[string]any{
		"oneOf": []any{dateProp, map[string]any{"type": "null"}},
	}
	nullableString := map[string]any{
		"type": []any{"string", "null"},
	}

	lineItem := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"description": map[string]any{"type": "string"},
			"quantity":    map[string]any{"type": "number"},
			"unit_price":  map[string]any{"type": "number"},
			"line_total":  map[string]any{"type": "number"},
		},
		"required": []any{"description", "quantity", "unit_price", "line_total"},
	}

	invoice := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"source_file":    map[string]any{"type": "string"},
			"invoice_number": map[string]any{"type": "string"},
			"invoice_date":   dateProp,
			"due_date":       nullableDate,
			"seller_name":    map[string]any{"type": "string"},
			"seller_tax_id":  nullableString,
			"buyer_name":     map[string]any{"type": "string"},
			"buyer_tax_id":   nullableString,
			"currency":       map[string]any{"type": "string"},
			"net_total":      map[string]any{"type": "number"},
			"tax_amount":     map[string]any{"type": "number"},
			"gross_total":    map[string]any{"type": "number"},
			"payment_terms":  nullableString,
			"line_items":     map[string]any{"type": "array", "items": lineItem},
		},
		"required": []any{
			"source_file", "invoice_number", "invoice_date",
			"seller_name", "buyer_name", "currency",
			"net_total", "tax_amount", "gross_total",
		},
	}

	return map[string]any{
		"type":  "array",
		"items": invoice,
	}
}

// ValidateInvoiceBatch validates raw JSON against the invoice batch schema.
func ValidateInvoiceBatch(data []byte) error {
	b, err := json.Marshal(BuildInvoiceBatchSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("invoices.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("invoices.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal batch: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("batch does not match invoice schema: %w", err)
	}
	return nil
}
