package validate

import "invoiceqc/pkg/models"

// duplicateKey is the composite identity used to group invoices suspected of
// being the same billing event. It is compared for exact equality: no case
// folding, no normalization.
func duplicateKey(inv models.Invoice) string {
	return inv.InvoiceNumber + "::" + inv.SellerName + "::" + inv.InvoiceDate.ISO()
}

// FindDuplicates scans the batch for invoices sharing a duplicate key and
// returns every key held by two or more positions, mapped to those positions
// in input order. Iterating the result via duplicateKeysInOrder is
// deterministic for a given input order.
func FindDuplicates(invoices []models.Invoice) map[string][]int {
	keyToIndices := make(map[string][]int)
	for idx, inv := range invoices {
		key := duplicateKey(inv)
		keyToIndices[key] = append(keyToIndices[key], idx)
	}

	duplicates := make(map[string][]int)
	for key, indices := range keyToIndices {
		if len(indices) > 1 {
			duplicates[key] = indices
		}
	}
	return duplicates
}

// duplicateKeysInOrder returns the duplicate keys ordered by first discovery
// position, so annotation order is stable across runs.
func duplicateKeysInOrder(invoices []models.Invoice, duplicates map[string][]int) []string {
	keys := make([]string, 0, len(duplicates))
	seen := make(map[string]struct{}, len(duplicates))
	for _, inv := range invoices {
		key := duplicateKey(inv)
		if _, isDup := duplicates[key]; !isDup {
			continue
		}
		if _, done := seen[key]; done {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
