package pipeline

import (
	"strings"

	"stockfeed/importer/internal/domain"
)

const (
	// maxStock caps the advertised stock to limit exposure on large positions.
	maxStock = 25
	// minEAN is the lowest EAN value accepted as a real barcode.
	minEAN = 10_000_000
	// bulkOrderThreshold excludes bulk-only articles outright.
	bulkOrderThreshold = 20
)

var excludedCategoryPrefixes = []string{"Auto", "Fiets", "::"}

// Eligible reports whether a record passes the business rules. Stock is
// judged before clamping: an over-cap stock is still eligible, zero is not.
func Eligible(r domain.Record) bool {
	if r.Stock <= 0 {
		return false
	}
	if r.EAN <= minEAN {
		return false
	}
	if r.MinOrderQty >= bulkOrderThreshold {
		return false
	}
	for _, prefix := range excludedCategoryPrefixes {
		if strings.HasPrefix(r.CategoryPath, prefix) {
			return false
		}
	}
	return true
}

// ClampQuantities applies the ordering-safety bounds after filtering:
// stock is capped at maxStock and a zero minimum order unit becomes one.
func ClampQuantities(r domain.Record) domain.Record {
	if r.Stock > maxStock {
		r.Stock = maxStock
	}
	if r.MinOrderQty == 0 {
		r.MinOrderQty = 1
	}
	return r
}
