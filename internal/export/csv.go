package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"stockfeed/importer/internal/domain"
)

// utf8BOM marks the price export as UTF-8 for the spreadsheet-based
// integration that consumes it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CatalogCSV renders the full catalog export.
func CatalogCSV(records []domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CatalogColumns); err != nil {
		return nil, fmt.Errorf("failed to write catalog header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(CatalogRow(r)); err != nil {
			return nil, fmt.Errorf("failed to write catalog row for sku %s: %w", r.SKU, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush catalog export: %w", err)
	}
	return buf.Bytes(), nil
}

// PriceCSV renders the price-only export, BOM first.
func PriceCSV(records []domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	if err := w.Write(PriceColumns); err != nil {
		return nil, fmt.Errorf("failed to write price header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(PriceRow(r)); err != nil {
			return nil, fmt.Errorf("failed to write price row for sku %s: %w", r.SKU, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush price export: %w", err)
	}
	return buf.Bytes(), nil
}

func formatEAN(ean int64) string {
	return strconv.FormatInt(ean, 10)
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}
