package export

import (
	"time"

	"stockfeed/importer/internal/domain"
)

// The three output views are pure projections of the final record set; no
// transform logic lives here.

// CatalogColumns is the fixed column order of the full catalog export. The
// labels are what the downstream archive consumers expect.
var CatalogColumns = []string{
	"sku",
	"ean",
	"id",
	"stock",
	"price",
	"price_advice",
	"info",
	"brand",
	"group",
	"eigenschappen",
	"BestEenh",
	"gewicht",
	"Afbeelding",
	"lk",
}

// PriceColumns is the two-column pricing-integration export. The price
// column carries the external label the integration matches on.
var PriceColumns = []string{"sku", "Inkoopprijs exclusief"}

// CatalogRow projects one record into catalog export column order. The
// price column holds the discounted purchase price.
func CatalogRow(r domain.Record) []string {
	return []string{
		r.SKU,
		formatEAN(r.EAN),
		r.ID,
		formatInt(r.Stock),
		r.PurchasePrice.StringFixed(2),
		r.AdvicePrice.StringFixed(2),
		r.Title,
		r.Brand,
		r.CategoryPath,
		r.Attributes,
		formatInt(r.MinOrderQty),
		r.Weight,
		r.ImageRef,
		r.Discount.StringFixed(2),
	}
}

// PriceRow projects one record into the price-only export.
func PriceRow(r domain.Record) []string {
	return []string{r.SKU, r.PurchasePrice.StringFixed(2)}
}

// ProductRows projects the record set into database rows, stamping every row
// with the wall-clock import time of this run.
func ProductRows(records []domain.Record, importDate time.Time) []domain.ProductRow {
	rows := make([]domain.ProductRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, domain.ProductRow{
			OnzeSKU:           r.CompositeSKU,
			SKU:               r.SKU,
			EAN:               r.EAN,
			ID:                r.ID,
			Merk:              r.Brand,
			Omschrijving:      r.Title,
			Category:          r.CategoryPath,
			Eigenschappen:     r.Attributes,
			Voorraad:          r.Stock,
			InkoopPrijs:       r.PurchasePrice,
			AdviesPrijs:       r.AdvicePrice,
			VerpakingsEenheid: r.MinOrderQty,
			Gewicht:           r.Weight,
			URLPlaatje:        r.ImageRef,
			Korting:           r.Discount,
			ImportDate:        importDate,
		})
	}
	return rows
}
