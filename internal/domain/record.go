package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one row of the supplier feed, all fields as delivered.
// Field names follow the feed's own header set.
type RawRecord struct {
	Artnr        string `json:"artnr"`
	Merk         string `json:"merk"`
	Omschrijving string `json:"omschrijving"`
	EanCode      string `json:"ean_code"`
	VerkoopPrijs string `json:"verkoop_prijs"`
	Categorie    string `json:"categorie"`
	Voorraad     string `json:"voorraad"`
	Eigenschap   string `json:"eigenschap"`
	Gewicht      string `json:"gewicht"`
	Afbeelding   string `json:"afbeelding"`
	ShortCde     string `json:"short_cde"`
	OrigNr       string `json:"orig_nr"`
	AdviesPrijs  string `json:"advies_prijs"`
	BestEenh     string `json:"best_eenh"`
}

// Record is the canonical product entity. It is built once per feed row and
// not modified after the pipeline finishes.
type Record struct {
	SKU           string          `json:"sku"`
	EAN           int64           `json:"ean"`
	ID            string          `json:"id"`
	CompositeSKU  string          `json:"composite_sku"`
	Brand         string          `json:"brand"`
	CategoryPath  string          `json:"category_path"`
	Title         string          `json:"title"`
	Attributes    string          `json:"attributes"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	AdvicePrice   decimal.Decimal `json:"advice_price"`
	Stock         int             `json:"stock"`
	MinOrderQty   int             `json:"min_order_qty"`
	Discount      decimal.Decimal `json:"discount"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Weight        string          `json:"weight"`
	ImageRef      string          `json:"image_ref"`
	ArticleURL    string          `json:"article_url"`
}

// SupplierProfile parameterizes one pipeline run. The same transform serves
// every supplier; only identity, discount and destinations differ.
type SupplierProfile struct {
	Name            string
	SKUPrefix       string
	DiscountPercent int
	FeedFile        string
	ProductTable    string
	StorePath       string
}

// RunSummary is the per-run statistics row appended to the shared import log.
type RunSummary struct {
	Supplier   string          `json:"supplier"`
	ImportDate time.Time       `json:"import_date"`
	ItemCount  int             `json:"item_count"`
	TotalStock int             `json:"total_stock"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
