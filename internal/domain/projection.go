package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRow is the database view of a Record: destination column names,
// supplier-prefixed key and the import timestamp of the run.
type ProductRow struct {
	OnzeSKU           string          `json:"onze_sku"`
	SKU               string          `json:"sku"`
	EAN               int64           `json:"ean"`
	ID                string          `json:"id"`
	Merk              string          `json:"merk"`
	Omschrijving      string          `json:"omschrijving"`
	Category          string          `json:"category"`
	Eigenschappen     string          `json:"eigenschappen"`
	Voorraad          int             `json:"voorraad"`
	InkoopPrijs       decimal.Decimal `json:"inkoop_prijs"`
	AdviesPrijs       decimal.Decimal `json:"advies_prijs"`
	VerpakingsEenheid int             `json:"verpakings_eenheid"`
	Gewicht           string          `json:"gewicht"`
	URLPlaatje        string          `json:"url_plaatje"`
	Korting           decimal.Decimal `json:"korting"`
	ImportDate        time.Time       `json:"import_date"`
}
