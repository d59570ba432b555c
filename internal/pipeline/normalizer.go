package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"stockfeed/importer/internal/domain"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// Normalizer maps raw feed rows onto the canonical Record schema.
type Normalizer struct {
	profile domain.SupplierProfile
	pricer  *Pricer
	caser   cases.Caser
}

func NewNormalizer(profile domain.SupplierProfile) *Normalizer {
	return &Normalizer{
		profile: profile,
		pricer:  NewPricer(profile.DiscountPercent),
		caser:   cases.Title(language.Und),
	}
}

// Normalize builds one Record from one RawRecord. It returns an error
// wrapping domain.ErrCoerce when a mandatory numeric field (ean, sale price,
// minimum order unit) does not parse; the caller drops such rows.
func (n *Normalizer) Normalize(raw domain.RawRecord) (domain.Record, error) {
	ean, err := parseEAN(raw.EanCode)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: sku %s: ean %q: %v", domain.ErrCoerce, raw.Artnr, raw.EanCode, err)
	}

	salePrice, err := parseCommaDecimal(raw.VerkoopPrijs)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: sku %s: sale price %q: %v", domain.ErrCoerce, raw.Artnr, raw.VerkoopPrijs, err)
	}

	minOrder, err := parseMinOrder(raw.BestEenh)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: sku %s: min order unit %q: %v", domain.ErrCoerce, raw.Artnr, raw.BestEenh, err)
	}

	discount := n.pricer.Discount(salePrice)

	return domain.Record{
		SKU:           raw.Artnr,
		EAN:           ean,
		ID:            firstNonEmpty(raw.ShortCde, raw.OrigNr),
		CompositeSKU:  n.profile.SKUPrefix + raw.Artnr,
		Brand:         n.caser.String(raw.Merk),
		CategoryPath:  categoryPath(raw.Categorie),
		Title:         raw.Omschrijving,
		Attributes:    cleanAttributes(raw.Eigenschap),
		SalePrice:     salePrice,
		AdvicePrice:   parseAdvicePrice(raw.AdviesPrijs),
		Stock:         parseStock(raw.Voorraad),
		MinOrderQty:   minOrder,
		Discount:      discount,
		PurchasePrice: n.pricer.Purchase(salePrice, discount),
		Weight:        raw.Gewicht,
		ImageRef:      raw.Afbeelding,
		ArticleURL:    "",
	}, nil
}

// cleanAttributes strips the feed's free-text noise in a fixed order: the
// bracket tag with its trailing space first, then without, then the <br>
// markup and &nbsp; entities, and finally every character outside printable
// ASCII. The tag-with-space pass must run before the bare-tag pass.
func cleanAttributes(s string) string {
	s = strings.ReplaceAll(s, "[vrij] ", "")
	s = strings.ReplaceAll(s, "[vrij]", "")
	s = strings.ReplaceAll(s, "<br>", "")
	s = strings.ReplaceAll(s, "&nbsp;", "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x20 && r <= 0x7e {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// categoryPath drops the last backslash segment and joins the rest with "::".
// A single-segment path collapses to the empty string.
func categoryPath(s string) string {
	parts := strings.Split(s, `\`)
	return strings.Join(parts[:len(parts)-1], "::")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseEAN(s string) (int64, error) {
	// Some feeds deliver the EAN with a decimal tail, so parse as float first.
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func parseMinOrder(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// parseStock extracts the digits from the stock field and treats anything
// without digits, including a missing value, as zero stock.
func parseStock(s string) int {
	digits := nonDigits.ReplaceAllString(s, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// parseAdvicePrice is lenient: the advice price feeds no filter, so a
// missing or malformed value becomes zero instead of dropping the row.
func parseAdvicePrice(s string) decimal.Decimal {
	d, err := parseCommaDecimal(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}
