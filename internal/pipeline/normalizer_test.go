package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfeed/importer/internal/domain"
)

func testProfile() domain.SupplierProfile {
	return domain.SupplierProfile{
		Name:            "pieterman",
		SKUPrefix:       "pieterman",
		DiscountPercent: 10,
	}
}

func validRaw() domain.RawRecord {
	return domain.RawRecord{
		Artnr:        "A1",
		Merk:         "bosch",
		Omschrijving: "Boormachine",
		EanCode:      "8712345678906",
		VerkoopPrijs: "10,00",
		Categorie:    `Gereedschap\Boren\Accu`,
		Voorraad:     "30",
		Eigenschap:   "[vrij] Rood",
		Gewicht:      "1.2",
		Afbeelding:   "img/a1.jpg",
		ShortCde:     "SC1",
		OrigNr:       "ON1",
		AdviesPrijs:  "12,50",
		BestEenh:     "1",
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(testProfile())

	r, err := n.Normalize(validRaw())
	require.NoError(t, err)

	assert.Equal(t, "A1", r.SKU)
	assert.Equal(t, int64(8712345678906), r.EAN)
	assert.Equal(t, "SC1", r.ID)
	assert.Equal(t, "pietermanA1", r.CompositeSKU)
	assert.Equal(t, "Bosch", r.Brand)
	assert.Equal(t, "Gereedschap::Boren", r.CategoryPath)
	assert.Equal(t, "Boormachine", r.Title)
	assert.Equal(t, "Rood", r.Attributes)
	assert.Equal(t, "10.00", r.SalePrice.StringFixed(2))
	assert.Equal(t, "12.50", r.AdvicePrice.StringFixed(2))
	assert.Equal(t, 30, r.Stock)
	assert.Equal(t, 1, r.MinOrderQty)
	assert.Equal(t, "1.00", r.Discount.StringFixed(2))
	assert.Equal(t, "9.00", r.PurchasePrice.StringFixed(2))
	assert.Equal(t, "1.2", r.Weight)
	assert.Equal(t, "img/a1.jpg", r.ImageRef)
	assert.Empty(t, r.ArticleURL)
}

func TestNormalize_IDFallsBackToOrigNr(t *testing.T) {
	n := NewNormalizer(testProfile())

	raw := validRaw()
	raw.ShortCde = ""
	r, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "ON1", r.ID)

	raw.ShortCde = "  "
	r, err = n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "ON1", r.ID)
}

func TestNormalize_CoercionErrors(t *testing.T) {
	n := NewNormalizer(testProfile())

	tests := []struct {
		name   string
		mutate func(*domain.RawRecord)
	}{
		{"unparseable ean", func(r *domain.RawRecord) { r.EanCode = "none" }},
		{"empty ean", func(r *domain.RawRecord) { r.EanCode = "" }},
		{"unparseable sale price", func(r *domain.RawRecord) { r.VerkoopPrijs = "n/a" }},
		{"unparseable min order", func(r *domain.RawRecord) { r.BestEenh = "doos" }},
		{"missing min order", func(r *domain.RawRecord) { r.BestEenh = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			_, err := n.Normalize(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCoerce)
		})
	}
}

func TestCleanAttributes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tag with trailing space", "[vrij] Roodé", "Rood"},
		{"tag without trailing space", "[vrij]Rood", "Rood"},
		{"tag with space before bare tag", "[vrij] [vrij]A", "A"},
		{"markup and entity", "Rood<br>Blauw&nbsp;Groen", "RoodBlauwGroen"},
		{"non-ascii dropped not replaced", "Grootte: 10×20 cm²", "Grootte: 1020 cm"},
		{"plain text untouched", "Lengte 30 cm", "Lengte 30 cm"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanAttributes(tt.in))
		})
	}
}

func TestCategoryPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`Gereedschap\Boren\Accu`, "Gereedschap::Boren"},
		{`Tuin\Gras`, "Tuin"},
		{`Tuin`, ""},
		{`\Tuin\Gras`, "::Tuin"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, categoryPath(tt.in), "input %q", tt.in)
	}
}

func TestParseStock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"30", 30},
		{"30 stuks", 30},
		{">100", 100},
		{"op aanvraag", 0},
		{"", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseStock(tt.in), "input %q", tt.in)
	}
}

func TestNormalize_BrandTitleCased(t *testing.T) {
	n := NewNormalizer(testProfile())

	tests := []struct {
		in   string
		want string
	}{
		{"bosch", "Bosch"},
		{"BOSCH", "Bosch"},
		{"harley davidson", "Harley Davidson"},
	}

	for _, tt := range tests {
		raw := validRaw()
		raw.Merk = tt.in
		r, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, r.Brand)
	}
}

func TestNormalize_AdvicePriceLenient(t *testing.T) {
	n := NewNormalizer(testProfile())

	raw := validRaw()
	raw.AdviesPrijs = ""
	r, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "0.00", r.AdvicePrice.StringFixed(2))

	raw.AdviesPrijs = "19,995"
	r, err = n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "20.00", r.AdvicePrice.StringFixed(2))
}
