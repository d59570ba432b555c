package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfeed/importer/internal/domain"
)

func TestPipeline_Run(t *testing.T) {
	p := New(testProfile())

	row := validRaw()
	row.Voorraad = "30"
	row.BestEenh = "0"

	records, stats := p.Run([]domain.RawRecord{row})
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "9.00", r.PurchasePrice.StringFixed(2))
	assert.Equal(t, 25, r.Stock, "stock above cap is kept but clamped")
	assert.Equal(t, 1, r.MinOrderQty, "zero min order becomes one")

	assert.Equal(t, Stats{RowsIn: 1, RowsOut: 1}, stats)
}

func TestPipeline_Run_DropsZeroStock(t *testing.T) {
	p := New(testProfile())

	row := validRaw()
	row.Voorraad = "0"

	records, stats := p.Run([]domain.RawRecord{row})
	assert.Empty(t, records)
	assert.Equal(t, 1, stats.Filtered)
}

func TestPipeline_Run_FirstDuplicateWins(t *testing.T) {
	p := New(testProfile())

	first := validRaw()
	first.Merk = "eerste"
	second := validRaw()
	second.Merk = "tweede"

	records, stats := p.Run([]domain.RawRecord{first, second})
	require.Len(t, records, 1)
	assert.Equal(t, "Eerste", records[0].Brand)
	assert.Equal(t, 1, stats.Duplicates)
}

func TestPipeline_Run_SkipsUnparseableRows(t *testing.T) {
	p := New(testProfile())

	good := validRaw()
	bad := validRaw()
	bad.Artnr = "A2"
	bad.EanCode = "geen"

	records, stats := p.Run([]domain.RawRecord{good, bad})
	require.Len(t, records, 1)
	assert.Equal(t, "A1", records[0].SKU)
	assert.Equal(t, 1, stats.Skipped)
}

func TestPipeline_Run_ExcludesCategories(t *testing.T) {
	p := New(testProfile())

	car := validRaw()
	car.Artnr = "C1"
	car.Categorie = `Auto\Onderdelen\Banden`

	bike := validRaw()
	bike.Artnr = "F1"
	bike.Categorie = `Fietsen\Wielen`

	keep := validRaw()

	records, stats := p.Run([]domain.RawRecord{car, bike, keep})
	require.Len(t, records, 1)
	assert.Equal(t, "A1", records[0].SKU)
	assert.Equal(t, 2, stats.Filtered)
}

func TestPipeline_Run_InvariantsHold(t *testing.T) {
	p := New(testProfile())

	rows := []domain.RawRecord{}
	for _, raw := range []struct {
		sku, stock, best string
	}{
		{"A1", "30", "0"},
		{"A2", "1", "19"},
		{"A3", "0", "1"},   // filtered: no stock
		{"A4", "10", "20"}, // filtered: bulk-only
		{"A5", "5 stuks", "2"},
	} {
		row := validRaw()
		row.Artnr = raw.sku
		row.Voorraad = raw.stock
		row.BestEenh = raw.best
		rows = append(rows, row)
	}

	records, _ := p.Run(rows)
	require.Len(t, records, 3)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Stock, 1)
		assert.LessOrEqual(t, r.Stock, 25)
		assert.GreaterOrEqual(t, r.MinOrderQty, 1)
		assert.Less(t, r.MinOrderQty, 20)
		assert.Greater(t, r.EAN, int64(10_000_000))
	}
}
