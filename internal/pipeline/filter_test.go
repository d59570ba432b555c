package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockfeed/importer/internal/domain"
)

func eligibleRecord() domain.Record {
	return domain.Record{
		SKU:          "A1",
		EAN:          8712345678906,
		CategoryPath: "Gereedschap::Boren",
		Stock:        5,
		MinOrderQty:  1,
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Record)
		want   bool
	}{
		{"baseline", func(r *domain.Record) {}, true},
		{"zero stock", func(r *domain.Record) { r.Stock = 0 }, false},
		{"negative stock", func(r *domain.Record) { r.Stock = -1 }, false},
		{"stock above cap still eligible", func(r *domain.Record) { r.Stock = 30 }, true},
		{"ean at threshold", func(r *domain.Record) { r.EAN = 10_000_000 }, false},
		{"ean below threshold", func(r *domain.Record) { r.EAN = 999 }, false},
		{"ean above threshold", func(r *domain.Record) { r.EAN = 10_000_001 }, true},
		{"bulk-only min order", func(r *domain.Record) { r.MinOrderQty = 20 }, false},
		{"min order just under bulk", func(r *domain.Record) { r.MinOrderQty = 19 }, true},
		{"zero min order eligible", func(r *domain.Record) { r.MinOrderQty = 0 }, true},
		{"car category", func(r *domain.Record) { r.CategoryPath = "Auto::Onderdelen" }, false},
		{"bike category", func(r *domain.Record) { r.CategoryPath = "Fietsaccessoires" }, false},
		{"rootless category", func(r *domain.Record) { r.CategoryPath = "::Tuin" }, false},
		{"emptied category passes", func(r *domain.Record) { r.CategoryPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := eligibleRecord()
			tt.mutate(&r)
			assert.Equal(t, tt.want, Eligible(r))
		})
	}
}

func TestClampQuantities(t *testing.T) {
	r := eligibleRecord()
	r.Stock = 30
	r.MinOrderQty = 0

	clamped := ClampQuantities(r)
	assert.Equal(t, 25, clamped.Stock)
	assert.Equal(t, 1, clamped.MinOrderQty)

	r = eligibleRecord()
	r.Stock = 25
	r.MinOrderQty = 5

	clamped = ClampQuantities(r)
	assert.Equal(t, 25, clamped.Stock)
	assert.Equal(t, 5, clamped.MinOrderQty)
}
