package pipeline

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Pricer computes the discounted purchase price from the supplier's list
// sale price. Rounding is half-up (half away from zero) on two decimals.
type Pricer struct {
	percent decimal.Decimal
}

func NewPricer(discountPercent int) *Pricer {
	return &Pricer{percent: decimal.NewFromInt(int64(discountPercent))}
}

// Discount returns round2(percent * salePrice / 100).
func (p *Pricer) Discount(salePrice decimal.Decimal) decimal.Decimal {
	return p.percent.Mul(salePrice).Div(hundred).Round(2)
}

// Purchase returns round2(salePrice - discount).
func (p *Pricer) Purchase(salePrice, discount decimal.Decimal) decimal.Decimal {
	return salePrice.Sub(discount).Round(2)
}

// parseCommaDecimal converts the feed's comma decimal separator before
// parsing. The conversion must happen first or the parse rejects the value.
func parseCommaDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")))
}
