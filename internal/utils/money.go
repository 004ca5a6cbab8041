// internal/utils/money.go
package utils

import "github.com/shopspring/decimal"

// Monetary arithmetic goes through decimal so repeated float math
// cannot drift totals away from the 2-decimal amounts stored on cart
// and order lines.

func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// ApplyPercentDiscount returns price * (1 - pct/100) rounded to 2
// decimals.
func ApplyPercentDiscount(price, pct float64) float64 {
	p := decimal.NewFromFloat(price)
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(pct).Div(decimal.NewFromInt(100)))
	f, _ := p.Mul(factor).Round(2).Float64()
	return f
}

// LineTotal returns unit * qty rounded to 2 decimals.
func LineTotal(unit float64, qty int) float64 {
	f, _ := decimal.NewFromFloat(unit).Mul(decimal.NewFromInt(int64(qty))).Round(2).Float64()
	return f
}
