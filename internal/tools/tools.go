package tools

import (
	"github.com/shopspring/decimal"
)

// MaxAffordable returns how many whole shares the cash covers at the given
// price. Decimal division sidesteps float artifacts like 100/0.1 = 999.
func MaxAffordable(cash, price float64) int {
	if price <= 0 || cash <= 0 {
		return 0
	}
	q := decimal.NewFromFloat(cash).Div(decimal.NewFromFloat(price)).Floor()
	return int(q.IntPart())
}

// RoundMoney rounds to 2 decimal places, half away from zero.
func RoundMoney(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
