package utils

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places kept for amounts entered by users.
const MoneyScale = 2

// FitsMoneyScale reports whether d has at most MoneyScale significant decimal places.
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
