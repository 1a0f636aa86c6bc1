package goal

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinancialGoal struct {
	Id            int
	Title         string
	Icon          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
}

var hundred = decimal.NewFromInt(100)

// Progress is the saved share of the target in percent, capped at 100.
func (g FinancialGoal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

func (g FinancialGoal) Reached() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Remaining returns what is left to save, never negative.
func (g FinancialGoal) Remaining() decimal.Decimal {
	r := g.TargetAmount.Sub(g.CurrentAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
