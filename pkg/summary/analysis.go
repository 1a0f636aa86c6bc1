package summary

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const maxAnalysisCategories = 5

var hundred = decimal.NewFromInt(100)

// AnalysisText renders s as plain text for the advisor prompt. The output only depends on s
// and currency.
func AnalysisText(s MonthlySummary, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Month: %s\n", s.Month)
	fmt.Fprintf(&b, "Income: %s %s\n", s.Income.StringFixed(2), currency)
	fmt.Fprintf(&b, "Expenses: %s %s\n", s.Expense.StringFixed(2), currency)
	fmt.Fprintf(&b, "Balance: %s %s\n", s.Balance.StringFixed(2), currency)
	if s.Income.IsPositive() {
		rate := s.Balance.Div(s.Income).Mul(hundred)
		fmt.Fprintf(&b, "Savings rate: %s%%\n", rate.StringFixed(2))
	}
	fmt.Fprintf(&b, "Transactions: %d\n", len(s.Transactions))

	if len(s.Categories) > 0 {
		b.WriteString("Top expense categories:\n")
		for i, c := range s.Categories {
			if i == maxAnalysisCategories {
				fmt.Fprintf(&b, "- %d more categories\n", len(s.Categories)-maxAnalysisCategories)
				break
			}
			share := decimal.Zero
			if s.Expense.IsPositive() {
				share = c.Amount.Div(s.Expense).Mul(hundred)
			}
			fmt.Fprintf(&b, "- %s: %s (%s%%)\n", c.Category, c.Amount.StringFixed(2), share.StringFixed(2))
		}
	}

	if len(s.Cards) > 0 {
		b.WriteString("Card usage:\n")
		for _, c := range s.Cards {
			fmt.Fprintf(&b, "- %s: %s of %s used (%s%%)\n",
				c.Name, c.Spent.StringFixed(2), c.Limit.StringFixed(2), c.Percent.StringFixed(2))
		}
	}
	return b.String()
}
