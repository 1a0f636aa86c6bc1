package summary

import (
	"testing"
	"time"

	"github.com/moneta-app/moneta/pkg/card"
	"github.com/moneta-app/moneta/pkg/category"
	"github.com/moneta-app/moneta/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func tx(description string, txType transaction.Type, c category.Predefined, amount string, day int) transaction.Transaction {
	return transaction.Transaction{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Date:        march.AddDate(0, 0, day-1).Add(12 * time.Hour),
		Type:        txType,
		Category:    category.FromPredefined(c),
	}
}

func sampleTransactions() []transaction.Transaction {
	return []transaction.Transaction{
		tx("Groceries", transaction.Expense, category.Food, "120.40", 12),
		tx("Salary", transaction.Income, category.Salary, "3000", 1),
		tx("Rent", transaction.Expense, category.Housing, "900", 2),
		tx("Restaurant", transaction.Expense, category.Food, "79.60", 20),
		tx("Bus", transaction.Expense, category.Transport, "200", 5),
	}
}

func TestSummarize(t *testing.T) {
	// given
	transactions := append(sampleTransactions(),
		tx("April rent", transaction.Expense, category.Housing, "900", 32))

	// when
	s := Summarize(march, transactions)

	// then
	assert.Equal(t, "2024-03", s.Month)
	assert.Equal(t, "3000", s.Income.String())
	assert.Equal(t, "1300", s.Expense.String())
	assert.Equal(t, "1700", s.Balance.String())
	require.Len(t, s.Categories, 3)
	assert.Equal(t, "housing", s.Categories[0].Category)
	assert.Equal(t, "food", s.Categories[1].Category)
	assert.Equal(t, "transport", s.Categories[2].Category)
	assert.Equal(t, "200", s.Categories[1].Amount.String())
	require.Len(t, s.Transactions, 5)
	assert.Equal(t, "Salary", s.Transactions[0].Description)
	assert.Equal(t, "Restaurant", s.Transactions[4].Description)
}

func TestSummarize_TiesSortedByName(t *testing.T) {
	s := Summarize(march, []transaction.Transaction{
		tx("b", transaction.Expense, category.Shopping, "10", 1),
		tx("a", transaction.Expense, category.Bills, "10", 1),
	})

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "bills", s.Categories[0].Category)
	assert.Equal(t, "shopping", s.Categories[1].Category)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(march, nil)

	assert.True(t, s.Balance.IsZero())
	assert.Empty(t, s.Categories)
	assert.NotNil(t, s.Cards)
}

func TestAnalysisText(t *testing.T) {
	s := Summarize(march, sampleTransactions())
	s.Cards = []CardUsage{{
		Name: "Gold",
		Usage: card.Usage{
			CardId:    1,
			Limit:     decimal.NewFromInt(1000),
			Spent:     decimal.RequireFromString("250"),
			Available: decimal.NewFromInt(750),
			Percent:   decimal.NewFromInt(25),
		},
	}}

	text := AnalysisText(s, "EUR")

	expected := "Month: 2024-03\n" +
		"Income: 3000.00 EUR\n" +
		"Expenses: 1300.00 EUR\n" +
		"Balance: 1700.00 EUR\n" +
		"Savings rate: 56.67%\n" +
		"Transactions: 5\n" +
		"Top expense categories:\n" +
		"- housing: 900.00 (69.23%)\n" +
		"- food: 200.00 (15.38%)\n" +
		"- transport: 200.00 (15.38%)\n" +
		"Card usage:\n" +
		"- Gold: 250.00 of 1000.00 used (25.00%)\n"
	assert.Equal(t, expected, text)
	assert.Equal(t, text, AnalysisText(s, "EUR"))
}

func TestAnalysisText_NoIncome(t *testing.T) {
	text := AnalysisText(Summarize(march, nil), "USD")

	assert.NotContains(t, text, "Savings rate")
	assert.NotContains(t, text, "Top expense categories")
	assert.Contains(t, text, "Balance: 0.00 USD")
}
