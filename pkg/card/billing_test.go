package card

import (
	"testing"
	"time"

	"github.com/moneta-app/moneta/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func cardExpense(cardId int, amount string, date time.Time) transaction.Transaction {
	return transaction.Transaction{
		Amount: decimal.RequireFromString(amount),
		Date:   date,
		Type:   transaction.Expense,
		CardId: intPtr(cardId),
	}
}

func TestCalculateUsage(t *testing.T) {
	cards := []CreditCard{
		{Id: 1, Name: "Gold", TotalLimit: decimal.RequireFromString("1000")},
		{Id: 2, Name: "Zero", TotalLimit: decimal.Zero},
	}
	old := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should sum lifetime expenses charged to the card", func(t *testing.T) {
		transactions := []transaction.Transaction{
			cardExpense(1, "200", old),
			cardExpense(1, "50.50", time.Now()),
			cardExpense(3, "999", time.Now()),
			{Amount: decimal.RequireFromString("70"), Type: transaction.Expense},
			{Amount: decimal.RequireFromString("300"), Type: transaction.Income, CardId: intPtr(1)},
		}

		usage, err := CalculateUsage(1, transactions, cards)

		require.NoError(t, err)
		assert.Equal(t, "250.5", usage.Spent.String())
		assert.Equal(t, "749.5", usage.Available.String())
		assert.Equal(t, "25.05", usage.Percent.String())
	})

	t.Run("should allow spend over the limit", func(t *testing.T) {
		transactions := []transaction.Transaction{
			cardExpense(1, "1500", time.Now()),
		}

		usage, err := CalculateUsage(1, transactions, cards)

		require.NoError(t, err)
		assert.Equal(t, "-500", usage.Available.String())
		assert.Equal(t, "150", usage.Percent.String())
	})

	t.Run("should report zero usage for a card without expenses", func(t *testing.T) {
		usage, err := CalculateUsage(1, nil, cards)

		require.NoError(t, err)
		assert.True(t, usage.Spent.IsZero())
		assert.True(t, usage.Available.Equal(decimal.RequireFromString("1000")))
		assert.True(t, usage.Percent.IsZero())
	})

	t.Run("should fail for unknown card", func(t *testing.T) {
		usage, err := CalculateUsage(42, []transaction.Transaction{cardExpense(42, "10", time.Now())}, cards)

		assert.ErrorIs(t, err, ErrCardNotFound)
		assert.Equal(t, Usage{}, usage)
	})

	t.Run("should fail for zero limit", func(t *testing.T) {
		_, err := CalculateUsage(2, []transaction.Transaction{cardExpense(2, "10", time.Now())}, cards)

		assert.ErrorIs(t, err, ErrInvalidLimit)
	})
}

func TestProjectMonthlyBills(t *testing.T) {
	cards := []CreditCard{
		{Id: 5, Name: "Blue", TotalLimit: decimal.NewFromInt(1000)},
		{Id: 3, Name: "Red", TotalLimit: decimal.NewFromInt(2000)},
	}
	now := time.Date(2024, 11, 20, 15, 0, 0, 0, time.UTC)

	t.Run("should bucket card expenses by their own month", func(t *testing.T) {
		transactions := []transaction.Transaction{
			cardExpense(5, "100", time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC)),
			cardExpense(5, "20", time.Date(2024, 11, 30, 23, 0, 0, 0, time.UTC)),
			cardExpense(3, "300", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
			cardExpense(3, "999", time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC)),
			cardExpense(3, "999", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
			cardExpense(8, "999", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)),
			{Amount: decimal.NewFromInt(999), Date: now, Type: transaction.Income, CardId: intPtr(5)},
			{Amount: decimal.NewFromInt(999), Date: now, Type: transaction.Expense},
		}

		bills := ProjectMonthlyBills(transactions, cards, now, 6)

		require.Len(t, bills, 6)
		months := make([]string, 0, len(bills))
		for _, b := range bills {
			months = append(months, b.Month)
			require.Len(t, b.Cards, 2)
			assert.Equal(t, 5, b.Cards[0].CardId)
			assert.Equal(t, 3, b.Cards[1].CardId)
		}
		assert.Equal(t, []string{"2024-11", "2024-12", "2025-01", "2025-02", "2025-03", "2025-04"}, months)

		assert.Equal(t, "120", bills[0].Cards[0].Amount.String())
		assert.Equal(t, "0", bills[0].Cards[1].Amount.String())
		assert.Equal(t, "120", bills[0].Total.String())
		assert.True(t, bills[1].Total.IsZero())
		assert.Equal(t, "300", bills[2].Cards[1].Amount.String())
		assert.Equal(t, "300", bills[2].Total.String())
		for _, b := range bills[3:] {
			assert.True(t, b.Total.IsZero())
		}
	})

	t.Run("should evaluate months in the location of now", func(t *testing.T) {
		saoPaulo := time.FixedZone("BRT", -3*60*60)
		localNow := time.Date(2024, 11, 20, 12, 0, 0, 0, saoPaulo)
		// 2024-12-01 01:00 UTC is still November in UTC-3
		transactions := []transaction.Transaction{
			cardExpense(5, "10", time.Date(2024, 12, 1, 1, 0, 0, 0, time.UTC)),
		}

		bills := ProjectMonthlyBills(transactions, cards, localNow, 2)

		assert.Equal(t, "10", bills[0].Total.String())
		assert.True(t, bills[1].Total.IsZero())
	})

	t.Run("should default to six months", func(t *testing.T) {
		bills := ProjectMonthlyBills(nil, cards, now, 0)

		assert.Len(t, bills, DefaultProjectionMonths)
	})

	t.Run("should produce empty card rows without cards", func(t *testing.T) {
		bills := ProjectMonthlyBills([]transaction.Transaction{cardExpense(5, "10", now)}, nil, now, 3)

		require.Len(t, bills, 3)
		for _, b := range bills {
			assert.Empty(t, b.Cards)
			assert.True(t, b.Total.IsZero())
		}
	})
}
