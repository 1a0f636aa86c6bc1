package google

import (
	"testing"
	"time"

	"github.com/moneta-app/moneta/pkg/card"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosingDate(t *testing.T) {
	tests := []struct {
		name       string
		month      time.Time
		closingDay int
		want       string
	}{
		{"regular day", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 10, "2024-03-10"},
		{"clamped to leap february", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 31, "2024-02-29"},
		{"clamped to february", time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), 30, "2025-02-28"},
		{"clamped to thirty day month", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 31, "2024-04-30"},
		{"zero treated as first day", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 0, "2024-04-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClosingDate(tt.month, tt.closingDay).Format(dateLayout))
		})
	}
}

func TestBillEvents(t *testing.T) {
	cards := []card.CreditCard{
		{Id: 1, Name: "Gold", ClosingDay: 31},
		{Id: 2, Name: "Blue", ClosingDay: 5},
	}

	t.Run("should create one all-day event per non-zero card bill", func(t *testing.T) {
		// given
		bills := []card.MonthlyBill{
			{Month: "2024-02", Cards: []card.CardBill{
				{CardId: 1, Name: "Gold", Amount: decimal.RequireFromString("120.5")},
				{CardId: 2, Name: "Blue", Amount: decimal.Zero},
			}},
			{Month: "2024-03", Cards: []card.CardBill{
				{CardId: 1, Name: "Gold", Amount: decimal.Zero},
				{CardId: 2, Name: "Blue", Amount: decimal.NewFromInt(40)},
			}},
		}

		// when
		events, err := BillEvents(bills, cards, "EUR")

		// then
		require.NoError(t, err)
		require.Len(t, events, 2)

		assert.Equal(t, "Gold bill", events[0].Summary)
		assert.Equal(t, "Projected bill for 2024-02: 120.50 EUR", events[0].Description)
		assert.Equal(t, "2024-02-29", events[0].Start.Date)
		assert.Equal(t, "2024-03-01", events[0].End.Date)

		assert.Equal(t, "Blue bill", events[1].Summary)
		assert.Equal(t, "2024-03-05", events[1].Start.Date)
		assert.Equal(t, "2024-03-06", events[1].End.Date)
	})

	t.Run("should skip bills of unknown cards", func(t *testing.T) {
		bills := []card.MonthlyBill{
			{Month: "2024-02", Cards: []card.CardBill{{CardId: 9, Name: "Gone", Amount: decimal.NewFromInt(5)}}},
		}

		events, err := BillEvents(bills, cards, "EUR")

		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("should reject malformed month", func(t *testing.T) {
		bills := []card.MonthlyBill{{Month: "02/2024"}}

		_, err := BillEvents(bills, cards, "EUR")

		assert.Error(t, err)
	})
}
