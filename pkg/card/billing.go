package card

import (
	"errors"
	"time"

	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/transaction"
	"github.com/shopspring/decimal"
)

const DefaultProjectionMonths = 6

var (
	ErrCardNotFound = errors.New("card not found")
	ErrInvalidLimit = errors.New("card limit must be greater than zero")
)

var hundred = decimal.NewFromInt(100)

// Usage is the lifetime utilization of a card.
type Usage struct {
	CardId    int
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Available decimal.Decimal
	// Spent as a percentage of Limit; not clamped to 100.
	Percent decimal.Decimal
}

// CalculateUsage sums every expense charged to cardId, regardless of date.
func CalculateUsage(cardId int, transactions []transaction.Transaction, cards []CreditCard) (Usage, error) {
	var card *CreditCard
	for i := range cards {
		if cards[i].Id == cardId {
			card = &cards[i]
			break
		}
	}
	if card == nil {
		return Usage{}, ErrCardNotFound
	}
	if !card.TotalLimit.IsPositive() {
		return Usage{}, ErrInvalidLimit
	}

	spent := decimal.Zero
	for _, t := range transactions {
		if t.Type == transaction.Expense && t.CardId != nil && *t.CardId == cardId {
			spent = spent.Add(t.Amount)
		}
	}

	return Usage{
		CardId:    cardId,
		Limit:     card.TotalLimit,
		Spent:     spent,
		Available: card.TotalLimit.Sub(spent),
		Percent:   spent.Div(card.TotalLimit).Mul(hundred),
	}, nil
}

type CardBill struct {
	CardId int
	Name   string
	Amount decimal.Decimal
}

// MonthlyBill is the projected card spend of one calendar month.
type MonthlyBill struct {
	// YYYY-MM
	Month string
	// One entry per card, in the order of the cards argument.
	Cards []CardBill
	Total decimal.Decimal
}

// ProjectMonthlyBills buckets card expenses by the calendar month of their own date, for the
// months months starting with the month of now. Months are evaluated in now's location.
// Transactions outside the window are dropped.
func ProjectMonthlyBills(transactions []transaction.Transaction, cards []CreditCard, now time.Time, months int) []MonthlyBill {
	if months <= 0 {
		months = DefaultProjectionMonths
	}

	start := utils.StartOfMonth(now)
	bills := make([]MonthlyBill, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		key := utils.MonthKey(start.AddDate(0, i, 0))
		index[key] = i
		bill := MonthlyBill{Month: key, Cards: make([]CardBill, len(cards)), Total: decimal.Zero}
		for c, card := range cards {
			bill.Cards[c] = CardBill{CardId: card.Id, Name: card.Name, Amount: decimal.Zero}
		}
		bills[i] = bill
	}

	cardPosition := make(map[int]int, len(cards))
	for i, card := range cards {
		cardPosition[card.Id] = i
	}

	for _, t := range transactions {
		if t.Type != transaction.Expense || t.CardId == nil {
			continue
		}
		pos, ok := cardPosition[*t.CardId]
		if !ok {
			continue
		}
		m, ok := index[utils.MonthKey(t.Date.In(now.Location()))]
		if !ok {
			continue
		}
		bills[m].Cards[pos].Amount = bills[m].Cards[pos].Amount.Add(t.Amount)
		bills[m].Total = bills[m].Total.Add(t.Amount)
	}

	return bills
}
