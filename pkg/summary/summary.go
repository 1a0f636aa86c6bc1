package summary

import (
	"sort"
	"time"

	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/card"
	"github.com/moneta-app/moneta/pkg/transaction"
	"github.com/shopspring/decimal"
)

type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

type CardUsage struct {
	Name string
	card.Usage
}

type MonthlySummary struct {
	// YYYY-MM
	Month      string
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Balance    decimal.Decimal
	Categories []CategoryTotal
	Cards      []CardUsage
	// Transactions of the month, oldest first.
	Transactions []transaction.Transaction
}

// Summarize totals the transactions of month. Transactions dated in other months are ignored.
// Category totals cover expenses only and are sorted by amount descending, then by name.
func Summarize(month time.Time, transactions []transaction.Transaction) MonthlySummary {
	key := utils.MonthKey(month)
	s := MonthlySummary{
		Month:        key,
		Income:       decimal.Zero,
		Expense:      decimal.Zero,
		Categories:   make([]CategoryTotal, 0),
		Cards:        make([]CardUsage, 0),
		Transactions: make([]transaction.Transaction, 0, len(transactions)),
	}

	byCategory := map[string]decimal.Decimal{}
	for _, t := range transactions {
		if utils.MonthKey(t.Date.In(month.Location())) != key {
			continue
		}
		s.Transactions = append(s.Transactions, t)
		switch t.Type {
		case transaction.Income:
			s.Income = s.Income.Add(t.Amount)
		case transaction.Expense:
			s.Expense = s.Expense.Add(t.Amount)
			name := t.Category.String()
			byCategory[name] = byCategory[name].Add(t.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)

	for name, amount := range byCategory {
		s.Categories = append(s.Categories, CategoryTotal{Category: name, Amount: amount})
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		if cmp := s.Categories[i].Amount.Cmp(s.Categories[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return s.Categories[i].Category < s.Categories[j].Category
	})
	sort.SliceStable(s.Transactions, func(i, j int) bool {
		return s.Transactions[i].Date.Before(s.Transactions[j].Date)
	})
	return s
}
