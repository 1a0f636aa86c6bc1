package recurring

import (
	"errors"
	"fmt"
	"time"

	"github.com/moneta-app/moneta/pkg/transaction"
)

var ErrUnknownFrequency = errors.New("unknown frequency")

// Advance moves t forward by one period of f.
func (f Frequency) Advance(t time.Time) (time.Time, error) {
	switch f {
	case Weekly:
		return t.AddDate(0, 0, 7), nil
	case Monthly:
		return t.AddDate(0, 1, 0), nil
	case Yearly:
		return t.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, f)
	}
}

// IsDue reports whether the job should generate a transaction for e at now.
func (e RecurringExpense) IsDue(now time.Time) bool {
	return e.Active && !e.NextTriggerDate.After(now)
}

// RollForward materializes one expense dated now from e and returns e advanced by one period.
// The returned expense is deactivated when its next trigger date passes the end date.
func RollForward(e RecurringExpense, now time.Time) (RecurringExpense, transaction.Transaction, error) {
	next, err := e.Frequency.Advance(e.NextTriggerDate)
	if err != nil {
		return RecurringExpense{}, transaction.Transaction{}, err
	}

	recurringId := e.Id
	generated := transaction.Transaction{
		Description:        e.Description,
		Amount:             e.Amount,
		Date:               now,
		Type:               transaction.Expense,
		Category:           e.Category,
		Installments:       1,
		RecurringExpenseId: &recurringId,
	}

	e.NextTriggerDate = next
	if e.EndDate != nil && next.After(*e.EndDate) {
		e.Active = false
	}
	return e, generated, nil
}
