package recurring

import (
	"time"

	"github.com/moneta-app/moneta/pkg/category"
	"github.com/shopspring/decimal"
)

type Frequency string

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	return f == Weekly || f == Monthly || f == Yearly
}

// RecurringExpense is a template the roll-forward job turns into expense transactions.
// Once inactive it is never picked up again.
type RecurringExpense struct {
	Id              int
	UserId          int
	Description     string
	Amount          decimal.Decimal
	Category        category.Category
	Frequency       Frequency
	NextTriggerDate time.Time
	EndDate         *time.Time
	Active          bool
}
