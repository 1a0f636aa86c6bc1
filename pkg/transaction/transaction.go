package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/moneta-app/moneta/pkg/category"
	"github.com/shopspring/decimal"
)

type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

type Transaction struct {
	Id          int
	Description string
	// Always positive; Type decides the direction.
	Amount   decimal.Decimal
	Date     time.Time
	Type     Type
	Category category.Category
	// 1 for a plain transaction, N for each part of an installment purchase.
	Installments       int
	InstallmentGroupId *uuid.UUID
	CardId             *int
	RecurringExpenseId *int
	Created            time.Time
}

// Filter narrows List results. Zero fields do not filter.
type Filter struct {
	// Any instant inside the requested month; the month is taken in Month's location.
	Month  *time.Time
	Type   Type
	CardId *int
}

type DeleteScope string

const (
	// DeleteFollowing removes the transaction and, for installments, all later parts of the same purchase.
	DeleteFollowing DeleteScope = "following"
	DeleteSingle    DeleteScope = "single"
)
