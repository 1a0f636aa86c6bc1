package card

import "github.com/shopspring/decimal"

type Kind string

const (
	Credit  Kind = "credit"
	Debit   Kind = "debit"
	Voucher Kind = "voucher"
)

func (k Kind) Valid() bool {
	return k == Credit || k == Debit || k == Voucher
}

type CreditCard struct {
	Id         int
	Name       string
	TotalLimit decimal.Decimal
	Color      string
	// Day of month the statement closes, 1..31. Used for calendar reminders only.
	ClosingDay int
	Kind       Kind
}
