package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moneta-app/moneta/pkg/category"
	"github.com/shopspring/decimal"
)

const (
	MinInstallments = 2
	MaxInstallments = 60
)

var (
	ErrInvalidInstallmentCount = errors.New("installment count must be between 2 and 60")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
)

// InstallmentPurchase is a single purchase paid in Count monthly parts.
type InstallmentPurchase struct {
	Description string
	Amount      decimal.Decimal
	StartDate   time.Time
	Count       int
	Category    category.Category
	CardId      *int
}

// ExpandInstallments splits p into Count expense transactions sharing groupId. Part i is dated
// i calendar months after the start date and carries Amount/Count; the rounding remainder is
// not redistributed.
func ExpandInstallments(p InstallmentPurchase, groupId uuid.UUID) ([]Transaction, error) {
	if p.Count < MinInstallments || p.Count > MaxInstallments {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidInstallmentCount, p.Count)
	}
	if !p.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	part := p.Amount.Div(decimal.NewFromInt(int64(p.Count)))
	transactions := make([]Transaction, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		group := groupId
		transactions = append(transactions, Transaction{
			Description:        fmt.Sprintf("%s (%d/%d)", p.Description, i+1, p.Count),
			Amount:             part,
			Date:               p.StartDate.AddDate(0, i, 0),
			Type:               Expense,
			Category:           p.Category,
			Installments:       p.Count,
			InstallmentGroupId: &group,
			CardId:             p.CardId,
		})
	}
	return transactions, nil
}
