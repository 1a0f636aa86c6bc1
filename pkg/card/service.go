package card

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/transaction"
	"github.com/moneta-app/moneta/pkg/user"
)

const MaxProjectionMonths = 24

var (
	ErrInvalidCard    = errors.New("invalid card")
	ErrInvalidHorizon = errors.New("months must be between 1 and 24")
)

type TransactionReader interface {
	List(ctx context.Context, filter transaction.Filter) ([]transaction.Transaction, error)
}

type Service interface {
	List(ctx context.Context) ([]CreditCard, error)
	Get(ctx context.Context, id int) (CreditCard, error)
	Create(ctx context.Context, card CreditCard) (CreditCard, error)
	Update(ctx context.Context, card CreditCard) (CreditCard, error)
	// Delete leaves transactions charged to the card untouched.
	Delete(ctx context.Context, id int) error
	Usage(ctx context.Context, cardId int) (Usage, error)
	// Usages returns the usage of every card of the current user, in card order.
	Usages(ctx context.Context) ([]Usage, error)
	ProjectBills(ctx context.Context, months int) ([]MonthlyBill, error)
}

type ServiceImpl struct {
	repo         Repository
	transactions TransactionReader
	clock        utils.Clock
}

func NewService(repo Repository, transactions TransactionReader, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, transactions: transactions, clock: clock}
}

func (s *ServiceImpl) List(ctx context.Context) ([]CreditCard, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (CreditCard, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return CreditCard{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, card CreditCard) (CreditCard, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return CreditCard{}, fmt.Errorf("failed to get current user: %w", err)
	}
	card, err = normalize(card)
	if err != nil {
		return CreditCard{}, err
	}
	return s.repo.Create(ctx, userId, card)
}

func (s *ServiceImpl) Update(ctx context.Context, card CreditCard) (CreditCard, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return CreditCard{}, fmt.Errorf("failed to get current user: %w", err)
	}
	card, err = normalize(card)
	if err != nil {
		return CreditCard{}, err
	}
	return s.repo.Update(ctx, userId, card)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}

func (s *ServiceImpl) Usage(ctx context.Context, cardId int) (Usage, error) {
	cards, transactions, err := s.load(ctx, transaction.Filter{Type: transaction.Expense, CardId: &cardId})
	if err != nil {
		return Usage{}, err
	}
	return CalculateUsage(cardId, transactions, cards)
}

func (s *ServiceImpl) Usages(ctx context.Context) ([]Usage, error) {
	cards, transactions, err := s.load(ctx, transaction.Filter{Type: transaction.Expense})
	if err != nil {
		return nil, err
	}
	usages := make([]Usage, 0, len(cards))
	for _, c := range cards {
		u, err := CalculateUsage(c.Id, transactions, cards)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", c.Id, err)
		}
		usages = append(usages, u)
	}
	return usages, nil
}

func (s *ServiceImpl) ProjectBills(ctx context.Context, months int) ([]MonthlyBill, error) {
	if months < 1 || months > MaxProjectionMonths {
		return nil, ErrInvalidHorizon
	}
	cards, transactions, err := s.load(ctx, transaction.Filter{Type: transaction.Expense})
	if err != nil {
		return nil, err
	}
	return ProjectMonthlyBills(transactions, cards, s.clock.Now(), months), nil
}

func (s *ServiceImpl) load(ctx context.Context, filter transaction.Filter) ([]CreditCard, []transaction.Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get current user: %w", err)
	}
	cards, err := s.repo.List(ctx, userId)
	if err != nil {
		return nil, nil, err
	}
	transactions, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return cards, transactions, nil
}

func normalize(card CreditCard) (CreditCard, error) {
	card.Name = strings.TrimSpace(card.Name)
	if card.Name == "" {
		return CreditCard{}, fmt.Errorf("%w: name is required", ErrInvalidCard)
	}
	if !card.TotalLimit.IsPositive() {
		return CreditCard{}, ErrInvalidLimit
	}
	if !utils.FitsMoneyScale(card.TotalLimit) {
		return CreditCard{}, fmt.Errorf("%w: limit must have at most %d decimal places", ErrInvalidCard, utils.MoneyScale)
	}
	if card.ClosingDay < 1 || card.ClosingDay > 31 {
		return CreditCard{}, fmt.Errorf("%w: closing day must be between 1 and 31", ErrInvalidCard)
	}
	if card.Kind == "" {
		card.Kind = Credit
	}
	if !card.Kind.Valid() {
		return CreditCard{}, fmt.Errorf("%w: unknown kind %s", ErrInvalidCard, card.Kind)
	}
	return card, nil
}
