package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/moneta-app/moneta/internal/event_bus"
	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidTransaction  = errors.New("invalid transaction")
)

type Service interface {
	List(ctx context.Context, filter Filter) ([]Transaction, error)
	Get(ctx context.Context, id int) (Transaction, error)
	Create(ctx context.Context, t Transaction) (Transaction, error)
	// CreateInstallments stores all parts of an installment purchase atomically.
	CreateInstallments(ctx context.Context, purchase InstallmentPurchase) ([]Transaction, error)
	Update(ctx context.Context, t Transaction) (Transaction, error)
	// Delete removes the transaction. With DeleteFollowing, later parts of the same installment
	// purchase are removed too. Returns the number of removed transactions.
	Delete(ctx context.Context, id int, scope DeleteScope) (int, error)
}

type ServiceImpl struct {
	repo    Repository
	newUUID func() uuid.UUID
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{repo: repo, newUUID: uuid.New}
	event_bus.SubscribeTyped[event_bus.CategoryDeleted](
		eventBus,
		event_bus.CategoryDeletedEvent,
		func(e event_bus.EventT[event_bus.CategoryDeleted]) error {
			updated, err := service.repo.Recategorize(e.Context(), e.Data.UserId, e.Data.Name, e.Data.Fallback)
			if err != nil {
				log.Errorf("failed to recategorize transactions from %s: %v", e.Data.Name, err)
				return err
			}
			log.Debugf("moved %d transactions from %s to %s", updated, e.Data.Name, e.Data.Fallback)
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId, filter)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, t Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(t); err != nil {
		return Transaction{}, err
	}
	if !utils.FitsMoneyScale(t.Amount) {
		return Transaction{}, errAmountScale
	}
	t.Installments = 1
	t.InstallmentGroupId = nil
	t.RecurringExpenseId = nil
	return s.repo.Create(ctx, userId, t)
}

func (s *ServiceImpl) CreateInstallments(ctx context.Context, purchase InstallmentPurchase) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if strings.TrimSpace(purchase.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidTransaction)
	}
	if purchase.Category.IsZero() {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidTransaction)
	}
	if !utils.FitsMoneyScale(purchase.Amount) {
		return nil, errAmountScale
	}
	parts, err := ExpandInstallments(purchase, s.newUUID())
	if err != nil {
		return nil, err
	}

	created := make([]Transaction, 0, len(parts))
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		for _, part := range parts {
			stored, err := repo.Create(ctx, userId, part)
			if err != nil {
				return err
			}
			created = append(created, stored)
		}
		return nil
	})
	if err != nil {
		log.Errorf("failed to store installment purchase %q: %v", purchase.Description, err)
		return nil, err
	}
	log.Debugf("stored %d installments of group %s", len(created), *parts[0].InstallmentGroupId)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, t Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(t); err != nil {
		return Transaction{}, err
	}
	// installment parts carry the unrounded share and may be sent back unchanged
	if !utils.FitsMoneyScale(t.Amount) {
		existing, err := s.repo.Get(ctx, userId, t.Id)
		if err != nil {
			return Transaction{}, err
		}
		if !existing.Amount.Equal(t.Amount) {
			return Transaction{}, errAmountScale
		}
	}
	return s.repo.Update(ctx, userId, t)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int, scope DeleteScope) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return 0, err
	}

	if scope == DeleteSingle || existing.InstallmentGroupId == nil {
		return s.repo.Delete(ctx, userId, id)
	}
	deleted, err := s.repo.DeleteGroupFrom(ctx, userId, *existing.InstallmentGroupId, existing.Date)
	if err != nil {
		return 0, err
	}
	log.Debugf("deleted %d installments of group %s", deleted, *existing.InstallmentGroupId)
	return deleted, nil
}

var errAmountScale = fmt.Errorf("%w: amount must have at most %d decimal places", ErrInvalidTransaction, utils.MoneyScale)

func validate(t Transaction) error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidTransaction)
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: type must be income or expense", ErrInvalidTransaction)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTransaction)
	}
	if t.Category.IsZero() {
		return fmt.Errorf("%w: category is required", ErrInvalidTransaction)
	}
	return nil
}
