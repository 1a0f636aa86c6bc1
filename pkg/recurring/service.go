package recurring

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/moneta-app/moneta/internal/event_bus"
	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrRecurringNotFound = errors.New("recurring expense not found")
	ErrInvalidRecurring  = errors.New("invalid recurring expense")
)

type Service interface {
	List(ctx context.Context) ([]RecurringExpense, error)
	Get(ctx context.Context, id int) (RecurringExpense, error)
	Create(ctx context.Context, e RecurringExpense) (RecurringExpense, error)
	Update(ctx context.Context, e RecurringExpense) (RecurringExpense, error)
	Delete(ctx context.Context, id int) error
	// RunDue rolls forward every due expense of every user in one database transaction and
	// returns the number of processed expenses.
	RunDue(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	service := &ServiceImpl{repo: repo, clock: clock}
	event_bus.SubscribeTyped[event_bus.CategoryDeleted](
		eventBus,
		event_bus.CategoryDeletedEvent,
		func(e event_bus.EventT[event_bus.CategoryDeleted]) error {
			updated, err := service.repo.Recategorize(e.Context(), e.Data.UserId, e.Data.Name, e.Data.Fallback)
			if err != nil {
				log.Errorf("failed to recategorize recurring expenses from %s: %v", e.Data.Name, err)
				return err
			}
			log.Debugf("moved %d recurring expenses from %s to %s", updated, e.Data.Name, e.Data.Fallback)
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) List(ctx context.Context) ([]RecurringExpense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (RecurringExpense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return RecurringExpense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, e RecurringExpense) (RecurringExpense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return RecurringExpense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	e.Description = strings.TrimSpace(e.Description)
	e.Active = true
	if err := validate(e); err != nil {
		return RecurringExpense{}, err
	}
	return s.repo.Create(ctx, userId, e)
}

func (s *ServiceImpl) Update(ctx context.Context, e RecurringExpense) (RecurringExpense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return RecurringExpense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.Get(ctx, userId, e.Id)
	if err != nil {
		return RecurringExpense{}, err
	}
	if !existing.Active && e.Active {
		return RecurringExpense{}, fmt.Errorf("%w: an inactive recurring expense cannot be reactivated", ErrInvalidRecurring)
	}
	e.Description = strings.TrimSpace(e.Description)
	if err := validate(e); err != nil {
		return RecurringExpense{}, err
	}
	return s.repo.Update(ctx, userId, e)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}

func (s *ServiceImpl) RunDue(ctx context.Context) (int, error) {
	now := s.clock.Now()
	processed := 0
	deactivated := 0

	err := s.repo.WithTransaction(ctx, func(repo Repository) error {
		processed, deactivated = 0, 0
		due, err := repo.ListDue(ctx, now)
		if err != nil {
			return err
		}
		for _, e := range due {
			advanced, generated, err := RollForward(e, now)
			if errors.Is(err, ErrUnknownFrequency) {
				log.Warnf("skipping recurring expense %d: %v", e.Id, err)
				continue
			}
			if err != nil {
				return err
			}
			if _, err := repo.InsertTransaction(ctx, e.UserId, generated); err != nil {
				return fmt.Errorf("failed to generate transaction for recurring expense %d: %w", e.Id, err)
			}
			if err := repo.SaveProgress(ctx, advanced); err != nil {
				return fmt.Errorf("failed to advance recurring expense %d: %w", e.Id, err)
			}
			processed++
			if !advanced.Active {
				deactivated++
			}
		}
		return nil
	})
	if err != nil {
		log.Errorf("recurring roll-forward failed: %v", err)
		return 0, err
	}

	log.Infof("recurring roll-forward processed %d expenses, deactivated %d", processed, deactivated)
	return processed, nil
}

func validate(e RecurringExpense) error {
	if e.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidRecurring)
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidRecurring)
	}
	if !utils.FitsMoneyScale(e.Amount) {
		return fmt.Errorf("%w: amount must have at most %d decimal places", ErrInvalidRecurring, utils.MoneyScale)
	}
	if e.Category.IsZero() {
		return fmt.Errorf("%w: category is required", ErrInvalidRecurring)
	}
	if !e.Frequency.Valid() {
		return fmt.Errorf("%w: frequency must be weekly, monthly or yearly", ErrInvalidRecurring)
	}
	if e.NextTriggerDate.IsZero() {
		return fmt.Errorf("%w: next trigger date is required", ErrInvalidRecurring)
	}
	// inactive records may legitimately trigger after their end date
	if e.Active && e.EndDate != nil && e.EndDate.Before(e.NextTriggerDate) {
		return fmt.Errorf("%w: end date is before the next trigger date", ErrInvalidRecurring)
	}
	return nil
}
