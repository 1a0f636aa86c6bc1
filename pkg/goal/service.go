package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidGoal     = errors.New("invalid goal")
	ErrInvalidProgress = errors.New("progress amount must be greater than zero")
)

type Service interface {
	List(ctx context.Context) ([]FinancialGoal, error)
	Get(ctx context.Context, id int) (FinancialGoal, error)
	Create(ctx context.Context, goal FinancialGoal) (FinancialGoal, error)
	Update(ctx context.Context, goal FinancialGoal) (FinancialGoal, error)
	Delete(ctx context.Context, id int) error
	AddProgress(ctx context.Context, id int, amount decimal.Decimal) (FinancialGoal, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]FinancialGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (FinancialGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return FinancialGoal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, goal FinancialGoal) (FinancialGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return FinancialGoal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	goal.Title = strings.TrimSpace(goal.Title)
	if err := validate(goal); err != nil {
		return FinancialGoal{}, err
	}
	if goal.CurrentAmount.IsNegative() || !utils.FitsMoneyScale(goal.CurrentAmount) {
		return FinancialGoal{}, fmt.Errorf("%w: current amount must be a non-negative amount with at most %d decimal places", ErrInvalidGoal, utils.MoneyScale)
	}
	return s.repo.Create(ctx, userId, goal)
}

func (s *ServiceImpl) Update(ctx context.Context, goal FinancialGoal) (FinancialGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return FinancialGoal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	goal.Title = strings.TrimSpace(goal.Title)
	if err := validate(goal); err != nil {
		return FinancialGoal{}, err
	}
	return s.repo.Update(ctx, userId, goal)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}

func (s *ServiceImpl) AddProgress(ctx context.Context, id int, amount decimal.Decimal) (FinancialGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return FinancialGoal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !amount.IsPositive() {
		return FinancialGoal{}, ErrInvalidProgress
	}
	if !utils.FitsMoneyScale(amount) {
		return FinancialGoal{}, fmt.Errorf("%w: at most %d decimal places", ErrInvalidProgress, utils.MoneyScale)
	}
	goal, err := s.repo.AddProgress(ctx, userId, id, amount)
	if err != nil {
		return FinancialGoal{}, err
	}
	if goal.Reached() && goal.CurrentAmount.Sub(amount).LessThan(goal.TargetAmount) {
		log.Infof("goal %d (%s) reached its target of %s", goal.Id, goal.Title, goal.TargetAmount)
	}
	return goal, nil
}

func validate(goal FinancialGoal) error {
	if goal.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidGoal)
	}
	if !goal.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: target amount must be greater than zero", ErrInvalidGoal)
	}
	if !utils.FitsMoneyScale(goal.TargetAmount) {
		return fmt.Errorf("%w: target amount must have at most %d decimal places", ErrInvalidGoal, utils.MoneyScale)
	}
	return nil
}
