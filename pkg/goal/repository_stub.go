package goal

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

type RepositoryStub struct {
	nextId int
	goals  map[int]FinancialGoal
	owners map[int]int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{goals: map[int]FinancialGoal{}, owners: map[int]int{}}
}

func (s *RepositoryStub) List(ctx context.Context, userId int) ([]FinancialGoal, error) {
	result := make([]FinancialGoal, 0)
	for id, g := range s.goals {
		if s.owners[id] == userId {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id int) (FinancialGoal, error) {
	g, ok := s.goals[id]
	if !ok || s.owners[id] != userId {
		return FinancialGoal{}, ErrGoalNotFound
	}
	return g, nil
}

func (s *RepositoryStub) Create(ctx context.Context, userId int, goal FinancialGoal) (FinancialGoal, error) {
	s.nextId++
	goal.Id = s.nextId
	s.goals[goal.Id] = goal
	s.owners[goal.Id] = userId
	return goal, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, goal FinancialGoal) (FinancialGoal, error) {
	existing, err := s.Get(ctx, userId, goal.Id)
	if err != nil {
		return FinancialGoal{}, err
	}
	goal.CurrentAmount = existing.CurrentAmount
	s.goals[goal.Id] = goal
	return goal, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id int) error {
	if _, err := s.Get(ctx, userId, id); err != nil {
		return err
	}
	delete(s.goals, id)
	delete(s.owners, id)
	return nil
}

func (s *RepositoryStub) AddProgress(ctx context.Context, userId int, id int, amount decimal.Decimal) (FinancialGoal, error) {
	g, err := s.Get(ctx, userId, id)
	if err != nil {
		return FinancialGoal{}, err
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	s.goals[id] = g
	return g, nil
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.goals = map[int]FinancialGoal{}
	s.owners = map[int]int{}
}
