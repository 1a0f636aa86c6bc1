package recurring

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/moneta-app/moneta/pkg/category"
	"github.com/moneta-app/moneta/pkg/transaction"
)

var errStubInsertFailed = errors.New("stub: insert failed")

type GeneratedTransaction struct {
	UserId      int
	Transaction transaction.Transaction
}

type RepositoryStub struct {
	mu        sync.Mutex
	nextId    int
	expenses  map[int]RecurringExpense
	generated []GeneratedTransaction
	// FailOnInsert makes the n-th InsertTransaction call (1-based, counted since Cleanup) fail.
	FailOnInsert int
	inserts      int
	// DueQueries counts ListDue calls.
	DueQueries int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{expenses: map[int]RecurringExpense{}}
}

func (s *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	s.mu.Lock()
	snapshot := make(map[int]RecurringExpense, len(s.expenses))
	for k, v := range s.expenses {
		snapshot[k] = v
	}
	generated := append([]GeneratedTransaction(nil), s.generated...)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.expenses = snapshot
		s.generated = generated
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *RepositoryStub) List(ctx context.Context, userId int) ([]RecurringExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]RecurringExpense, 0)
	for _, e := range s.expenses {
		if e.UserId == userId {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (s *RepositoryStub) ListDue(ctx context.Context, now time.Time) ([]RecurringExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DueQueries++
	result := make([]RecurringExpense, 0)
	for _, e := range s.expenses {
		if e.IsDue(now) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id int) (RecurringExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok || e.UserId != userId {
		return RecurringExpense{}, ErrRecurringNotFound
	}
	return e, nil
}

func (s *RepositoryStub) Create(ctx context.Context, userId int, e RecurringExpense) (RecurringExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	e.Id = s.nextId
	e.UserId = userId
	s.expenses[e.Id] = e
	return e, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, e RecurringExpense) (RecurringExpense, error) {
	if _, err := s.Get(ctx, userId, e.Id); err != nil {
		return RecurringExpense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.UserId = userId
	s.expenses[e.Id] = e
	return e, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id int) error {
	if _, err := s.Get(ctx, userId, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expenses, id)
	return nil
}

func (s *RepositoryStub) SaveProgress(ctx context.Context, e RecurringExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.expenses[e.Id]
	if !ok {
		return ErrRecurringNotFound
	}
	stored.NextTriggerDate = e.NextTriggerDate
	stored.Active = e.Active
	s.expenses[e.Id] = stored
	return nil
}

func (s *RepositoryStub) InsertTransaction(ctx context.Context, userId int, t transaction.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	if s.FailOnInsert > 0 && s.inserts == s.FailOnInsert {
		return 0, errStubInsertFailed
	}
	s.generated = append(s.generated, GeneratedTransaction{UserId: userId, Transaction: t})
	return len(s.generated), nil
}

func (s *RepositoryStub) Recategorize(ctx context.Context, userId int, from string, to string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := 0
	for id, e := range s.expenses {
		if e.UserId == userId && e.Category.String() == from {
			e.Category = category.FromStored(to)
			s.expenses[id] = e
			updated++
		}
	}
	return updated, nil
}

// Generated returns the transactions inserted by the job.
func (s *RepositoryStub) Generated() []GeneratedTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]GeneratedTransaction(nil), s.generated...)
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId = 0
	s.expenses = map[int]RecurringExpense{}
	s.generated = nil
	s.FailOnInsert = 0
	s.inserts = 0
	s.DueQueries = 0
}
