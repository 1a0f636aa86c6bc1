package transaction

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moneta-app/moneta/pkg/category"
)

var errStubCreateFailed = errors.New("stub: create failed")

type storedTransaction struct {
	userId int
	t      Transaction
}

type RepositoryStub struct {
	mu     sync.Mutex
	nextId int
	items  map[int]storedTransaction
	// FailOnCreate makes the n-th Create call (1-based, counted since Cleanup) fail.
	FailOnCreate int
	creates      int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{items: map[int]storedTransaction{}}
}

func (s *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	s.mu.Lock()
	snapshot := make(map[int]storedTransaction, len(s.items))
	for k, v := range s.items {
		snapshot[k] = v
	}
	nextId := s.nextId
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.items = snapshot
		s.nextId = nextId
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *RepositoryStub) List(ctx context.Context, userId int, filter Filter) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Transaction, 0)
	for _, st := range s.items {
		if st.userId != userId {
			continue
		}
		t := st.t
		if filter.Month != nil {
			start := time.Date(filter.Month.Year(), filter.Month.Month(), 1, 0, 0, 0, 0, filter.Month.Location())
			if t.Date.Before(start) || !t.Date.Before(start.AddDate(0, 1, 0)) {
				continue
			}
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.CardId != nil && (t.CardId == nil || *t.CardId != *filter.CardId) {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].Id > result[j].Id
		}
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id int) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.items[id]
	if !ok || st.userId != userId {
		return Transaction{}, ErrTransactionNotFound
	}
	return st.t, nil
}

func (s *RepositoryStub) Create(ctx context.Context, userId int, t Transaction) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.FailOnCreate > 0 && s.creates == s.FailOnCreate {
		return Transaction{}, errStubCreateFailed
	}
	s.nextId++
	t.Id = s.nextId
	t.Created = time.Now()
	s.items[t.Id] = storedTransaction{userId: userId, t: t}
	return t, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, t Transaction) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.items[t.Id]
	if !ok || st.userId != userId {
		return Transaction{}, ErrTransactionNotFound
	}
	updated := st.t
	updated.Description = t.Description
	updated.Amount = t.Amount
	updated.Date = t.Date
	updated.Type = t.Type
	updated.Category = t.Category
	updated.CardId = t.CardId
	s.items[t.Id] = storedTransaction{userId: userId, t: updated}
	return updated, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.items[id]
	if !ok || st.userId != userId {
		return 0, nil
	}
	delete(s.items, id)
	return 1, nil
}

func (s *RepositoryStub) DeleteGroupFrom(ctx context.Context, userId int, groupId uuid.UUID, from time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for id, st := range s.items {
		g := st.t.InstallmentGroupId
		if st.userId == userId && g != nil && *g == groupId && !st.t.Date.Before(from) {
			delete(s.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *RepositoryStub) Recategorize(ctx context.Context, userId int, from string, to string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := 0
	for id, st := range s.items {
		if st.userId == userId && st.t.Category.String() == from {
			st.t.Category = category.FromStored(to)
			s.items[id] = st
			updated++
		}
	}
	return updated, nil
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId = 0
	s.items = map[int]storedTransaction{}
	s.FailOnCreate = 0
	s.creates = 0
}
