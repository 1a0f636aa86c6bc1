package card

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	nextId int
	cards  map[int]CreditCard
	owners map[int]int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{cards: map[int]CreditCard{}, owners: map[int]int{}}
}

func (s *RepositoryStub) List(ctx context.Context, userId int) ([]CreditCard, error) {
	result := make([]CreditCard, 0)
	for id, c := range s.cards {
		if s.owners[id] == userId {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id int) (CreditCard, error) {
	c, ok := s.cards[id]
	if !ok || s.owners[id] != userId {
		return CreditCard{}, ErrCardNotFound
	}
	return c, nil
}

func (s *RepositoryStub) Create(ctx context.Context, userId int, card CreditCard) (CreditCard, error) {
	s.nextId++
	card.Id = s.nextId
	s.cards[card.Id] = card
	s.owners[card.Id] = userId
	return card, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, card CreditCard) (CreditCard, error) {
	if _, err := s.Get(ctx, userId, card.Id); err != nil {
		return CreditCard{}, err
	}
	s.cards[card.Id] = card
	return card, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id int) error {
	if _, err := s.Get(ctx, userId, id); err != nil {
		return err
	}
	delete(s.cards, id)
	delete(s.owners, id)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.cards = map[int]CreditCard{}
	s.owners = map[int]int{}
}
