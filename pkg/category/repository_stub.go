package category

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	nextId     int
	categories map[int]CustomCategory
	owners     map[int]int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		categories: map[int]CustomCategory{},
		owners:     map[int]int{},
	}
}

func (s *RepositoryStub) List(ctx context.Context, userId int) ([]CustomCategory, error) {
	result := make([]CustomCategory, 0)
	for id, c := range s.categories {
		if s.owners[id] == userId {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id int) (CustomCategory, error) {
	c, ok := s.categories[id]
	if !ok || s.owners[id] != userId {
		return CustomCategory{}, ErrCategoryNotFound
	}
	return c, nil
}

func (s *RepositoryStub) GetByName(ctx context.Context, userId int, name string) (CustomCategory, error) {
	for id, c := range s.categories {
		if s.owners[id] == userId && c.Name == name {
			return c, nil
		}
	}
	return CustomCategory{}, ErrCategoryNotFound
}

func (s *RepositoryStub) Create(ctx context.Context, userId int, category CustomCategory) (CustomCategory, error) {
	if _, err := s.GetByName(ctx, userId, category.Name); err == nil {
		return CustomCategory{}, ErrCategoryExists
	}
	s.nextId++
	category.Id = s.nextId
	s.categories[category.Id] = category
	s.owners[category.Id] = userId
	return category, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, category CustomCategory) (CustomCategory, error) {
	existing, err := s.Get(ctx, userId, category.Id)
	if err != nil {
		return CustomCategory{}, err
	}
	existing.Icon = category.Icon
	existing.Color = category.Color
	s.categories[existing.Id] = existing
	return existing, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id int) error {
	if _, err := s.Get(ctx, userId, id); err != nil {
		return err
	}
	delete(s.categories, id)
	delete(s.owners, id)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.categories = map[int]CustomCategory{}
	s.owners = map[int]int{}
}
