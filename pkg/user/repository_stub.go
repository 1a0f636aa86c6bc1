package user

import (
	"context"
)

type RepositoryStub struct {
	nextId int
	data   map[int]User
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{nextId: 0, data: map[int]User{}}
}

func (s *RepositoryStub) CreateUser(ctx context.Context, user User) (int, error) {
	s.nextId++
	user.Id = s.nextId
	user.Settings = user.Settings.withDefaults()
	s.data[s.nextId] = user
	return s.nextId, nil
}

func (s *RepositoryStub) GetUser(ctx context.Context, id int) (User, error) {
	user, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *RepositoryStub) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, user := range s.data {
		if user.Uid == uid {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *RepositoryStub) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	existing, ok := s.data[userId]
	if !ok {
		return User{}, ErrUserNotFound
	}
	existing.Email = user.Email
	existing.DisplayName = user.DisplayName
	existing.Settings = user.Settings.withDefaults()
	s.data[userId] = existing
	return existing, nil
}

func (s *RepositoryStub) DeleteUser(ctx context.Context, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *RepositoryStub) Reset() {
	s.nextId = 0
	s.data = map[int]User{}
}
