package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserDataInvalid = errors.New("invalid user data")
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	// GetOrCreateByUid returns the user with the given identity-provider subject, registering it
	// with the supplied profile on first sight.
	GetOrCreateByUid(ctx context.Context, profile User) (User, error)
	UpdateCurrentUser(ctx context.Context, user User) (User, error)
	DeleteCurrentUser(ctx context.Context) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetUser(ctx, userId)
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if err := validate(user); err != nil {
		return User{}, err
	}
	existing, err := s.repo.GetUserByUid(ctx, user.Uid)
	if err == nil {
		return User{}, fmt.Errorf("%w: uid %s already registered (id %d)", ErrUserDataInvalid, user.Uid, existing.Id)
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}
	user.Settings.Currency = strings.ToUpper(user.Settings.Currency)

	userId, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	return s.repo.GetUser(ctx, userId)
}

func (s *ServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

func (s *ServiceImpl) GetOrCreateByUid(ctx context.Context, profile User) (User, error) {
	u, err := s.repo.GetUserByUid(ctx, profile.Uid)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}
	log.Infof("registering new user %s", profile.Uid)
	return s.CreateUser(ctx, profile)
}

func (s *ServiceImpl) UpdateCurrentUser(ctx context.Context, user User) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if len(user.Settings.Currency) != 0 && len(user.Settings.Currency) != 3 {
		return User{}, fmt.Errorf("%w: currency must be a 3-letter code", ErrUserDataInvalid)
	}
	user.Settings.Currency = strings.ToUpper(user.Settings.Currency)
	return s.repo.UpdateUser(ctx, userId, user)
}

func (s *ServiceImpl) DeleteCurrentUser(ctx context.Context) error {
	userId, err := CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteUser(ctx, userId)
}

func validate(user User) error {
	if strings.TrimSpace(user.Uid) == "" {
		return fmt.Errorf("%w: uid is required", ErrUserDataInvalid)
	}
	if c := user.Settings.Currency; c != "" && len(c) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrUserDataInvalid)
	}
	return nil
}
