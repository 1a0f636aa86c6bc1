package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/moneta-app/moneta/internal/event_bus"
	"github.com/moneta-app/moneta/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrCategoryNotFound          = errors.New("category not found")
	ErrCategoryExists            = errors.New("category already exists")
	ErrCategoryShadowsPredefined = errors.New("category name is reserved by a predefined category")
	ErrInvalidCategory           = errors.New("invalid category")
	ErrUnknownCategory           = errors.New("unknown category")
)

// Catalog lists every category available to a user.
type Catalog struct {
	Predefined []Predefined
	Custom     []CustomCategory
}

type Service interface {
	List(ctx context.Context) (Catalog, error)
	Create(ctx context.Context, category CustomCategory) (CustomCategory, error)
	Update(ctx context.Context, category CustomCategory) (CustomCategory, error)
	Delete(ctx context.Context, id int) error
	// Resolve turns a category name received from a client into a Category of the current user.
	Resolve(ctx context.Context, name string) (Category, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) List(ctx context.Context) (Catalog, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to get current user: %w", err)
	}
	custom, err := s.repo.List(ctx, userId)
	if err != nil {
		return Catalog{}, err
	}
	return Catalog{Predefined: PredefinedCategories, Custom: custom}, nil
}

func (s *ServiceImpl) Create(ctx context.Context, category CustomCategory) (CustomCategory, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return CustomCategory{}, fmt.Errorf("failed to get current user: %w", err)
	}
	category.Name = Normalize(category.Name)
	if category.Name == "" {
		return CustomCategory{}, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	if _, ok := ParsePredefined(category.Name); ok {
		return CustomCategory{}, ErrCategoryShadowsPredefined
	}
	return s.repo.Create(ctx, userId, category)
}

// Update changes presentation attributes only. The name is the stored reference used by
// transactions and cannot change.
func (s *ServiceImpl) Update(ctx context.Context, category CustomCategory) (CustomCategory, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return CustomCategory{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Update(ctx, userId, category)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return err
	}
	// Rows are moved to the fallback before the category disappears. Subscribers run outside of
	// any shared database transaction, so a failing subscriber leaves the category in place and
	// the delete can simply be retried; re-categorization is idempotent.
	// A transaction written with this category between the event and the delete keeps its name.
	err = s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		event_bus.CategoryDeletedEvent,
		event_bus.CategoryDeleted{
			UserId:   userId,
			Name:     existing.Name,
			Fallback: string(Other),
		},
	))
	if err != nil {
		log.Errorf("failed to publish category deleted event: %v", err)
		return err
	}
	return s.repo.Delete(ctx, userId, id)
}

func (s *ServiceImpl) Resolve(ctx context.Context, name string) (Category, error) {
	if p, ok := ParsePredefined(name); ok {
		return FromPredefined(p), nil
	}
	normalized := Normalize(name)
	if normalized == "" {
		return Category{}, fmt.Errorf("%w: empty name", ErrUnknownCategory)
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	custom, err := s.repo.GetByName(ctx, userId, normalized)
	if errors.Is(err, ErrCategoryNotFound) {
		return Category{}, fmt.Errorf("%w: %s", ErrUnknownCategory, normalized)
	}
	if err != nil {
		return Category{}, err
	}
	return FromCustom(custom.Name), nil
}
