package category

import (
	"context"
	"errors"
	"testing"

	"github.com/moneta-app/moneta/internal/event_bus"
	"github.com/moneta-app/moneta/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.WithValue(context.Background(), user.UserKey, user.User{Id: 1, Uid: "user-1"})

var repoStub = NewRepositoryStub()

var (
	service *ServiceImpl
	bus     *event_bus.EventBus
)

func setup(t *testing.T) func() {
	bus = event_bus.NewEventBus()
	service = NewService(repoStub, bus)
	return func() {
		repoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should normalize and store custom category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, CustomCategory{Name: " Pets ", Icon: "paw"})

		require.NoError(t, err)
		assert.Equal(t, "pets", created.Name)
		assert.NotZero(t, created.Id)
	})

	t.Run("should not shadow predefined category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, CustomCategory{Name: "Food"})

		assert.ErrorIs(t, err, ErrCategoryShadowsPredefined)
	})

	t.Run("should reject duplicates", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, CustomCategory{Name: "pets"})
		require.NoError(t, err)
		_, err = service.Create(ctx, CustomCategory{Name: "PETS"})

		assert.ErrorIs(t, err, ErrCategoryExists)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, CustomCategory{Name: "  "})

		assert.ErrorIs(t, err, ErrInvalidCategory)
	})
}

func TestServiceImpl_Resolve(t *testing.T) {
	teardown := setup(t)
	defer teardown()
	_, err := service.Create(ctx, CustomCategory{Name: "pets"})
	require.NoError(t, err)

	t.Run("should resolve predefined category", func(t *testing.T) {
		c, err := service.Resolve(ctx, "Transport")
		require.NoError(t, err)
		p, ok := c.Predefined()
		assert.True(t, ok)
		assert.Equal(t, Transport, p)
	})

	t.Run("should resolve custom category of the current user", func(t *testing.T) {
		c, err := service.Resolve(ctx, "Pets")
		require.NoError(t, err)
		name, ok := c.Custom()
		assert.True(t, ok)
		assert.Equal(t, "pets", name)
	})

	t.Run("should not resolve custom category of another user", func(t *testing.T) {
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
		_, err := service.Resolve(otherCtx, "pets")
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("should reject unknown category", func(t *testing.T) {
		_, err := service.Resolve(ctx, "gadgets")
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should publish category deleted event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, CustomCategory{Name: "pets"})
		require.NoError(t, err)
		var received []event_bus.CategoryDeleted
		event_bus.SubscribeTyped(bus, event_bus.CategoryDeletedEvent, func(e event_bus.EventT[event_bus.CategoryDeleted]) error {
			received = append(received, e.Data)
			return nil
		})

		// when
		err = service.Delete(ctx, created.Id)

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, event_bus.CategoryDeleted{UserId: 1, Name: "pets", Fallback: "other"}, received[0])
		catalog, err := service.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, catalog.Custom)
		assert.Len(t, catalog.Predefined, len(PredefinedCategories))
	})

	t.Run("should keep category when re-categorization fails", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, CustomCategory{Name: "pets"})
		require.NoError(t, err)
		unsubscribe := event_bus.SubscribeTyped(bus, event_bus.CategoryDeletedEvent, func(e event_bus.EventT[event_bus.CategoryDeleted]) error {
			return errors.New("database unavailable")
		})

		// when
		err = service.Delete(ctx, created.Id)

		// then
		require.Error(t, err)
		catalog, err := service.List(ctx)
		require.NoError(t, err)
		require.Len(t, catalog.Custom, 1)
		assert.Equal(t, "pets", catalog.Custom[0].Name)

		// and a retry succeeds once subscribers recover
		unsubscribe()
		require.NoError(t, service.Delete(ctx, created.Id))
	})

	t.Run("should return not found for unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.Delete(ctx, 42)

		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}
