package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewRepositoryStub()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub)
	return func() {
		repoStub.Reset()
	}
}

func TestServiceImpl_CreateUser(t *testing.T) {
	t.Run("should create user with default settings", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreateUser(context.Background(), User{Uid: "abc", DisplayName: "Ana"})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.Equal(t, "USD", created.Settings.Currency)
		assert.Equal(t, "coach", created.Settings.InsightPersona)
	})

	t.Run("should reject duplicated uid", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.CreateUser(context.Background(), User{Uid: "abc"})
		require.NoError(t, err)

		// when
		_, err = service.CreateUser(context.Background(), User{Uid: "abc"})

		// then
		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})

	t.Run("should reject missing uid", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.CreateUser(context.Background(), User{DisplayName: "Nobody"})

		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})
}

func TestServiceImpl_GetOrCreateByUid(t *testing.T) {
	teardown := setup(t)
	defer teardown()
	ctx := context.Background()

	// when
	first, err := service.GetOrCreateByUid(ctx, User{Uid: "google-sub", Email: "a@b.c"})
	require.NoError(t, err)
	second, err := service.GetOrCreateByUid(ctx, User{Uid: "google-sub", Email: "changed@b.c"})
	require.NoError(t, err)

	// then
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, "a@b.c", second.Email)
}

func TestServiceImpl_UpdateCurrentUser(t *testing.T) {
	t.Run("should update settings of the user in context", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.CreateUser(context.Background(), User{Uid: "abc"})
		require.NoError(t, err)
		ctx := WithUser(context.Background(), created)

		// when
		updated, err := service.UpdateCurrentUser(ctx, User{
			DisplayName: "Ana",
			Settings:    Settings{Currency: "brl", InsightPersona: "frugal"},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Ana", updated.DisplayName)
		assert.Equal(t, "BRL", updated.Settings.Currency)
		assert.Equal(t, "frugal", updated.Settings.InsightPersona)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.UpdateCurrentUser(context.Background(), User{})

		assert.ErrorIs(t, err, ErrNoUser)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_DeleteCurrentUser(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	created, err := service.CreateUser(context.Background(), User{Uid: "abc"})
	require.NoError(t, err)
	ctx := WithUser(context.Background(), created)

	// when
	err = service.DeleteCurrentUser(ctx)

	// then
	require.NoError(t, err)
	_, err = service.GetCurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
