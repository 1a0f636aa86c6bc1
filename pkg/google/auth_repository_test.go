package google

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *AuthRepositoryImpl, int) {
	repository := NewAuthRepository(db)
	u := test_utils.CreateTestUser(t, db)
	return context.Background(), repository, u.Id
}

func TestAuthRepositoryImpl_TokenLifecycle(t *testing.T) {
	repoCtx, repo, userId := setupTestRepository(t)
	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("should have no token before login", func(t *testing.T) {
		token, err := repo.GetToken(repoCtx, userId)

		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("should have no token while callback is pending", func(t *testing.T) {
		require.NoError(t, repo.StartAuth(repoCtx, userId, "nonce-1"))

		token, err := repo.GetToken(repoCtx, userId)

		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("should store token by nonce", func(t *testing.T) {
		// given
		require.NoError(t, repo.StartAuth(repoCtx, userId, "nonce-2"))

		// when
		err := repo.StoreToken(repoCtx, "nonce-2", &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: expiry})

		// then
		require.NoError(t, err)
		token, err := repo.GetToken(repoCtx, userId)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, "access", token.AccessToken)
		assert.Equal(t, "refresh", token.RefreshToken)
		assert.True(t, expiry.Equal(token.Expiry))
	})

	t.Run("should reject replaced nonce", func(t *testing.T) {
		err := repo.StoreToken(repoCtx, "nonce-1", &oauth2.Token{AccessToken: "stale"})

		assert.ErrorIs(t, err, ErrUnknownNonce)
	})

	t.Run("should delete authorization", func(t *testing.T) {
		require.NoError(t, repo.DeleteAuth(repoCtx, userId))

		token, err := repo.GetToken(repoCtx, userId)

		require.NoError(t, err)
		assert.Nil(t, token)
	})
}
