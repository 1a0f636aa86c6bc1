package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta/pkg/user"
)

// CreateTestUser inserts a fresh user so repository tests do not share rows.
func CreateTestUser(t *testing.T, db *pgxpool.Pool) user.User {
	t.Helper()
	u := user.User{
		Uid:         "test-" + uuid.NewString(),
		Email:       "test@example.com",
		DisplayName: "Test User",
		Settings:    user.Settings{Currency: "USD", InsightPersona: "coach"},
	}
	id, err := user.NewRepository(db).CreateUser(context.Background(), u)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	u.Id = id
	return u
}

// ContextWithUser returns a context carrying u as the authenticated user.
func ContextWithUser(u user.User) context.Context {
	return user.WithUser(context.Background(), u)
}
