package transaction

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta/internal/test_utils"
	"github.com/moneta-app/moneta/pkg/category"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl, int) {
	repository := NewRepository(db)
	u := test_utils.CreateTestUser(t, db)
	return context.Background(), repository, u.Id
}

func TestRepositoryImpl_CreateAndGet(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	cardId := 4
	groupId := uuid.New()
	date := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// when
	created, err := repo.Create(ctx, userId, Transaction{
		Description:        "Phone (1/12)",
		Amount:             decimal.RequireFromString("83.3333333333333333"),
		Date:               date,
		Type:               Expense,
		Category:           category.FromCustom("gadgets"),
		Installments:       12,
		InstallmentGroupId: &groupId,
		CardId:             &cardId,
	})
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Phone (1/12)", stored.Description)
	assert.True(t, decimal.RequireFromString("83.3333333333333333").Equal(stored.Amount))
	assert.True(t, date.Equal(stored.Date))
	assert.Equal(t, Expense, stored.Type)
	name, ok := stored.Category.Custom()
	assert.True(t, ok)
	assert.Equal(t, "gadgets", name)
	assert.Equal(t, 12, stored.Installments)
	require.NotNil(t, stored.InstallmentGroupId)
	assert.Equal(t, groupId, *stored.InstallmentGroupId)
	assert.Equal(t, 4, *stored.CardId)
	assert.Nil(t, stored.RecurringExpenseId)
	assert.False(t, stored.Created.IsZero())
}

func TestRepositoryImpl_Get_OtherUser(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)
	other := test_utils.CreateTestUser(t, db)
	created, err := repo.Create(ctx, userId, Transaction{
		Description: "Rent", Amount: decimal.NewFromInt(900), Date: time.Now(), Type: Expense,
		Category: category.FromPredefined(category.Housing), Installments: 1,
	})
	require.NoError(t, err)

	_, err = repo.Get(ctx, other.Id, created.Id)

	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestRepositoryImpl_List_Filters(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)
	cardId := 9
	march := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	items := []Transaction{
		{Description: "a", Amount: decimal.NewFromInt(1), Date: march, Type: Expense, CardId: &cardId},
		{Description: "b", Amount: decimal.NewFromInt(2), Date: march, Type: Income},
		{Description: "c", Amount: decimal.NewFromInt(3), Date: march.AddDate(0, 1, 0), Type: Expense},
	}
	for _, item := range items {
		item.Category = category.FromPredefined(category.Other)
		item.Installments = 1
		_, err := repo.Create(ctx, userId, item)
		require.NoError(t, err)
	}

	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	all, err := repo.List(ctx, userId, Filter{})
	require.NoError(t, err)
	inMarch, err := repo.List(ctx, userId, Filter{Month: &month})
	require.NoError(t, err)
	incomes, err := repo.List(ctx, userId, Filter{Type: Income})
	require.NoError(t, err)
	onCard, err := repo.List(ctx, userId, Filter{CardId: &cardId})
	require.NoError(t, err)

	assert.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Description)
	assert.Len(t, inMarch, 2)
	require.Len(t, incomes, 1)
	assert.Equal(t, "b", incomes[0].Description)
	require.Len(t, onCard, 1)
	assert.Equal(t, "a", onCard[0].Description)
}

func TestRepositoryImpl_DeleteGroupFrom(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)
	groupId := uuid.New()
	parts, err := ExpandInstallments(InstallmentPurchase{
		Description: "Couch",
		Amount:      decimal.NewFromInt(400),
		StartDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Count:       4,
		Category:    category.FromPredefined(category.Housing),
	}, groupId)
	require.NoError(t, err)
	for _, p := range parts {
		_, err := repo.Create(ctx, userId, p)
		require.NoError(t, err)
	}

	deleted, err := repo.DeleteGroupFrom(ctx, userId, groupId, parts[1].Date)

	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	remaining, err := repo.List(ctx, userId, Filter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Couch (1/4)", remaining[0].Description)
}

func TestRepositoryImpl_WithTransaction_RollsBack(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)

	err := repo.WithTransaction(ctx, func(txRepo Repository) error {
		_, err := txRepo.Create(ctx, userId, Transaction{
			Description: "x", Amount: decimal.NewFromInt(1), Date: time.Now(), Type: Expense,
			Category: category.FromPredefined(category.Other), Installments: 1,
		})
		require.NoError(t, err)
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	stored, err := repo.List(ctx, userId, Filter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRepositoryImpl_Recategorize(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)
	created, err := repo.Create(ctx, userId, Transaction{
		Description: "Vet", Amount: decimal.NewFromInt(50), Date: time.Now(), Type: Expense,
		Category: category.FromCustom("pets"), Installments: 1,
	})
	require.NoError(t, err)

	updated, err := repo.Recategorize(ctx, userId, "pets", "other")

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	stored, err := repo.Get(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "other", stored.Category.String())
}
