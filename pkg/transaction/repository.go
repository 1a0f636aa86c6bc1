package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta/internal/database"
	"github.com/moneta-app/moneta/pkg/category"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	List(ctx context.Context, userId int, filter Filter) ([]Transaction, error)
	Get(ctx context.Context, userId int, id int) (Transaction, error)
	Create(ctx context.Context, userId int, t Transaction) (Transaction, error)
	Update(ctx context.Context, userId int, t Transaction) (Transaction, error)
	Delete(ctx context.Context, userId int, id int) (int, error)
	// DeleteGroupFrom removes every transaction of the installment group dated at or after from.
	DeleteGroupFrom(ctx context.Context, userId int, groupId uuid.UUID, from time.Time) (int, error)
	Recategorize(ctx context.Context, userId int, from string, to string) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) querier() database.Querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&RepositoryImpl{db: r.db, tx: tx})
	})
}

const selectColumns = `SELECT id, description, amount, date, type, category, installments, installment_group_id,
				card_id, recurring_expense_id, created FROM transactions`

func (r *RepositoryImpl) List(ctx context.Context, userId int, filter Filter) ([]Transaction, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userId}
	if filter.Month != nil {
		start := time.Date(filter.Month.Year(), filter.Month.Month(), 1, 0, 0, 0, 0, filter.Month.Location())
		args = append(args, start, start.AddDate(0, 1, 0))
		conditions = append(conditions, fmt.Sprintf("date >= $%d AND date < $%d", len(args)-1, len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.CardId != nil {
		args = append(args, *filter.CardId)
		conditions = append(conditions, fmt.Sprintf("card_id = $%d", len(args)))
	}

	query := selectColumns + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY date DESC, id DESC"
	rows, err := r.querier().Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			log.Errorf("failed to scan transaction: %v", err)
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return transactions, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (Transaction, error) {
	row := r.querier().QueryRow(ctx, selectColumns+" WHERE user_id = $1 AND id = $2", userId, id)
	t, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		log.Errorf("failed to get transaction: %v", err)
		return Transaction{}, err
	}
	return t, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, t Transaction) (Transaction, error) {
	query := `INSERT INTO transactions (user_id, description, amount, date, type, category, installments,
				installment_group_id, card_id, recurring_expense_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created`
	err := r.querier().QueryRow(ctx, query,
		userId,
		t.Description,
		t.Amount,
		t.Date,
		string(t.Type),
		t.Category.String(),
		t.Installments,
		t.InstallmentGroupId,
		t.CardId,
		t.RecurringExpenseId,
	).Scan(&t.Id, &t.Created)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Transaction{}, err
	}
	return t, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, t Transaction) (Transaction, error) {
	query := `UPDATE transactions SET description = $1, amount = $2, date = $3, type = $4, category = $5, card_id = $6
				WHERE user_id = $7 AND id = $8`
	result, err := r.querier().Exec(ctx, query,
		t.Description,
		t.Amount,
		t.Date,
		string(t.Type),
		t.Category.String(),
		t.CardId,
		userId,
		t.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Transaction{}, err
	}
	if result.RowsAffected() == 0 {
		return Transaction{}, ErrTransactionNotFound
	}
	return r.Get(ctx, userId, t.Id)
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) (int, error) {
	result, err := r.querier().Exec(ctx, `DELETE FROM transactions WHERE user_id = $1 AND id = $2`, userId, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}
	return int(result.RowsAffected()), nil
}

func (r *RepositoryImpl) DeleteGroupFrom(ctx context.Context, userId int, groupId uuid.UUID, from time.Time) (int, error) {
	result, err := r.querier().Exec(ctx,
		`DELETE FROM transactions WHERE user_id = $1 AND installment_group_id = $2 AND date >= $3`,
		userId, groupId, from)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}
	return int(result.RowsAffected()), nil
}

func (r *RepositoryImpl) Recategorize(ctx context.Context, userId int, from string, to string) (int, error) {
	result, err := r.querier().Exec(ctx,
		`UPDATE transactions SET category = $1 WHERE user_id = $2 AND category = $3`, to, userId, from)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}
	return int(result.RowsAffected()), nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	var txType, categoryName string
	err := row.Scan(
		&t.Id,
		&t.Description,
		&t.Amount,
		&t.Date,
		&txType,
		&categoryName,
		&t.Installments,
		&t.InstallmentGroupId,
		&t.CardId,
		&t.RecurringExpenseId,
		&t.Created,
	)
	if err != nil {
		return Transaction{}, err
	}
	t.Type = Type(txType)
	t.Category = category.FromStored(categoryName)
	return t, nil
}
