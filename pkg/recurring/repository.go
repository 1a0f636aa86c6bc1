package recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta/internal/database"
	"github.com/moneta-app/moneta/pkg/category"
	"github.com/moneta-app/moneta/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	List(ctx context.Context, userId int) ([]RecurringExpense, error)
	Get(ctx context.Context, userId int, id int) (RecurringExpense, error)
	Create(ctx context.Context, userId int, e RecurringExpense) (RecurringExpense, error)
	Update(ctx context.Context, userId int, e RecurringExpense) (RecurringExpense, error)
	Delete(ctx context.Context, userId int, id int) error
	// ListDue locks and returns the active expenses of all users due at now.
	ListDue(ctx context.Context, now time.Time) ([]RecurringExpense, error)
	// SaveProgress stores the trigger date and active flag of an expense handled by the job.
	SaveProgress(ctx context.Context, e RecurringExpense) error
	InsertTransaction(ctx context.Context, userId int, t transaction.Transaction) (int, error)
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

const selectColumns = `SELECT id, user_id, description, amount, category, frequency, next_trigger_date, end_date, active
				FROM recurring_expense`

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]RecurringExpense, error) {
	return r.query(ctx, selectColumns+" WHERE user_id = $1 ORDER BY next_trigger_date, id", userId)
}

func (r *RepositoryImpl) ListDue(ctx context.Context, now time.Time) ([]RecurringExpense, error) {
	return r.query(ctx,
		selectColumns+" WHERE active AND next_trigger_date <= $1 ORDER BY id FOR UPDATE",
		now)
}

func (r *RepositoryImpl) query(ctx context.Context, query string, args ...any) ([]RecurringExpense, error) {
	rows, err := r.querier().Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := make([]RecurringExpense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			log.Errorf("failed to scan recurring expense: %v", err)
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return expenses, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (RecurringExpense, error) {
	row := r.querier().QueryRow(ctx, selectColumns+" WHERE user_id = $1 AND id = $2", userId, id)
	e, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return RecurringExpense{}, ErrRecurringNotFound
	}
	if err != nil {
		log.Errorf("failed to get recurring expense: %v", err)
		return RecurringExpense{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, e RecurringExpense) (RecurringExpense, error) {
	query := `INSERT INTO recurring_expense (user_id, description, amount, category, frequency, next_trigger_date,
				end_date, active)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.querier().QueryRow(ctx, query,
		userId,
		e.Description,
		e.Amount,
		e.Category.String(),
		string(e.Frequency),
		e.NextTriggerDate,
		e.EndDate,
		e.Active,
	).Scan(&e.Id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return RecurringExpense{}, err
	}
	e.UserId = userId
	return e, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, e RecurringExpense) (RecurringExpense, error) {
	query := `UPDATE recurring_expense SET description = $1, amount = $2, category = $3, frequency = $4,
				next_trigger_date = $5, end_date = $6, active = $7
				WHERE user_id = $8 AND id = $9`
	result, err := r.querier().Exec(ctx, query,
		e.Description,
		e.Amount,
		e.Category.String(),
		string(e.Frequency),
		e.NextTriggerDate,
		e.EndDate,
		e.Active,
		userId,
		e.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return RecurringExpense{}, err
	}
	if result.RowsAffected() == 0 {
		return RecurringExpense{}, ErrRecurringNotFound
	}
	return r.Get(ctx, userId, e.Id)
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) error {
	result, err := r.querier().Exec(ctx, `DELETE FROM recurring_expense WHERE user_id = $1 AND id = $2`, userId, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRecurringNotFound
	}
	return nil
}

func (r *RepositoryImpl) SaveProgress(ctx context.Context, e RecurringExpense) error {
	_, err := r.querier().Exec(ctx,
		`UPDATE recurring_expense SET next_trigger_date = $1, active = $2 WHERE id = $3`,
		e.NextTriggerDate, e.Active, e.Id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) InsertTransaction(ctx context.Context, userId int, t transaction.Transaction) (int, error) {
	query := `INSERT INTO transactions (user_id, description, amount, date, type, category, installments,
				recurring_expense_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int
	err := r.querier().QueryRow(ctx, query,
		userId,
		t.Description,
		t.Amount,
		t.Date,
		string(t.Type),
		t.Category.String(),
		t.Installments,
		t.RecurringExpenseId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Recategorize(ctx context.Context, userId int, from string, to string) (int, error) {
	result, err := r.querier().Exec(ctx,
		`UPDATE recurring_expense SET category = $1 WHERE user_id = $2 AND category = $3`, to, userId, from)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}
	return int(result.RowsAffected()), nil
}

func scanExpense(row pgx.Row) (RecurringExpense, error) {
	var e RecurringExpense
	var categoryName, frequency string
	err := row.Scan(
		&e.Id,
		&e.UserId,
		&e.Description,
		&e.Amount,
		&categoryName,
		&frequency,
		&e.NextTriggerDate,
		&e.EndDate,
		&e.Active,
	)
	if err != nil {
		return RecurringExpense{}, err
	}
	e.Category = category.FromStored(categoryName)
	e.Frequency = Frequency(frequency)
	return e, nil
}
