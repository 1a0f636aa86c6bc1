package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	List(ctx context.Context, userId int) ([]FinancialGoal, error)
	Get(ctx context.Context, userId int, id int) (FinancialGoal, error)
	Create(ctx context.Context, userId int, goal FinancialGoal) (FinancialGoal, error)
	// Update changes everything but the current amount.
	Update(ctx context.Context, userId int, goal FinancialGoal) (FinancialGoal, error)
	Delete(ctx context.Context, userId int, id int) error
	AddProgress(ctx context.Context, userId int, id int, amount decimal.Decimal) (FinancialGoal, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const columns = "id, title, icon, target_amount, current_amount, deadline"

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]FinancialGoal, error) {
	rows, err := r.db.Query(ctx, "SELECT "+columns+" FROM financial_goal WHERE user_id = $1 ORDER BY id", userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	goals := make([]FinancialGoal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			log.Errorf("failed to scan goal: %v", err)
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return goals, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (FinancialGoal, error) {
	row := r.db.QueryRow(ctx, "SELECT "+columns+" FROM financial_goal WHERE user_id = $1 AND id = $2", userId, id)
	return r.scanOne(row)
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, goal FinancialGoal) (FinancialGoal, error) {
	query := `INSERT INTO financial_goal (user_id, title, icon, target_amount, current_amount, deadline)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + columns
	row := r.db.QueryRow(ctx, query, userId, goal.Title, goal.Icon, goal.TargetAmount, goal.CurrentAmount, goal.Deadline)
	return r.scanOne(row)
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, goal FinancialGoal) (FinancialGoal, error) {
	query := `UPDATE financial_goal SET title = $1, icon = $2, target_amount = $3, deadline = $4
				WHERE user_id = $5 AND id = $6 RETURNING ` + columns
	row := r.db.QueryRow(ctx, query, goal.Title, goal.Icon, goal.TargetAmount, goal.Deadline, userId, goal.Id)
	return r.scanOne(row)
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) error {
	result, err := r.db.Exec(ctx, "DELETE FROM financial_goal WHERE user_id = $1 AND id = $2", userId, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *RepositoryImpl) AddProgress(ctx context.Context, userId int, id int, amount decimal.Decimal) (FinancialGoal, error) {
	query := `UPDATE financial_goal SET current_amount = current_amount + $1
				WHERE user_id = $2 AND id = $3 RETURNING ` + columns
	return r.scanOne(r.db.QueryRow(ctx, query, amount, userId, id))
}

func (r *RepositoryImpl) scanOne(row pgx.Row) (FinancialGoal, error) {
	g, err := scanGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return FinancialGoal{}, ErrGoalNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return FinancialGoal{}, err
	}
	return g, nil
}

func scanGoal(row pgx.Row) (FinancialGoal, error) {
	var g FinancialGoal
	err := row.Scan(&g.Id, &g.Title, &g.Icon, &g.TargetAmount, &g.CurrentAmount, &g.Deadline)
	return g, err
}
