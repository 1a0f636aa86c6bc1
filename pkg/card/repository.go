package card

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	List(ctx context.Context, userId int) ([]CreditCard, error)
	Get(ctx context.Context, userId int, id int) (CreditCard, error)
	Create(ctx context.Context, userId int, card CreditCard) (CreditCard, error)
	Update(ctx context.Context, userId int, card CreditCard) (CreditCard, error)
	Delete(ctx context.Context, userId int, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]CreditCard, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, total_limit, color, closing_day, kind FROM credit_card WHERE user_id = $1 ORDER BY id`, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	cards := make([]CreditCard, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Errorf("failed to scan card: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (CreditCard, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, total_limit, color, closing_day, kind FROM credit_card WHERE user_id = $1 AND id = $2`, userId, id)
	c, err := scanCard(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return CreditCard{}, ErrCardNotFound
	}
	if err != nil {
		log.Errorf("failed to get card: %v", err)
		return CreditCard{}, err
	}
	return c, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, card CreditCard) (CreditCard, error) {
	query := `INSERT INTO credit_card (user_id, name, total_limit, color, closing_day, kind)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRow(ctx, query, userId, card.Name, card.TotalLimit, card.Color, card.ClosingDay, string(card.Kind)).
		Scan(&card.Id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return CreditCard{}, err
	}
	return card, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, card CreditCard) (CreditCard, error) {
	query := `UPDATE credit_card SET name = $1, total_limit = $2, color = $3, closing_day = $4, kind = $5
				WHERE user_id = $6 AND id = $7`
	result, err := r.db.Exec(ctx, query, card.Name, card.TotalLimit, card.Color, card.ClosingDay, string(card.Kind), userId, card.Id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return CreditCard{}, err
	}
	if result.RowsAffected() == 0 {
		return CreditCard{}, ErrCardNotFound
	}
	return card, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM credit_card WHERE user_id = $1 AND id = $2`, userId, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}

func scanCard(row pgx.Row) (CreditCard, error) {
	var c CreditCard
	var kind string
	if err := row.Scan(&c.Id, &c.Name, &c.TotalLimit, &c.Color, &c.ClosingDay, &kind); err != nil {
		return CreditCard{}, err
	}
	c.Kind = Kind(kind)
	return c, nil
}
