package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	List(ctx context.Context, userId int) ([]CustomCategory, error)
	Get(ctx context.Context, userId int, id int) (CustomCategory, error)
	GetByName(ctx context.Context, userId int, name string) (CustomCategory, error)
	Create(ctx context.Context, userId int, category CustomCategory) (CustomCategory, error)
	Update(ctx context.Context, userId int, category CustomCategory) (CustomCategory, error)
	Delete(ctx context.Context, userId int, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]CustomCategory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, icon, color FROM custom_category WHERE user_id = $1 ORDER BY name`, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	categories := make([]CustomCategory, 0)
	for rows.Next() {
		var c CustomCategory
		if err := rows.Scan(&c.Id, &c.Name, &c.Icon, &c.Color); err != nil {
			log.Errorf("failed to scan custom category: %v", err)
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (CustomCategory, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, icon, color FROM custom_category WHERE user_id = $1 AND id = $2`, userId, id)
	return scanOne(row)
}

func (r *RepositoryImpl) GetByName(ctx context.Context, userId int, name string) (CustomCategory, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, icon, color FROM custom_category WHERE user_id = $1 AND name = $2`, userId, name)
	return scanOne(row)
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, category CustomCategory) (CustomCategory, error) {
	query := `INSERT INTO custom_category (user_id, name, icon, color) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, query, userId, category.Name, category.Icon, category.Color).Scan(&category.Id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return CustomCategory{}, ErrCategoryExists
		}
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return CustomCategory{}, err
	}
	return category, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, category CustomCategory) (CustomCategory, error) {
	result, err := r.db.Exec(ctx, `UPDATE custom_category SET icon = $1, color = $2 WHERE user_id = $3 AND id = $4`,
		category.Icon, category.Color, userId, category.Id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return CustomCategory{}, err
	}
	if result.RowsAffected() == 0 {
		return CustomCategory{}, ErrCategoryNotFound
	}
	return r.Get(ctx, userId, category.Id)
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM custom_category WHERE user_id = $1 AND id = $2`, userId, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func scanOne(row pgx.Row) (CustomCategory, error) {
	var c CustomCategory
	err := row.Scan(&c.Id, &c.Name, &c.Icon, &c.Color)
	if errors.Is(err, pgx.ErrNoRows) {
		return CustomCategory{}, ErrCategoryNotFound
	}
	if err != nil {
		log.Errorf("failed to get custom category: %v", err)
		return CustomCategory{}, err
	}
	return c, nil
}
