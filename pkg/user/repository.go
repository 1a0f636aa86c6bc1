package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	DeleteUser(ctx context.Context, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectUser = `SELECT id, uid, email, display_name, currency, insight_persona FROM users`

func (r *RepositoryImpl) CreateUser(ctx context.Context, user User) (int, error) {
	settings := user.Settings.withDefaults()
	query := `INSERT INTO users (uid, email, display_name, currency, insight_persona)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		user.Uid,
		user.Email,
		user.DisplayName,
		settings.Currency,
		settings.InsightPersona,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetUser(ctx context.Context, id int) (User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, selectUser+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user with id %d not found", id)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (r *RepositoryImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, selectUser+" WHERE uid = $1", uid))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user with uid %s not found", uid)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (r *RepositoryImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	settings := user.Settings.withDefaults()
	query := `UPDATE users SET email = $1, display_name = $2, currency = $3, insight_persona = $4 WHERE id = $5`
	result, err := r.db.Exec(ctx, query,
		user.Email,
		user.DisplayName,
		settings.Currency,
		settings.InsightPersona,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return User{}, err
	}
	if result.RowsAffected() == 0 {
		log.Info("no rows affected of updating user")
		return User{}, ErrUserNotFound
	}
	return r.GetUser(ctx, userId)
}

func (r *RepositoryImpl) DeleteUser(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.Id,
		&user.Uid,
		&user.Email,
		&user.DisplayName,
		&user.Settings.Currency,
		&user.Settings.InsightPersona,
	)
	return user, err
}
