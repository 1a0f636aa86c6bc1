package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta/internal/database"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var ErrUnknownNonce = errors.New("unknown oauth state nonce")

type AuthRepository interface {
	// StartAuth replaces any stored authorization of the user with a pending one identified by nonce.
	StartAuth(ctx context.Context, userId int, nonce string) error
	// StoreToken completes the pending authorization identified by nonce.
	StoreToken(ctx context.Context, nonce string, token *oauth2.Token) error
	// GetToken returns nil when the user has not authorized calendar access.
	GetToken(ctx context.Context, userId int) (*oauth2.Token, error)
	DeleteAuth(ctx context.Context, userId int) error
}

type AuthRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepositoryImpl {
	return &AuthRepositoryImpl{db: db}
}

func (r *AuthRepositoryImpl) StartAuth(ctx context.Context, userId int, nonce string) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM google_calendar_auth WHERE user_id = $1", userId); err != nil {
			log.Errorf("failed to delete old Google auth row for user %d: %v", userId, err)
			return err
		}
		if _, err := tx.Exec(ctx, "INSERT INTO google_calendar_auth (user_id, nonce) VALUES ($1, $2)", userId, nonce); err != nil {
			log.Errorf("failed to store Google auth nonce for user %d: %v", userId, err)
			return err
		}
		return nil
	})
}

func (r *AuthRepositoryImpl) StoreToken(ctx context.Context, nonce string, token *oauth2.Token) error {
	result, err := r.db.Exec(ctx,
		"UPDATE google_calendar_auth SET access_token = $1, refresh_token = $2, expiry = $3 WHERE nonce = $4",
		token.AccessToken, token.RefreshToken, token.Expiry.Unix(), nonce)
	if err != nil {
		err := fmt.Errorf("unable to store Google auth token for nonce: %v", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUnknownNonce
	}
	return nil
}

func (r *AuthRepositoryImpl) GetToken(ctx context.Context, userId int) (*oauth2.Token, error) {
	var accessToken, refreshToken *string
	var expiry *int64
	err := r.db.QueryRow(ctx,
		"SELECT access_token, refresh_token, expiry FROM google_calendar_auth WHERE user_id = $1", userId).
		Scan(&accessToken, &refreshToken, &expiry)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google auth token: %v", err)
	}
	// login started but the callback never completed
	if accessToken == nil {
		return nil, nil
	}

	token := &oauth2.Token{AccessToken: *accessToken}
	if refreshToken != nil {
		token.RefreshToken = *refreshToken
	}
	if expiry != nil {
		token.Expiry = time.Unix(*expiry, 0)
	}
	return token, nil
}

func (r *AuthRepositoryImpl) DeleteAuth(ctx context.Context, userId int) error {
	_, err := r.db.Exec(ctx, "DELETE FROM google_calendar_auth WHERE user_id = $1", userId)
	if err != nil {
		log.Errorf("failed to delete Google auth row for user %d: %v", userId, err)
		return err
	}
	return nil
}
