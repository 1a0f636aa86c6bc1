package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/idtoken"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the identity extracted from a validated token.
type Claims struct {
	Subject string
	Email   string
	Name    string
}

type TokenValidator interface {
	Validate(ctx context.Context, token string) (Claims, error)
}

// GoogleTokenValidator validates Google-issued ID tokens for one OAuth client id.
type GoogleTokenValidator struct {
	audience string
	validate func(ctx context.Context, token string, audience string) (*idtoken.Payload, error)
}

func NewGoogleTokenValidator(audience string) *GoogleTokenValidator {
	return &GoogleTokenValidator{
		audience: audience,
		validate: idtoken.Validate,
	}
}

func (v *GoogleTokenValidator) Validate(ctx context.Context, token string) (Claims, error) {
	payload, err := v.validate(ctx, token, v.audience)
	if err != nil {
		log.Debugf("id token rejected: %v", err)
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if payload.Subject == "" {
		return Claims{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return Claims{
		Subject: payload.Subject,
		Email:   stringClaim(payload.Claims, "email"),
		Name:    stringClaim(payload.Claims, "name"),
	}, nil
}

func stringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}

// HasSecret reports whether the request carries secret as its bearer token.
func HasSecret(r *http.Request, secret string) bool {
	if secret == "" {
		return false
	}
	token, err := BearerToken(r)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
