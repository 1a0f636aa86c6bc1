package google

import (
	"context"

	"golang.org/x/oauth2"
)

type pendingAuth struct {
	userId int
	token  *oauth2.Token
}

type AuthRepositoryStub struct {
	byNonce map[string]*pendingAuth
}

func NewAuthRepositoryStub() *AuthRepositoryStub {
	return &AuthRepositoryStub{byNonce: map[string]*pendingAuth{}}
}

func (s *AuthRepositoryStub) StartAuth(ctx context.Context, userId int, nonce string) error {
	_ = s.DeleteAuth(ctx, userId)
	s.byNonce[nonce] = &pendingAuth{userId: userId}
	return nil
}

func (s *AuthRepositoryStub) StoreToken(ctx context.Context, nonce string, token *oauth2.Token) error {
	auth, ok := s.byNonce[nonce]
	if !ok {
		return ErrUnknownNonce
	}
	auth.token = token
	return nil
}

func (s *AuthRepositoryStub) GetToken(ctx context.Context, userId int) (*oauth2.Token, error) {
	for _, auth := range s.byNonce {
		if auth.userId == userId {
			return auth.token, nil
		}
	}
	return nil, nil
}

func (s *AuthRepositoryStub) DeleteAuth(ctx context.Context, userId int) error {
	for nonce, auth := range s.byNonce {
		if auth.userId == userId {
			delete(s.byNonce, nonce)
		}
	}
	return nil
}

// Nonces returns the pending nonces of userId.
func (s *AuthRepositoryStub) Nonces(userId int) []string {
	nonces := make([]string, 0)
	for nonce, auth := range s.byNonce {
		if auth.userId == userId {
			nonces = append(nonces, nonce)
		}
	}
	return nonces
}

func (s *AuthRepositoryStub) Cleanup() {
	s.byNonce = map[string]*pendingAuth{}
}
