package repository

import (
	"context"
	"sync"
	"time"
)

// RefreshToken is an opaque token carried in the refresh cookie.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// RefreshTokenRepository stores issued refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	Get(ctx context.Context, token string) (*RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type refreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]RefreshToken
}

// NewRefreshTokenRepository returns an in-memory implementation.
func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{tokens: make(map[string]RefreshToken)}
}

func (r *refreshTokenRepository) Create(_ context.Context, token *RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tokens[token.Token]; exists {
		return ErrDuplicate
	}
	r.tokens[token.Token] = *token
	return nil
}

func (r *refreshTokenRepository) Get(_ context.Context, token string) (*RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &stored, nil
}

func (r *refreshTokenRepository) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return ErrNotFound
	}
	if stored.RevokedAt == nil {
		now := time.Now().UTC()
		stored.RevokedAt = &now
		r.tokens[token] = stored
	}
	return nil
}

func (r *refreshTokenRepository) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, token := range r.tokens {
		if token.RevokedAt != nil || now.After(token.ExpiresAt) {
			delete(r.tokens, key)
			removed++
		}
	}
	return removed, nil
}
