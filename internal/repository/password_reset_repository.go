package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken represents a stored reset token.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// PasswordResetRepository manages password reset tokens.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type passwordResetRepository struct {
	mu     sync.Mutex
	tokens map[string]PasswordResetToken
}

// NewPasswordResetRepository constructs repository.
func NewPasswordResetRepository() PasswordResetRepository {
	return &passwordResetRepository{tokens: make(map[string]PasswordResetToken)}
}

func (r *passwordResetRepository) Create(_ context.Context, token *PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now().UTC()
	r.tokens[token.Token] = *token
	return nil
}

func (r *passwordResetRepository) GetByToken(_ context.Context, tokenStr string) (*PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, ErrNotFound
	}
	return &token, nil
}

func (r *passwordResetRepository) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, token := range r.tokens {
		if token.ID == id {
			now := time.Now().UTC()
			token.UsedAt = &now
			r.tokens[key] = token
			return nil
		}
	}
	return ErrNotFound
}

func (r *passwordResetRepository) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, token := range r.tokens {
		if token.UsedAt != nil || now.After(token.ExpiresAt) {
			delete(r.tokens, key)
			removed++
		}
	}
	return removed, nil
}
