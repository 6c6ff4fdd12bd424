package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/adoption-client/internal/domain"
)

const (
	tokenKeySuffix   = "auth_token"
	profileKeySuffix = "user_data"
)

// Options configures a Store.
type Options struct {
	// Durable survives restarts; Session lasts for the process.
	Durable   Backend
	Session   Backend
	KeyPrefix string
	Logger    *zap.Logger
	Now       func() time.Time
}

// Store is the single source of truth for the current credential. At most
// one credential is held across both scopes.
type Store struct {
	mu         sync.RWMutex
	durable    Backend
	session    Backend
	tokenKey   string
	profileKey string
	logger     *zap.Logger
	now        func() time.Time
}

// New builds a Store. Missing backends default to memory.
func New(opts Options) *Store {
	if opts.Durable == nil {
		opts.Durable = NewMemoryBackend()
	}
	if opts.Session == nil {
		opts.Session = NewMemoryBackend()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		durable:    opts.Durable,
		session:    opts.Session,
		tokenKey:   opts.KeyPrefix + tokenKeySuffix,
		profileKey: opts.KeyPrefix + profileKeySuffix,
		logger:     opts.Logger,
		now:        opts.Now,
	}
}

// Get returns the current credential. Backend failures are logged and read
// as no credential.
func (s *Store) Get(ctx context.Context) (domain.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, _, ok := s.locate(ctx)
	return cred, ok
}

// Valid returns the current credential only if it has not expired.
func (s *Store) Valid(ctx context.Context) (domain.Credential, bool) {
	cred, ok := s.Get(ctx)
	if !ok || s.IsExpired(cred.Token) {
		return domain.Credential{}, false
	}
	return cred, true
}

// Set stores cred in the durable or session scope and removes any
// credential from the other scope. The cached profile is dropped from both
// scopes; callers re-cache it with SetProfile.
func (s *Store) Set(ctx context.Context, cred domain.Credential, persistent bool) error {
	if cred.Token == "" {
		return errors.New("tokenstore: empty token")
	}
	if cred.ExpiresAt.IsZero() {
		cred.ExpiresAt, _ = ExpiryOf(cred.Token)
	}
	cred.Persistent = persistent

	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("tokenstore: encode credential: %w", err)
	}

	target, other := s.session, s.durable
	if persistent {
		target, other = s.durable, s.session
	}

	var ttl time.Duration
	if !cred.ExpiresAt.IsZero() {
		ttl = cred.ExpiresAt.Sub(s.now())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// the cached profile belongs to the credential being replaced
	if err := target.Delete(ctx, s.profileKey); err != nil {
		return fmt.Errorf("tokenstore: drop previous profile: %w", err)
	}
	if err := target.Save(ctx, s.tokenKey, string(raw), ttl); err != nil {
		return fmt.Errorf("tokenstore: save credential: %w", err)
	}
	if err := other.Delete(ctx, s.tokenKey, s.profileKey); err != nil {
		// roll back so two credentials never coexist
		if rbErr := target.Delete(ctx, s.tokenKey); rbErr != nil {
			s.logger.Error("credential rollback failed", zap.Error(rbErr))
		}
		return fmt.Errorf("tokenstore: clear other scope: %w", err)
	}
	return nil
}

// Clear removes the credential and cached profile from both scopes.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(
		s.durable.Delete(ctx, s.tokenKey, s.profileKey),
		s.session.Delete(ctx, s.tokenKey, s.profileKey),
	)
}

// IsExpired decodes the token's exp claim and compares it to the current
// time. Undecodable tokens are expired.
func (s *Store) IsExpired(token string) bool {
	return isExpiredAt(token, s.now())
}

// Profile returns the cached user profile, if any.
func (s *Store) Profile(ctx context.Context) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, backend := range []Backend{s.durable, s.session} {
		raw, ok, err := backend.Load(ctx, s.profileKey)
		if err != nil {
			s.logger.Warn("profile load failed", zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			s.logger.Warn("discarding corrupt profile", zap.Error(err))
			continue
		}
		return &user, true
	}
	return nil, false
}

// SetProfile caches user in the scope holding the current credential.
func (s *Store) SetProfile(ctx context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("tokenstore: nil profile")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("tokenstore: encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cred, backend, ok := s.locate(ctx)
	if !ok {
		return errors.New("tokenstore: no credential to attach profile to")
	}
	var ttl time.Duration
	if !cred.ExpiresAt.IsZero() {
		ttl = cred.ExpiresAt.Sub(s.now())
	}
	if err := backend.Save(ctx, s.profileKey, string(raw), ttl); err != nil {
		return fmt.Errorf("tokenstore: save profile: %w", err)
	}
	return nil
}

// locate finds the credential and the backend holding it. Callers hold mu.
func (s *Store) locate(ctx context.Context) (domain.Credential, Backend, bool) {
	scopes := []struct {
		backend    Backend
		persistent bool
	}{{s.durable, true}, {s.session, false}}

	for _, scope := range scopes {
		raw, ok, err := scope.backend.Load(ctx, s.tokenKey)
		if err != nil {
			s.logger.Warn("credential load failed", zap.Bool("persistent", scope.persistent), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		var cred domain.Credential
		if err := json.Unmarshal([]byte(raw), &cred); err != nil || cred.Token == "" {
			s.logger.Warn("discarding corrupt credential", zap.Bool("persistent", scope.persistent))
			continue
		}
		cred.Persistent = scope.persistent
		return cred, scope.backend, true
	}
	return domain.Credential{}, nil, false
}
