package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/events"
	"github.com/spec-kit/adoption-client/internal/tokenstore"
	"github.com/spec-kit/adoption-client/internal/transport"
	"github.com/spec-kit/adoption-client/internal/validation"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Session tracks the signed-in user on top of the credential store.
type Session struct {
	client *transport.Client
	store  *tokenstore.Store
	events events.Dispatcher
	logger *zap.Logger

	mu   sync.RWMutex
	user *domain.User
}

// New builds a Session. client is the full pipeline used for API calls.
func New(client *transport.Client, store *tokenstore.Store, dispatcher events.Dispatcher, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher(logger)
	}
	s := &Session{client: client, store: store, events: dispatcher, logger: logger}
	dispatcher.Subscribe(EventSessionExpired, func(context.Context, events.Event) error {
		s.setUser(nil)
		return nil
	})
	return s
}

// Events exposes the dispatcher so callers can subscribe to lifecycle events.
func (s *Session) Events() events.Dispatcher {
	return s.events
}

// Hydrate restores the session from a stored credential at startup. A
// rejected credential is cleared; a network failure keeps it together with
// the cached profile.
func (s *Session) Hydrate(ctx context.Context) error {
	if _, ok := s.store.Valid(ctx); !ok {
		return nil
	}
	if cached, ok := s.store.Profile(ctx); ok {
		s.setUser(cached)
	}
	if _, err := s.CurrentUser(ctx); err != nil {
		if apperrors.IsKind(err, apperrors.KindUnauthorized) || apperrors.IsKind(err, apperrors.KindNotFound) {
			s.logger.Info("stored credential rejected", zap.Error(err))
			s.setUser(nil)
			return s.store.Clear(ctx)
		}
		return err
	}
	return nil
}

// Login signs in and stores the credential durably when remember is set.
func (s *Session) Login(ctx context.Context, req domain.LoginRequest, remember bool) (*domain.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, "/auth/login", req, remember)
}

// Register creates an account and signs in.
func (s *Session) Register(ctx context.Context, req domain.RegisterRequest, remember bool) (*domain.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, "/auth/register", req, remember)
}

func (s *Session) authenticate(ctx context.Context, path string, body any, remember bool) (*domain.User, error) {
	var raw json.RawMessage
	// a 401 here means wrong credentials, not an expired session
	if err := s.client.Do(transport.WithoutRefresh(ctx), http.MethodPost, path, nil, body, &raw); err != nil {
		return nil, err
	}
	var resp domain.AuthResponse
	if _, err := transport.Unwrap(raw, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrNoToken
	}
	if err := s.store.Set(ctx, tokenstore.NewCredential(resp.Token), remember); err != nil {
		return nil, err
	}

	user := resp.User
	if user == nil {
		fetched, err := s.CurrentUser(ctx)
		if err != nil {
			// a sign-in without a profile leaves no credential behind
			if cerr := s.store.Clear(ctx); cerr != nil {
				s.logger.Error("clearing credential store failed", zap.Error(cerr))
			}
			s.setUser(nil)
			return nil, err
		}
		user = fetched
	} else {
		s.remember(ctx, user)
	}

	s.logger.Info("signed in", zap.String("user_id", user.ID), zap.Bool("remember", remember))
	s.events.Publish(ctx, events.New(events.EventSignedIn, user, ""))
	return user, nil
}

// Logout notifies the API and always clears local state. Only a failure to
// clear the store is returned.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.client.Do(transport.WithoutRefresh(ctx), http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		s.logger.Warn("logout endpoint failed", zap.Error(err))
	}
	s.setUser(nil)
	err := s.store.Clear(ctx)
	s.events.Publish(ctx, events.New(events.EventSignedOut, nil, ""))
	return err
}

// CurrentUser fetches the profile of the signed-in user and caches it.
func (s *Session) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := s.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	s.remember(ctx, &user)
	return &user, nil
}

// RefreshUser reloads the profile when authenticated. A failure signs the
// user out locally.
func (s *Session) RefreshUser(ctx context.Context) error {
	if !s.IsAuthenticated(ctx) {
		return nil
	}
	if _, err := s.CurrentUser(ctx); err != nil {
		s.logger.Warn("failed to refresh user", zap.Error(err))
		s.setUser(nil)
		if cerr := s.store.Clear(ctx); cerr != nil {
			return errors.Join(err, cerr)
		}
		return err
	}
	return nil
}

// User returns the signed-in user, or nil.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports a known user holding an unexpired credential.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	if s.User() == nil {
		return false
	}
	_, ok := s.store.Valid(ctx)
	return ok
}

// UpdateProfile changes name or phone of the signed-in user.
func (s *Session) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	if !s.IsAuthenticated(ctx) {
		return nil, ErrNotAuthenticated
	}
	if err := validation.Struct(update); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := s.client.Do(ctx, http.MethodPut, "/auth/profile", nil, update, &raw); err != nil {
		return nil, err
	}
	var user domain.User
	if _, err := transport.Unwrap(raw, &user); err != nil {
		return nil, err
	}
	s.remember(ctx, &user)
	return &user, nil
}

// ChangePassword replaces the password of the signed-in user.
func (s *Session) ChangePassword(ctx context.Context, change domain.PasswordChange) error {
	if !s.IsAuthenticated(ctx) {
		return ErrNotAuthenticated
	}
	if err := validation.Struct(change); err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodPut, "/auth/change-password", nil, change, nil)
}

type forgotPassword struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestPasswordReset asks the API to send a reset link to email.
func (s *Session) RequestPasswordReset(ctx context.Context, email string) error {
	req := forgotPassword{Email: email}
	if err := validation.Struct(req); err != nil {
		return err
	}
	return s.client.Do(transport.WithoutRefresh(ctx), http.MethodPost, "/auth/forgot-password", nil, req, nil)
}

// ResetPassword sets a new password using a reset token.
func (s *Session) ResetPassword(ctx context.Context, reset domain.PasswordReset) error {
	if err := validation.Struct(reset); err != nil {
		return err
	}
	return s.client.Do(transport.WithoutRefresh(ctx), http.MethodPost, "/auth/reset-password", nil, reset, nil)
}

// VerifyEmail redeems an email verification token. The cached profile is
// updated when the token belongs to the signed-in account.
func (s *Session) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	req := domain.EmailVerification{Token: strings.TrimSpace(token)}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := s.client.Do(transport.WithoutRefresh(ctx), http.MethodPost, "/auth/verify-email", nil, req, &raw); err != nil {
		return nil, err
	}
	var user domain.User
	if _, err := transport.Unwrap(raw, &user); err != nil {
		return nil, err
	}
	if current := s.User(); current != nil && current.ID == user.ID {
		s.remember(ctx, &user)
	}
	return &user, nil
}

func (s *Session) get(ctx context.Context, path string, out any) error {
	var raw json.RawMessage
	if err := s.client.Do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return err
	}
	_, err := transport.Unwrap(raw, out)
	return err
}

func (s *Session) remember(ctx context.Context, user *domain.User) {
	s.setUser(user)
	if err := s.store.SetProfile(ctx, user); err != nil {
		s.logger.Warn("caching profile failed", zap.Error(err))
	}
}

func (s *Session) setUser(user *domain.User) {
	var copied *domain.User
	if user != nil {
		u := *user
		copied = &u
	}
	s.mu.Lock()
	s.user = copied
	s.mu.Unlock()
}
