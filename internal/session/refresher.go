package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/events"
	"github.com/spec-kit/adoption-client/internal/tokenstore"
	"github.com/spec-kit/adoption-client/internal/transport"
)

const refreshPath = "/auth/refresh"

// EventSessionExpired is published when the credential could not be renewed.
const EventSessionExpired = events.EventSessionExpired

// ErrNoToken is returned when an auth endpoint answers without a token.
var ErrNoToken = errors.New("session: response carried no token")

// Refresher renews the credential using the refresh cookie. Concurrent
// callers share one in-flight refresh.
type Refresher struct {
	client *transport.Client
	store  *tokenstore.Store
	events events.Dispatcher
	logger *zap.Logger
	group  singleflight.Group
}

// NewRefresher builds a Refresher. client must not retry on 401 itself; a
// chain without RefreshOn401 and without credential attachment is expected.
func NewRefresher(client *transport.Client, store *tokenstore.Store, dispatcher events.Dispatcher, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher(logger)
	}
	return &Refresher{client: client, store: store, events: dispatcher, logger: logger}
}

// Refresh obtains and stores a new credential. On failure the store is
// cleared and EventSessionExpired is published.
func (r *Refresher) Refresh(ctx context.Context) (domain.Credential, error) {
	ch := r.group.DoChan(refreshPath, func() (any, error) {
		// the shared call must outlive any single caller's cancellation
		return r.refresh(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return domain.Credential{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Credential{}, res.Err
		}
		if res.Shared {
			r.logger.Debug("joined in-flight refresh")
		}
		return res.Val.(domain.Credential), nil
	}
}

func (r *Refresher) refresh(ctx context.Context) (domain.Credential, error) {
	var raw json.RawMessage
	err := r.client.Do(ctx, http.MethodPost, refreshPath, nil, nil, &raw)
	var resp domain.AuthResponse
	if err == nil {
		_, err = transport.Unwrap(raw, &resp)
	}
	if err == nil && resp.Token == "" {
		err = ErrNoToken
	}
	if err == nil {
		cred := tokenstore.NewCredential(resp.Token)
		profile := resp.User
		if profile == nil {
			// same account, so the cached profile carries over
			profile, _ = r.store.Profile(ctx)
		}
		if err = r.store.Set(ctx, cred, true); err == nil {
			if profile != nil {
				if perr := r.store.SetProfile(ctx, profile); perr != nil {
					r.logger.Warn("caching refreshed profile failed", zap.Error(perr))
				}
			}
			r.logger.Info("credential refreshed", zap.Time("expires_at", cred.ExpiresAt))
			r.events.Publish(ctx, events.New(events.EventCredentialRefreshed, resp.User, ""))
			return cred, nil
		}
	}

	r.logger.Info("credential refresh failed, signing out", zap.Error(err))
	if cerr := r.store.Clear(ctx); cerr != nil {
		r.logger.Error("clearing credential store failed", zap.Error(cerr))
	}
	r.events.Publish(ctx, events.New(EventSessionExpired, nil, err.Error()))
	return domain.Credential{}, err
}
