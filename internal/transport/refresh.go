package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/adoption-client/internal/domain"
)

// Refresher obtains a new credential after the current one was rejected.
// Implementations store the new credential, or clear the store on failure.
type Refresher interface {
	Refresh(ctx context.Context) (domain.Credential, error)
}

// refreshState names the steps of the single-retry recovery for logs.
type refreshState string

const (
	stateIdle       refreshState = "idle"
	stateRefreshing refreshState = "refreshing"
	stateRetried    refreshState = "retried"
)

// RefreshOn401 recovers from one unauthorized response per request: it asks
// the refresher for a new credential and replays the request exactly once.
// A replayed request that is rejected again is returned as is, and so is the
// original response when the refresh fails.
func RefreshOn401(refresher Refresher, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.Do(req)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}
			ctx := req.Context()
			if Retried(ctx) || refreshDisabled(ctx) {
				return resp, nil
			}

			original, err := bufferResponse(resp)
			if err != nil {
				return nil, err
			}

			retry, ok := replayable(req)
			if !ok {
				logger.Warn("request body not replayable, skipping refresh", zap.String("path", req.URL.Path))
				return original, nil
			}

			logger.Debug("unauthorized response", zap.String("path", req.URL.Path), zap.String("refresh_state", string(stateRefreshing)))
			cred, err := refresher.Refresh(ctx)
			if err != nil {
				logger.Info("session refresh failed", zap.String("path", req.URL.Path), zap.String("refresh_state", string(stateIdle)), zap.Error(err))
				return original, nil
			}

			retry = retry.WithContext(markRetried(ctx))
			retry.Header.Set("Authorization", "Bearer "+cred.Token)
			logger.Debug("replaying request", zap.String("path", req.URL.Path), zap.String("refresh_state", string(stateRetried)))
			return next.Do(retry)
		})
	}
}

// bufferResponse reads and closes the body so the response can be returned
// after other requests were made.
func bufferResponse(resp *http.Response) (*http.Response, error) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return resp, nil
}

// replayable clones req with a fresh body.
func replayable(req *http.Request) (*http.Request, bool) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	clone.Body = body
	return clone, true
}
