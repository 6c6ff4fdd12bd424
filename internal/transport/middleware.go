package transport

import (
	"context"
	"net/http"
)

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to Doer.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Middleware decorates a Doer.
type Middleware func(next Doer) Doer

// Chain wraps base with mws; the first middleware is the outermost.
func Chain(base Doer, mws ...Middleware) Doer {
	doer := base
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			doer = mws[i](doer)
		}
	}
	return doer
}

type ctxKey int

const (
	retriedKey ctxKey = iota
	noRefreshKey
)

// WithoutRefresh marks calls whose 401 must not trigger a refresh, such as
// login with wrong credentials.
func WithoutRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRefreshKey, true)
}

func refreshDisabled(ctx context.Context) bool {
	v, _ := ctx.Value(noRefreshKey).(bool)
	return v
}

func markRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey, true)
}

// Retried reports whether the request is the replay after a refresh.
func Retried(ctx context.Context) bool {
	v, _ := ctx.Value(retriedKey).(bool)
	return v
}
