// Package adoption assembles the credential store, request pipeline, session
// and resource clients into one value.
package adoption

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spec-kit/adoption-client/internal/config"
	"github.com/spec-kit/adoption-client/internal/events"
	"github.com/spec-kit/adoption-client/internal/observability"
	"github.com/spec-kit/adoption-client/internal/resource"
	"github.com/spec-kit/adoption-client/internal/session"
	"github.com/spec-kit/adoption-client/internal/tokenstore"
	"github.com/spec-kit/adoption-client/internal/transport"
)

// Options overrides parts of the default wiring.
type Options struct {
	Logger *zap.Logger
	// Durable replaces the Redis or memory durable scope.
	Durable tokenstore.Backend
	// Transport is wrapped with otelhttp; defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// Client is a ready-to-use adoption API client. It is safe for concurrent use.
type Client struct {
	Session   *session.Session
	Animals   *resource.Animals
	Shelters  *resource.Shelters
	Adoptions *resource.Adoptions
	Contact   *resource.Contact
	Store     *tokenstore.Store

	metrics *observability.Metrics
	logger  *zap.Logger
	closers []func(context.Context) error
}

// New wires a client from cfg. The durable credential scope is Redis when
// cfg.Redis.Addr is set, otherwise process memory.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("adoption: nil config")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{metrics: observability.NewMetrics(), logger: logger}

	c.closers = append(c.closers, observability.SetupTracing(ctx, cfg.App.Name, cfg.Telemetry, logger))

	durable := opts.Durable
	if durable == nil {
		if cfg.Redis.Addr != "" {
			backend := tokenstore.NewRedisBackend(cfg.Redis, logger)
			c.closers = append(c.closers, func(context.Context) error {
				backend.Close()
				return nil
			})
			durable = backend
		} else {
			logger.Warn("no redis address configured, remembered sessions last for this process only")
			durable = tokenstore.NewMemoryBackend()
		}
	}
	c.Store = tokenstore.New(tokenstore.Options{
		Durable:   durable,
		Session:   tokenstore.NewMemoryBackend(),
		KeyPrefix: cfg.Store.KeyPrefix,
		Logger:    logger,
	})

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("adoption: cookie jar: %w", err)
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient := &http.Client{Jar: jar, Transport: otelhttp.NewTransport(base)}

	var limiter *rate.Limiter
	if cfg.API.RateLimitRPS > 0 {
		burst := cfg.API.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.API.RateLimitRPS), burst)
	}

	dispatcher := events.NewInMemoryDispatcher(logger)

	// The refresh call carries the cookie only, never a bearer token.
	bare, err := transport.NewClient(transport.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
		Doer:    httpClient,
		Middleware: []transport.Middleware{
			transport.Classify(),
			transport.Logging(logger, c.metrics),
			transport.RateLimit(limiter),
			transport.RequestID(),
		},
	})
	if err != nil {
		return nil, err
	}
	refresher := session.NewRefresher(bare, c.Store, dispatcher, logger)

	client, err := transport.NewClient(transport.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
		Doer:    httpClient,
		Middleware: []transport.Middleware{
			transport.Classify(),
			transport.Logging(logger, c.metrics),
			transport.RateLimit(limiter),
			transport.RequestID(),
			transport.AttachCredential(c.Store),
			transport.RefreshOn401(refresher, logger),
		},
	})
	if err != nil {
		return nil, err
	}

	c.Session = session.New(client, c.Store, dispatcher, logger)
	c.Animals = resource.NewAnimals(client)
	c.Shelters = resource.NewShelters(client)
	c.Adoptions = resource.NewAdoptions(client)
	c.Contact = resource.NewContact(client)
	return c, nil
}

// Events exposes session lifecycle notifications.
func (c *Client) Events() events.Dispatcher {
	return c.Session.Events()
}

// Stats returns request and error counters recorded so far.
func (c *Client) Stats() observability.Snapshot {
	return c.metrics.Snapshot()
}

// Close releases the Redis connection and flushes traces. The stored
// credential is kept.
func (c *Client) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
