package transport

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit delays requests to stay within limiter. Waiting honors the
// request context, so a cancelled call returns immediately.
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(next Doer) Doer {
		if limiter == nil {
			return next
		}
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if err := limiter.Wait(req.Context()); err != nil {
				return nil, err
			}
			return next.Do(req)
		})
	}
}
