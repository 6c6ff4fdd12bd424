package transport

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader correlates client and server logs.
const RequestIDHeader = "X-Request-ID"

// RequestID stamps each request with a fresh id unless one is set.
func RequestID() Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(RequestIDHeader) == "" {
				req = req.Clone(req.Context())
				req.Header.Set(RequestIDHeader, uuid.NewString())
			}
			return next.Do(req)
		})
	}
}
