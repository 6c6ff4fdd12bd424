package transport

import (
	"context"
	"net/http"

	"github.com/spec-kit/adoption-client/internal/domain"
)

// CredentialSource yields the current unexpired credential.
type CredentialSource interface {
	Valid(ctx context.Context) (domain.Credential, bool)
}

// AttachCredential sets the bearer header when a valid credential exists;
// otherwise the request goes out unauthenticated.
func AttachCredential(src CredentialSource) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") == "" {
				if cred, ok := src.Valid(req.Context()); ok {
					req = req.Clone(req.Context())
					req.Header.Set("Authorization", "Bearer "+cred.Token)
				}
			}
			return next.Do(req)
		})
	}
}
