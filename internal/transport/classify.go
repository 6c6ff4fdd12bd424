package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

const maxErrorBody = 1 << 20

// Classify turns transport failures into network errors and non-2xx
// responses into classified *util.APIError values.
func Classify() Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.Do(req)
			if err != nil {
				var apiErr *apperrors.APIError
				if errors.As(err, &apiErr) {
					return nil, apiErr
				}
				return nil, apperrors.NewNetworkError(err)
			}
			if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
				return resp, nil
			}
			defer resp.Body.Close()
			return nil, ErrorFromResponse(resp)
		})
	}
}

// ErrorFromResponse reads the error body of resp and classifies it. A
// non-JSON body is kept under the "body" key of the payload.
func ErrorFromResponse(resp *http.Response) *apperrors.APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			payload = map[string]any{"body": string(raw)}
		}
	}
	return apperrors.FromResponse(resp.StatusCode, payload)
}
