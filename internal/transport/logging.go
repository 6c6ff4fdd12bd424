package transport

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/adoption-client/internal/observability"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

// Logging records every call with zap and the in-memory metrics.
func Logging(logger *zap.Logger, metrics *observability.Metrics) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(req)
			elapsed := time.Since(start)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("request_id", req.Header.Get(RequestIDHeader)),
				zap.Duration("duration", elapsed),
			}

			if err != nil {
				status, kind := apperrors.StatusNetwork, apperrors.KindNetwork
				var apiErr *apperrors.APIError
				if errors.As(err, &apiErr) {
					status, kind = apiErr.Status, apiErr.Kind
				}
				metrics.RecordRequest(req.URL.Path, req.Method, status, elapsed)
				metrics.RecordError(req.URL.Path, req.Method, string(kind))
				logger.Warn("api request failed", append(fields, zap.Int("status", status), zap.Error(err))...)
				return nil, err
			}

			metrics.RecordRequest(req.URL.Path, req.Method, resp.StatusCode, elapsed)
			fields = append(fields, zap.Int("status", resp.StatusCode))
			switch {
			case resp.StatusCode >= 500:
				metrics.RecordError(req.URL.Path, req.Method, string(apperrors.KindServer))
				logger.Error("api server error", fields...)
			case resp.StatusCode >= 400:
				kind := apperrors.FromResponse(resp.StatusCode, nil).Kind
				metrics.RecordError(req.URL.Path, req.Method, string(kind))
				logger.Info("api request rejected", fields...)
			default:
				logger.Debug("api request", fields...)
			}
			return resp, nil
		})
	}
}
