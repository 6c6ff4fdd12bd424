package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed API call.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindServer       Kind = "server"
	KindNetwork      Kind = "network"
)

const (
	// StatusNetwork is reported when no response was received.
	StatusNetwork = 0
	// StatusLocal is reported when the request was rejected before dispatch.
	StatusLocal = -1
)

// APIError is the normalized form of any request failure.
type APIError struct {
	Kind    Kind
	Message string
	Status  int
	Payload map[string]any
	Fields  map[string]string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s, status %d): %v", e.Message, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s (%s, status %d)", e.Message, e.Kind, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewLocalValidation reports input rejected before any network call.
func NewLocalValidation(fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: "invalid input",
		Status:  StatusLocal,
		Fields:  fields,
	}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) *APIError {
	msg := "unable to reach the API, check your connection"
	if isTimeout(err) {
		msg = "the API took too long to respond"
	}
	return &APIError{Kind: KindNetwork, Message: msg, Status: StatusNetwork, Err: err}
}

// NewDecodeError reports a successful status whose body could not be read.
func NewDecodeError(status int, err error) *APIError {
	return &APIError{Kind: KindServer, Message: "the API returned an unreadable response", Status: status, Err: err}
}

// FromResponse classifies an HTTP error status with its decoded body.
func FromResponse(status int, payload map[string]any) *APIError {
	apiErr := &APIError{Status: status, Payload: payload}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.Kind = KindUnauthorized
	case status == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case status >= 500:
		apiErr.Kind = KindServer
	default:
		apiErr.Kind = KindValidation
		apiErr.Fields = fieldErrors(payload)
	}
	apiErr.Message = payloadMessage(payload)
	if apiErr.Message == "" {
		apiErr.Message = defaultMessage(apiErr.Kind)
	}
	return apiErr
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// Retryable reports whether repeating the call is safe. Network failures are
// always retryable, server failures only for idempotent methods.
func Retryable(err error, method string) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Kind {
	case KindNetwork:
		return true
	case KindServer:
		switch method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return true
		}
	}
	return false
}

func defaultMessage(kind Kind) string {
	switch kind {
	case KindUnauthorized:
		return "authentication required, please sign in again"
	case KindNotFound:
		return "the requested resource was not found"
	case KindServer:
		return "the server failed to process the request, try again later"
	case KindValidation:
		return "the request was rejected"
	default:
		return "unexpected error"
	}
}

// payloadMessage accepts both {"message": ".."} and {"error": {"message": ".."}}.
func payloadMessage(payload map[string]any) string {
	if payload == nil {
		return ""
	}
	if msg, ok := payload["message"].(string); ok && msg != "" {
		return msg
	}
	if nested, ok := payload["error"].(map[string]any); ok {
		if msg, ok := nested["message"].(string); ok {
			return msg
		}
	}
	if msg, ok := payload["error"].(string); ok {
		return msg
	}
	return ""
}

// fieldErrors reads {"errors": {"field": ["msg", ..]}} or {"errors": {"field": "msg"}},
// falling back to the mock server's {"error": {"details": {...}}} envelope.
func fieldErrors(payload map[string]any) map[string]string {
	if payload == nil {
		return nil
	}
	raw, ok := payload["errors"].(map[string]any)
	if !ok {
		if nested, ok := payload["error"].(map[string]any); ok {
			raw, _ = nested["details"].(map[string]any)
		}
	}
	if len(raw) == 0 {
		return nil
	}
	fields := make(map[string]string, len(raw))
	for field, val := range raw {
		switch v := val.(type) {
		case string:
			fields[field] = v
		case []any:
			msgs := make([]string, 0, len(v))
			for _, m := range v {
				if s, ok := m.(string); ok {
					msgs = append(msgs, s)
				}
			}
			fields[field] = strings.Join(msgs, "; ")
		}
	}
	return fields
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	if errors.As(err, &te) && te.Timeout() {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "deadline exceeded")
}

// DomainError standardizes errors returned by the mock API handlers.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
