package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Envelope is the {success, data, message, pagination} wrapper some
// endpoints put around their payload.
type Envelope struct {
	Success    *bool           `json:"success,omitempty"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Unwrap decodes raw into out whether or not the body is enveloped. The
// envelope, when present, is returned for its metadata.
func Unwrap(raw json.RawMessage, out any) (*Envelope, error) {
	env, ok := detectEnvelope(raw)
	body := raw
	if ok {
		body = env.Data
	}
	if out != nil && len(body) > 0 && string(body) != "null" {
		if err := json.Unmarshal(body, out); err != nil {
			return env, apperrors.NewDecodeError(http.StatusOK, fmt.Errorf("decode payload: %w", err))
		}
	}
	return env, nil
}

func detectEnvelope(raw json.RawMessage) (*Envelope, bool) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, false
	}
	if _, hasData := keys["data"]; !hasData {
		return nil, false
	}
	_, hasSuccess := keys["success"]
	_, hasPagination := keys["pagination"]
	_, hasMessage := keys["message"]
	if !hasSuccess && !hasPagination && !hasMessage && len(keys) != 1 {
		return nil, false
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	return &env, true
}
