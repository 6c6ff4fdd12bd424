package resource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/spec-kit/adoption-client/internal/transport"
	"github.com/spec-kit/adoption-client/internal/validation"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

// Page is one page of a list response. Pagination fields are zero when the
// API returned a bare array.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// crud implements the operations every resource shares. T is the record,
// C the create payload and U the update payload.
type crud[T, C, U any] struct {
	client *transport.Client
	path   string
}

func newCRUD[T, C, U any](client *transport.Client, path string) crud[T, C, U] {
	return crud[T, C, U]{client: client, path: path}
}

// Get fetches one record by id.
func (c crud[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	target, err := c.item(id)
	if err != nil {
		return nil, err
	}
	var out T
	if err := c.call(ctx, http.MethodGet, target, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create validates in and posts it.
func (c crud[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var out T
	if err := c.call(ctx, http.MethodPost, c.path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update validates in and puts it to the record with the given id.
func (c crud[T, C, U]) Update(ctx context.Context, id string, in U) (*T, error) {
	target, err := c.item(id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var out T
	if err := c.call(ctx, http.MethodPut, target, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the record with the given id.
func (c crud[T, C, U]) Delete(ctx context.Context, id string) error {
	target, err := c.item(id)
	if err != nil {
		return err
	}
	return c.client.Do(ctx, http.MethodDelete, target, nil, nil, nil)
}

func (c crud[T, C, U]) list(ctx context.Context, query url.Values) (*Page[T], error) {
	return c.listAt(ctx, c.path, query)
}

func (c crud[T, C, U]) listAt(ctx context.Context, path string, query url.Values) (*Page[T], error) {
	var raw json.RawMessage
	if err := c.client.Do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	page := &Page[T]{}
	env, err := transport.Unwrap(raw, &page.Items)
	if err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	if env != nil && env.Pagination != nil {
		page.Page = env.Pagination.Page
		page.Limit = env.Pagination.Limit
		page.Total = env.Pagination.Total
		page.TotalPages = env.Pagination.TotalPages
	} else {
		page.Total = len(page.Items)
	}
	return page, nil
}

// createAndList creates in and only then fetches the list again.
func (c crud[T, C, U]) createAndList(ctx context.Context, in C, query url.Values) (*T, *Page[T], error) {
	created, err := c.Create(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	page, err := c.list(ctx, query)
	if err != nil {
		return created, nil, err
	}
	return created, page, nil
}

func (c crud[T, C, U]) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var raw json.RawMessage
	if err := c.client.Do(ctx, method, path, query, body, &raw); err != nil {
		return err
	}
	_, err := transport.Unwrap(raw, out)
	return err
}

func (c crud[T, C, U]) item(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.NewLocalValidation(map[string]string{"id": "is required"})
	}
	return c.path + "/" + url.PathEscape(id), nil
}
