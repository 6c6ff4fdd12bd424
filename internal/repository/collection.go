package repository

import (
	"context"
	"sync"
)

// Collection is an in-memory table of records keyed by id. Listing returns
// records in insertion order.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	idOf  func(T) string
}

// NewCollection builds a collection; idOf extracts the record id.
func NewCollection[T any](idOf func(T) string) *Collection[T] {
	return &Collection[T]{items: make(map[string]T), idOf: idOf}
}

// Insert stores a new record.
func (c *Collection[T]) Insert(_ context.Context, item T) error {
	id := c.idOf(item)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; exists {
		return ErrDuplicate
	}
	c.items[id] = item
	c.order = append(c.order, id)
	return nil
}

// Replace overwrites an existing record.
func (c *Collection[T]) Replace(_ context.Context, item T) error {
	id := c.idOf(item)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; !exists {
		return ErrNotFound
	}
	c.items[id] = item
	return nil
}

func (c *Collection[T]) Get(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

func (c *Collection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return ErrNotFound
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Filter returns the records accepted by keep, in insertion order.
func (c *Collection[T]) Filter(_ context.Context, keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		item := c.items[id]
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Len reports the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
