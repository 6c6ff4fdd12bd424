package dto

import "github.com/spec-kit/adoption-client/internal/service"

// Envelope wraps resource responses.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination metadata of list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// OK wraps data in a success envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Message builds a success envelope carrying only a message.
func Message(msg string) Envelope {
	return Envelope{Success: true, Message: msg}
}

// List wraps one page of items.
func List[T any](items []T, info service.PageInfo) Envelope {
	if items == nil {
		items = []T{}
	}
	return Envelope{
		Success: true,
		Data:    items,
		Pagination: &Pagination{
			Page:       info.Page,
			Limit:      info.Limit,
			Total:      info.Total,
			TotalPages: info.TotalPages,
		},
	}
}
