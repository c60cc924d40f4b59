package schema

import "time"

// Page is the generic pagination envelope for list responses. The element
// type is opaque to the envelope; unions travel through it as their
// serialized tagged forms.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewPage wraps one page of items with pagination arithmetic. page is
// 1-based; size must be positive.
func NewPage[T any](items []T, total, page, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1 && total > 0,
	}
}

// Response is the generic single-result envelope.
type Response[T any] struct {
	Success   bool      `json:"success"`
	Data      *T        `json:"data,omitempty"`
	Message   string    `json:"message,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OK wraps a successful result.
func OK[T any](data T, message string) Response[T] {
	return Response[T]{
		Success:   true,
		Data:      &data,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// Fail wraps a failure with display-ready error strings.
func Fail[T any](message string, errs ...string) Response[T] {
	return Response[T]{
		Success:   false,
		Message:   message,
		Errors:    errs,
		Timestamp: time.Now().UTC(),
	}
}
