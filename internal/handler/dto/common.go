// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"errors"
	"sort"

	"github.com/jellydator/validation"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination provides cursor-based pagination info.
type Pagination struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// ListResponse represents a paginated list.
type ListResponse[T any] struct {
	Data       []T         `json:"data"`
	Pagination *Pagination `json:"pagination"`
}

// NewListResponse builds a ListResponse. Data is never null.
func NewListResponse[T any](data []T, nextCursor string, hasMore bool) *ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &ListResponse[T]{
		Data:       data,
		Pagination: &Pagination{NextCursor: nextCursor, HasMore: hasMore},
	}
}

// FirstError returns the message of the first failing field, in field name
// order so responses are deterministic.
func FirstError(err error) string {
	var errs validation.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	first := errs[fields[0]]
	var nested validation.Errors
	if errors.As(first, &nested) {
		return FirstError(nested)
	}
	return first.Error()
}
