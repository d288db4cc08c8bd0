package service

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// generateULID returns a new lexicographically sortable ID.
func generateULID() string {
	return ulid.Make().String()
}

// normalizeLimit applies the default and the cap to a requested page size.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
