package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Board field limits.
const (
	MaxBoardTitleLength    = 100
	MaxBoardCategoryLength = 100
	DefaultBoardCategory   = "기본"
)

// Board is a topic container owned by one user.
// Deleting a board deletes its memos.
type Board struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Summary     string    `json:"summary"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidBoardTitle reports whether title is non-blank and within limits.
func ValidBoardTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	return trimmed != "" && utf8.RuneCountInString(trimmed) <= MaxBoardTitleLength
}

// ValidBoardCategory reports whether category fits the column.
func ValidBoardCategory(category string) bool {
	return utf8.RuneCountInString(category) <= MaxBoardCategoryLength
}
