package model

import (
	"strings"
	"time"
)

// Memo is a single timestamped note on a board.
// A memo is only visible to the user who created it.
type Memo struct {
	ID         string    `json:"id"`
	BoardID    string    `json:"board"`
	UserID     string    `json:"user"`
	Content    string    `json:"content"`
	IsFinished bool      `json:"is_finished"`
	Summary    *string   `json:"summary"`
	CreatedAt  time.Time `json:"timestamp"`
}

// IsBlank reports whether the memo has no summarizable content.
func (m *Memo) IsBlank() bool {
	return strings.TrimSpace(m.Content) == ""
}
