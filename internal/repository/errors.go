package repository

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Common repository errors.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrBoardNotFound = errors.New("board not found")
	ErrMemoNotFound  = errors.New("memo not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrNicknameTaken = errors.New("nickname already exists")
	ErrInvalidCursor = errors.New("invalid pagination cursor")
)

const pgUniqueViolation = "23505"

// uniqueConstraintErrors maps named unique constraints to the field error
// callers report back to clients.
var uniqueConstraintErrors = map[string]error{
	"users_username_key": ErrUsernameTaken,
	"users_email_key":    ErrEmailTaken,
	"users_nickname_key": ErrNicknameTaken,
}

// uniqueViolation returns the field error for a unique constraint violation,
// or nil when err is something else.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	if mapped, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
		return mapped
	}
	return ErrUsernameTaken
}

// PaginationCursor is the decoded keyset position for list queries.
type PaginationCursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// EncodeCursor encodes a pagination cursor to URL-safe base64.
func EncodeCursor(cursor *PaginationCursor) string {
	data, _ := json.Marshal(cursor)
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeCursor decodes a base64 pagination cursor.
func DecodeCursor(s string) (*PaginationCursor, error) {
	data, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var cursor PaginationCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, ErrInvalidCursor
	}
	if cursor.ID == "" || cursor.CreatedAt.IsZero() {
		return nil, ErrInvalidCursor
	}

	return &cursor, nil
}
