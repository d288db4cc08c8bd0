package service

import (
	"errors"

	"github.com/memore/memore/internal/repository"
)

// Service errors.
var (
	// Accounts
	ErrMissingFields       = errors.New("username, password, nickname and email are required")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidUsername     = errors.New("username must not contain '@'")
	ErrUsernameTooLong     = errors.New("username too long")
	ErrEmailTooLong        = errors.New("email too long")
	ErrNicknameTooLong     = errors.New("nickname too long")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrPasswordTooLong     = errors.New("password too long")
	ErrUsernameTaken       = errors.New("username already in use")
	ErrEmailTaken          = errors.New("email already registered")
	ErrNicknameTaken       = errors.New("nickname already in use")
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrUserNotFound        = errors.New("user not found")
	ErrWrongPassword       = errors.New("wrong password")
	ErrResetFieldsRequired = errors.New("email and new password are required")
	ErrResetDisabled       = errors.New("unverified password reset is disabled")
	ErrNicknameRequired    = errors.New("nickname must not be blank")
	ErrForbidden           = errors.New("not allowed to modify another user")

	// Boards and memos
	ErrBoardNotFound   = errors.New("board not found")
	ErrMemoNotFound    = errors.New("memo not found")
	ErrTitleRequired   = errors.New("board title is required")
	ErrTitleTooLong    = errors.New("board title too long")
	ErrCategoryTooLong = errors.New("board category too long")
	ErrBoardRequired   = errors.New("memo board is required")
	ErrContentRequired = errors.New("memo content is required")
	ErrInvalidCursor   = errors.New("invalid pagination cursor")
)

// translateStoreError maps repository sentinels onto service sentinels.
// Anything unknown passes through for the caller to wrap.
func translateStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrBoardNotFound):
		return ErrBoardNotFound
	case errors.Is(err, repository.ErrMemoNotFound):
		return ErrMemoNotFound
	case errors.Is(err, repository.ErrUsernameTaken):
		return ErrUsernameTaken
	case errors.Is(err, repository.ErrEmailTaken):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrNicknameTaken):
		return ErrNicknameTaken
	case errors.Is(err, repository.ErrInvalidCursor):
		return ErrInvalidCursor
	}
	return err
}
