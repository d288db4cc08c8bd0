package service

import (
	"context"
	"time"

	"github.com/memore/memore/internal/model"
	"github.com/memore/memore/internal/repository"
)

// UserStore is the user persistence used by AccountService.
// *repository.Repository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByNickname(ctx context.Context, nickname string) (*model.User, error)
	ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error)
	UpdateUserProfile(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error
	DeleteUser(ctx context.Context, id string) error
}

// BoardStore is the board persistence used by BoardService and SummaryService.
type BoardStore interface {
	CreateBoard(ctx context.Context, board *model.Board) error
	GetBoard(ctx context.Context, userID, id string) (*model.Board, error)
	ListBoards(ctx context.Context, filter repository.BoardFilter, cursor string, limit int) ([]*model.Board, string, error)
	UpdateBoard(ctx context.Context, board *model.Board) error
	UpdateBoardSummary(ctx context.Context, id, summary string) error
	DeleteBoard(ctx context.Context, userID, id string) error
}

// MemoStore is the memo persistence used by MemoService and SummaryService.
type MemoStore interface {
	CreateMemo(ctx context.Context, memo *model.Memo) error
	GetMemo(ctx context.Context, userID, id string) (*model.Memo, error)
	ListMemos(ctx context.Context, filter repository.MemoFilter, cursor string, limit int) ([]*model.Memo, string, error)
	ListMemoContents(ctx context.Context, boardID, userID string) ([]string, error)
	UpdateMemo(ctx context.Context, memo *model.Memo) error
	DeleteMemo(ctx context.Context, userID, id string) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID, username string) (string, time.Time, error)
}

// SessionInvalidator drops cached identities after account changes.
type SessionInvalidator interface {
	DeleteAuthContext(ctx context.Context, userID string) error
}

// Summarizer turns memo text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
