package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/memore/memore/internal/metrics"
	"github.com/memore/memore/internal/model"
	"github.com/memore/memore/internal/repository"
)

// MemoService handles owner-scoped memo CRUD.
type MemoService struct {
	memos   MemoStore
	boards  BoardStore
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewMemoService creates a new MemoService.
func NewMemoService(memos MemoStore, boards BoardStore, recorder metrics.Recorder, logger *slog.Logger) *MemoService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoService{
		memos:   memos,
		boards:  boards,
		metrics: recorder,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateMemoInput defines input for creating a memo.
type CreateMemoInput struct {
	BoardID    string
	Content    string
	IsFinished bool
}

// CreateMemo adds a memo to a board. The board must belong to userID.
func (s *MemoService) CreateMemo(ctx context.Context, userID string, input CreateMemoInput) (*model.Memo, error) {
	boardID := strings.TrimSpace(input.BoardID)
	if boardID == "" {
		return nil, ErrBoardRequired
	}
	if isBlank(input.Content) {
		return nil, ErrContentRequired
	}

	if _, err := s.boards.GetBoard(ctx, userID, boardID); err != nil {
		if errors.Is(translateStoreError(err), ErrBoardNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	memo := &model.Memo{
		ID:         generateULID(),
		BoardID:    boardID,
		UserID:     userID,
		Content:    input.Content,
		IsFinished: input.IsFinished,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.memos.CreateMemo(ctx, memo); err != nil {
		return nil, fmt.Errorf("failed to create memo: %w", err)
	}

	s.metrics.IncMemoCreated()
	s.logger.Info("memo_created",
		slog.String("memo_id", memo.ID),
		slog.String("board_id", boardID),
		slog.String("user_id", userID),
	)

	return memo, nil
}

// GetMemo returns a memo created by userID.
func (s *MemoService) GetMemo(ctx context.Context, userID, id string) (*model.Memo, error) {
	memo, err := s.memos.GetMemo(ctx, userID, id)
	if err != nil {
		if errors.Is(translateStoreError(err), ErrMemoNotFound) {
			return nil, ErrMemoNotFound
		}
		return nil, fmt.Errorf("failed to get memo: %w", err)
	}
	return memo, nil
}

// ListMemosInput defines filters for listing memos.
type ListMemosInput struct {
	BoardID string
	Cursor  string
	Limit   int
}

// ListMemosOutput is one page of memos.
type ListMemosOutput struct {
	Memos      []*model.Memo
	NextCursor string
	HasMore    bool
}

// ListMemos returns the caller's memos in creation order, optionally limited
// to one board.
func (s *MemoService) ListMemos(ctx context.Context, userID string, input ListMemosInput) (*ListMemosOutput, error) {
	filter := repository.MemoFilter{
		UserID:  userID,
		BoardID: strings.TrimSpace(input.BoardID),
	}

	memos, next, err := s.memos.ListMemos(ctx, filter, input.Cursor, normalizeLimit(input.Limit))
	if err != nil {
		if errors.Is(translateStoreError(err), ErrInvalidCursor) {
			return nil, ErrInvalidCursor
		}
		return nil, fmt.Errorf("failed to list memos: %w", err)
	}

	return &ListMemosOutput{
		Memos:      memos,
		NextCursor: next,
		HasMore:    next != "",
	}, nil
}

// UpdateMemoInput defines the editable memo fields. Nil means unchanged.
type UpdateMemoInput struct {
	Content    *string
	IsFinished *bool
	Summary    *string
}

// UpdateMemo applies a partial update to a memo created by userID.
func (s *MemoService) UpdateMemo(ctx context.Context, userID, id string, input UpdateMemoInput) (*model.Memo, error) {
	memo, err := s.GetMemo(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		if isBlank(*input.Content) {
			return nil, ErrContentRequired
		}
		memo.Content = *input.Content
	}
	if input.IsFinished != nil {
		memo.IsFinished = *input.IsFinished
	}
	if input.Summary != nil {
		memo.Summary = input.Summary
	}

	if err := s.memos.UpdateMemo(ctx, memo); err != nil {
		if errors.Is(translateStoreError(err), ErrMemoNotFound) {
			return nil, ErrMemoNotFound
		}
		return nil, fmt.Errorf("failed to update memo: %w", err)
	}

	return memo, nil
}

// DeleteMemo removes a memo created by userID. Its board is left intact.
func (s *MemoService) DeleteMemo(ctx context.Context, userID, id string) error {
	if err := s.memos.DeleteMemo(ctx, userID, id); err != nil {
		if errors.Is(translateStoreError(err), ErrMemoNotFound) {
			return ErrMemoNotFound
		}
		return fmt.Errorf("failed to delete memo: %w", err)
	}

	s.metrics.IncMemoDeleted()
	s.logger.Info("memo_deleted",
		slog.String("memo_id", id),
		slog.String("user_id", userID),
	)

	return nil
}
