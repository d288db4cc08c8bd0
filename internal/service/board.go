package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/memore/memore/internal/metrics"
	"github.com/memore/memore/internal/model"
	"github.com/memore/memore/internal/repository"
)

// BoardService handles owner-scoped board CRUD.
type BoardService struct {
	boards  BoardStore
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewBoardService creates a new BoardService.
func NewBoardService(boards BoardStore, recorder metrics.Recorder, logger *slog.Logger) *BoardService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardService{
		boards:  boards,
		metrics: recorder,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateBoardInput defines input for creating a board.
type CreateBoardInput struct {
	Title       string
	Category    string
	Summary     string
	IsCompleted bool
}

// CreateBoard creates a board owned by userID.
func (s *BoardService) CreateBoard(ctx context.Context, userID string, input CreateBoardInput) (*model.Board, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}

	board := &model.Board{
		ID:          generateULID(),
		UserID:      userID,
		Title:       title,
		Category:    category,
		Summary:     input.Summary,
		IsCompleted: input.IsCompleted,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.boards.CreateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	s.metrics.IncBoardCreated()
	s.logger.Info("board_created",
		slog.String("board_id", board.ID),
		slog.String("user_id", userID),
	)

	return board, nil
}

// GetBoard returns a board owned by userID.
func (s *BoardService) GetBoard(ctx context.Context, userID, id string) (*model.Board, error) {
	board, err := s.boards.GetBoard(ctx, userID, id)
	if err != nil {
		if errors.Is(translateStoreError(err), ErrBoardNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	return board, nil
}

// ListBoardsInput defines filters for listing boards.
type ListBoardsInput struct {
	Category string
	Cursor   string
	Limit    int
}

// ListBoardsOutput is one page of boards.
type ListBoardsOutput struct {
	Boards     []*model.Board
	NextCursor string
	HasMore    bool
}

// ListBoards returns the caller's boards in creation order.
func (s *BoardService) ListBoards(ctx context.Context, userID string, input ListBoardsInput) (*ListBoardsOutput, error) {
	filter := repository.BoardFilter{
		UserID:   userID,
		Category: strings.TrimSpace(input.Category),
	}

	boards, next, err := s.boards.ListBoards(ctx, filter, input.Cursor, normalizeLimit(input.Limit))
	if err != nil {
		if errors.Is(translateStoreError(err), ErrInvalidCursor) {
			return nil, ErrInvalidCursor
		}
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	return &ListBoardsOutput{
		Boards:     boards,
		NextCursor: next,
		HasMore:    next != "",
	}, nil
}

// UpdateBoardInput defines the editable board fields. Nil means unchanged.
type UpdateBoardInput struct {
	Title       *string
	Category    *string
	Summary     *string
	IsCompleted *bool
}

// UpdateBoard applies a partial update to a board owned by userID.
func (s *BoardService) UpdateBoard(ctx context.Context, userID, id string, input UpdateBoardInput) (*model.Board, error) {
	board, err := s.GetBoard(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := normalizeTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		board.Title = title
	}
	if input.Category != nil {
		category, err := normalizeCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		board.Category = category
	}
	if input.Summary != nil {
		board.Summary = *input.Summary
	}
	if input.IsCompleted != nil {
		board.IsCompleted = *input.IsCompleted
	}

	if err := s.boards.UpdateBoard(ctx, board); err != nil {
		if errors.Is(translateStoreError(err), ErrBoardNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return board, nil
}

// DeleteBoard removes a board owned by userID and all of its memos.
func (s *BoardService) DeleteBoard(ctx context.Context, userID, id string) error {
	if err := s.boards.DeleteBoard(ctx, userID, id); err != nil {
		if errors.Is(translateStoreError(err), ErrBoardNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to delete board: %w", err)
	}

	s.metrics.IncBoardDeleted()
	s.logger.Info("board_deleted",
		slog.String("board_id", id),
		slog.String("user_id", userID),
	)

	return nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > model.MaxBoardTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// normalizeCategory falls back to the default category for blank input.
func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return model.DefaultBoardCategory, nil
	}
	if !model.ValidBoardCategory(category) {
		return "", ErrCategoryTooLong
	}
	return category, nil
}
