package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/memore/memore/internal/model"
)

// BoardFilter defines filters for listing boards. UserID is mandatory.
type BoardFilter struct {
	UserID   string
	Category string
}

const boardColumns = `id, user_id, title, category, summary, is_completed, created_at`

// CreateBoard inserts a new board.
func (r *Repository) CreateBoard(ctx context.Context, board *model.Board) error {
	query := `
		INSERT INTO boards (id, user_id, title, category, summary, is_completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		board.ID,
		board.UserID,
		board.Title,
		board.Category,
		board.Summary,
		board.IsCompleted,
		board.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	return nil
}

// GetBoard retrieves a board owned by userID.
// Boards of other users are reported as ErrBoardNotFound.
func (r *Repository) GetBoard(ctx context.Context, userID, id string) (*model.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE id = $1 AND user_id = $2`

	board, err := scanBoard(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	return board, nil
}

// ListBoards retrieves a page of the user's boards in creation order.
func (r *Repository) ListBoards(ctx context.Context, filter BoardFilter, cursor string, limit int) ([]*model.Board, string, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE user_id = $1`
	args := []any{filter.UserID}
	argIndex := 2

	if cursor != "" {
		c, err := DecodeCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		query += fmt.Sprintf(" AND (created_at, id) > ($%d, $%d)", argIndex, argIndex+1)
		args = append(args, c.CreatedAt, c.ID)
		argIndex += 2
	}

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d", argIndex)
	args = append(args, limit+1) // one extra row tells us whether there is a next page

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	var boards []*model.Board
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating boards: %w", err)
	}

	var nextCursor string
	if len(boards) > limit {
		boards = boards[:limit]
		last := boards[len(boards)-1]
		nextCursor = EncodeCursor(&PaginationCursor{ID: last.ID, CreatedAt: last.CreatedAt})
	}

	return boards, nextCursor, nil
}

// UpdateBoard writes the mutable fields of a board owned by board.UserID.
func (r *Repository) UpdateBoard(ctx context.Context, board *model.Board) error {
	query := `
		UPDATE boards
		SET title = $3, category = $4, summary = $5, is_completed = $6
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		board.ID,
		board.UserID,
		board.Title,
		board.Category,
		board.Summary,
		board.IsCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBoardNotFound
	}

	return nil
}

// UpdateBoardSummary stores a generated summary on the board.
func (r *Repository) UpdateBoardSummary(ctx context.Context, id, summary string) error {
	result, err := r.pool.Exec(ctx, `UPDATE boards SET summary = $2 WHERE id = $1`, id, summary)
	if err != nil {
		return fmt.Errorf("failed to update board summary: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBoardNotFound
	}

	return nil
}

// DeleteBoard removes a board owned by userID together with its memos.
func (r *Repository) DeleteBoard(ctx context.Context, userID, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBoardNotFound
	}

	return nil
}

func scanBoard(row pgx.Row) (*model.Board, error) {
	var board model.Board
	err := row.Scan(
		&board.ID,
		&board.UserID,
		&board.Title,
		&board.Category,
		&board.Summary,
		&board.IsCompleted,
		&board.CreatedAt,
	)
	return &board, err
}
