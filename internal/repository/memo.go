package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/memore/memore/internal/model"
)

// MemoFilter defines filters for listing memos. UserID is mandatory.
type MemoFilter struct {
	UserID  string
	BoardID string
}

const memoColumns = `id, board_id, user_id, content, is_finished, summary, created_at`

// CreateMemo inserts a new memo.
func (r *Repository) CreateMemo(ctx context.Context, memo *model.Memo) error {
	query := `
		INSERT INTO memos (id, board_id, user_id, content, is_finished, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		memo.ID,
		memo.BoardID,
		memo.UserID,
		memo.Content,
		memo.IsFinished,
		memo.Summary,
		memo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create memo: %w", err)
	}

	return nil
}

// GetMemo retrieves a memo created by userID.
func (r *Repository) GetMemo(ctx context.Context, userID, id string) (*model.Memo, error) {
	query := `SELECT ` + memoColumns + ` FROM memos WHERE id = $1 AND user_id = $2`

	memo, err := scanMemo(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemoNotFound
		}
		return nil, fmt.Errorf("failed to get memo: %w", err)
	}

	return memo, nil
}

// ListMemos retrieves a page of the user's memos in creation order.
func (r *Repository) ListMemos(ctx context.Context, filter MemoFilter, cursor string, limit int) ([]*model.Memo, string, error) {
	query := `SELECT ` + memoColumns + ` FROM memos WHERE user_id = $1`
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

	if filter.BoardID != "" {
		query += fmt.Sprintf(" AND board_id = $%d", argIndex)
		args = append(args, filter.BoardID)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d", argIndex)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list memos: %w", err)
	}
	defer rows.Close()

	var memos []*model.Memo
	for rows.Next() {
		memo, err := scanMemo(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan memo: %w", err)
		}
		memos = append(memos, memo)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating memos: %w", err)
	}

	var nextCursor string
	if len(memos) > limit {
		memos = memos[:limit]
		last := memos[len(memos)-1]
		nextCursor = EncodeCursor(&PaginationCursor{ID: last.ID, CreatedAt: last.CreatedAt})
	}

	return memos, nextCursor, nil
}

// ListMemoContents returns the content of every memo on a board written by
// userID, oldest first. Blank-only rows are dropped in SQL.
func (r *Repository) ListMemoContents(ctx context.Context, boardID, userID string) ([]string, error) {
	query := `
		SELECT content
		FROM memos
		WHERE board_id = $1 AND user_id = $2 AND btrim(content) <> ''
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, boardID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memo contents: %w", err)
	}

	contents, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect memo contents: %w", err)
	}

	return contents, nil
}

// UpdateMemo writes the mutable fields of a memo created by memo.UserID.
func (r *Repository) UpdateMemo(ctx context.Context, memo *model.Memo) error {
	query := `
		UPDATE memos
		SET content = $3, is_finished = $4, summary = $5
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		memo.ID,
		memo.UserID,
		memo.Content,
		memo.IsFinished,
		memo.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to update memo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrMemoNotFound
	}

	return nil
}

// DeleteMemo removes a memo created by userID. The board is untouched.
func (r *Repository) DeleteMemo(ctx context.Context, userID, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM memos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete memo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrMemoNotFound
	}

	return nil
}

func scanMemo(row pgx.Row) (*model.Memo, error) {
	var memo model.Memo
	err := row.Scan(
		&memo.ID,
		&memo.BoardID,
		&memo.UserID,
		&memo.Content,
		&memo.IsFinished,
		&memo.Summary,
		&memo.CreatedAt,
	)
	return &memo, err
}
