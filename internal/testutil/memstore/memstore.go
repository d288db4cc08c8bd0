// Package memstore is an in-memory stand-in for the PostgreSQL repository.
// It enforces the same unique constraints and cascades as the schema so
// service and handler tests can run without a database.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/memore/memore/internal/model"
	"github.com/memore/memore/internal/repository"
)

// Store keeps users, boards and memos in maps guarded by one mutex.
type Store struct {
	mu     sync.Mutex
	users  map[string]model.User
	boards map[string]model.Board
	memos  map[string]model.Memo

	// Err, when set, is returned from every call. Used to simulate outages.
	Err error
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:  make(map[string]model.User),
		boards: make(map[string]model.Board),
		memos:  make(map[string]model.Memo),
	}
}

// Ping implements the readiness check.
func (s *Store) Ping(ctx context.Context) error {
	return s.Err
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if err := s.checkUnique(user); err != nil {
		return err
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Store) checkUnique(user *model.User) error {
	for _, u := range s.users {
		if u.ID == user.ID {
			continue
		}
		switch {
		case u.Username == user.Username:
			return repository.ErrUsernameTaken
		case u.Email == user.Email:
			return repository.ErrEmailTaken
		case u.Nickname == user.Nickname:
			return repository.ErrNicknameTaken
		}
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.ID == id })
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.Username == username })
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.Email == email })
}

func (s *Store) GetUserByNickname(ctx context.Context, nickname string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.Nickname == nickname })
}

func (s *Store) findUser(match func(model.User) bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, u := range s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *Store) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, "", s.Err
	}

	items := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		u := u
		items = append(items, &u)
	}
	return paginate(items, func(u *model.User) (string, time.Time) { return u.ID, u.CreatedAt }, cursor, limit)
}

func (s *Store) UpdateUserProfile(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	existing, ok := s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if err := s.checkUnique(user); err != nil {
		return err
	}
	existing.Nickname = user.Nickname
	existing.Email = user.Email
	s.users[user.ID] = existing
	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	existing, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	existing.PasswordHash = passwordHash
	existing.PasswordChangedAt = &changedAt
	s.users[id] = existing
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	for boardID, b := range s.boards {
		if b.UserID == id {
			s.deleteBoardLocked(boardID)
		}
	}
	for memoID, m := range s.memos {
		if m.UserID == id {
			delete(s.memos, memoID)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Boards
// ---------------------------------------------------------------------------

func (s *Store) CreateBoard(ctx context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.users[board.UserID]; !ok {
		return repository.ErrUserNotFound
	}
	s.boards[board.ID] = *board
	return nil
}

func (s *Store) GetBoard(ctx context.Context, userID, id string) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	b, ok := s.boards[id]
	if !ok || b.UserID != userID {
		return nil, repository.ErrBoardNotFound
	}
	return &b, nil
}

func (s *Store) ListBoards(ctx context.Context, filter repository.BoardFilter, cursor string, limit int) ([]*model.Board, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, "", s.Err
	}

	var items []*model.Board
	for _, b := range s.boards {
		if b.UserID != filter.UserID {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		b := b
		items = append(items, &b)
	}
	return paginate(items, func(b *model.Board) (string, time.Time) { return b.ID, b.CreatedAt }, cursor, limit)
}

func (s *Store) UpdateBoard(ctx context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	existing, ok := s.boards[board.ID]
	if !ok || existing.UserID != board.UserID {
		return repository.ErrBoardNotFound
	}
	existing.Title = board.Title
	existing.Category = board.Category
	existing.Summary = board.Summary
	existing.IsCompleted = board.IsCompleted
	s.boards[board.ID] = existing
	return nil
}

func (s *Store) UpdateBoardSummary(ctx context.Context, id, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	existing, ok := s.boards[id]
	if !ok {
		return repository.ErrBoardNotFound
	}
	existing.Summary = summary
	s.boards[id] = existing
	return nil
}

func (s *Store) DeleteBoard(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	b, ok := s.boards[id]
	if !ok || b.UserID != userID {
		return repository.ErrBoardNotFound
	}
	s.deleteBoardLocked(id)
	return nil
}

func (s *Store) deleteBoardLocked(id string) {
	delete(s.boards, id)
	for memoID, m := range s.memos {
		if m.BoardID == id {
			delete(s.memos, memoID)
		}
	}
}

// ---------------------------------------------------------------------------
// Memos
// ---------------------------------------------------------------------------

func (s *Store) CreateMemo(ctx context.Context, memo *model.Memo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.boards[memo.BoardID]; !ok {
		return repository.ErrBoardNotFound
	}
	s.memos[memo.ID] = *memo
	return nil
}

func (s *Store) GetMemo(ctx context.Context, userID, id string) (*model.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	m, ok := s.memos[id]
	if !ok || m.UserID != userID {
		return nil, repository.ErrMemoNotFound
	}
	return &m, nil
}

func (s *Store) ListMemos(ctx context.Context, filter repository.MemoFilter, cursor string, limit int) ([]*model.Memo, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, "", s.Err
	}

	var items []*model.Memo
	for _, m := range s.memos {
		if m.UserID != filter.UserID {
			continue
		}
		if filter.BoardID != "" && m.BoardID != filter.BoardID {
			continue
		}
		m := m
		items = append(items, &m)
	}
	return paginate(items, func(m *model.Memo) (string, time.Time) { return m.ID, m.CreatedAt }, cursor, limit)
}

func (s *Store) ListMemoContents(ctx context.Context, boardID, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var items []*model.Memo
	for _, m := range s.memos {
		if m.BoardID == boardID && m.UserID == userID && strings.TrimSpace(m.Content) != "" {
			m := m
			items = append(items, &m)
		}
	}
	sortByCreation(items, func(m *model.Memo) (string, time.Time) { return m.ID, m.CreatedAt })

	contents := make([]string, len(items))
	for i, m := range items {
		contents[i] = m.Content
	}
	return contents, nil
}

func (s *Store) UpdateMemo(ctx context.Context, memo *model.Memo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	existing, ok := s.memos[memo.ID]
	if !ok || existing.UserID != memo.UserID {
		return repository.ErrMemoNotFound
	}
	existing.Content = memo.Content
	existing.IsFinished = memo.IsFinished
	existing.Summary = memo.Summary
	s.memos[memo.ID] = existing
	return nil
}

func (s *Store) DeleteMemo(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	m, ok := s.memos[id]
	if !ok || m.UserID != userID {
		return repository.ErrMemoNotFound
	}
	delete(s.memos, id)
	return nil
}

// ---------------------------------------------------------------------------
// Inspection helpers for assertions
// ---------------------------------------------------------------------------

// UserCount returns the number of stored users.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// MemoCount returns the number of stored memos across all users.
func (s *Store) MemoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.memos)
}

// Board returns a board regardless of owner.
func (s *Store) Board(id string) (model.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	return b, ok
}

func sortByCreation[T any](items []T, key func(T) (string, time.Time)) {
	sort.Slice(items, func(i, j int) bool {
		idI, atI := key(items[i])
		idJ, atJ := key(items[j])
		if !atI.Equal(atJ) {
			return atI.Before(atJ)
		}
		return idI < idJ
	})
}

// paginate applies the same keyset rules as the SQL queries.
func paginate[T any](items []T, key func(T) (string, time.Time), cursor string, limit int) ([]T, string, error) {
	sortByCreation(items, key)

	if cursor != "" {
		c, err := repository.DecodeCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		start := len(items)
		for i, item := range items {
			id, at := key(item)
			if at.After(c.CreatedAt) || (at.Equal(c.CreatedAt) && id > c.ID) {
				start = i
				break
			}
		}
		items = items[start:]
	}

	var next string
	if len(items) > limit {
		items = items[:limit]
		id, at := key(items[len(items)-1])
		next = repository.EncodeCursor(&repository.PaginationCursor{ID: id, CreatedAt: at})
	}
	return items, next, nil
}
