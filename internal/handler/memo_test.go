package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memore/memore/internal/handler/dto"
)

func (h *harness) createMemo(t *testing.T, userID, boardID, content string) dto.MemoResponse {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/api/memos", userID, map[string]any{"board": boardID, "content": content})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[dto.MemoResponse](t, rec)
}

func TestMemoHandler_Create(t *testing.T) {
	h := newHarness(t)
	user := h.seedUser(t)
	other := h.seedUser(t)
	board := h.createBoard(t, user.ID, "board")

	memo := h.createMemo(t, user.ID, board.ID, "첫 메모")
	assert.Equal(t, board.ID, memo.Board)
	assert.Equal(t, user.ID, memo.User)
	assert.False(t, memo.IsFinished)
	assert.Nil(t, memo.Summary)
	assert.False(t, memo.Timestamp.IsZero())

	assertError(t, h.do(t, http.MethodPost, "/api/memos", user.ID, map[string]any{"content": "x"}),
		http.StatusBadRequest, "VALIDATION_ERROR", dto.MsgBoardRequired)
	assertError(t, h.do(t, http.MethodPost, "/api/memos", user.ID, map[string]any{"board": board.ID, "content": "   "}),
		http.StatusBadRequest, "VALIDATION_ERROR", dto.MsgContentRequired)

	// Another user's board is indistinguishable from a missing one.
	assertError(t, h.do(t, http.MethodPost, "/api/memos", other.ID, map[string]any{"board": board.ID, "content": "sneaky"}),
		http.StatusNotFound, "BOARD_NOT_FOUND", dto.MsgBoardNotFound)
}

func TestMemoHandler_ListFilterAndIsolation(t *testing.T) {
	h := newHarness(t)
	user := h.seedUser(t)
	other := h.seedUser(t)
	first := h.createBoard(t, user.ID, "first")
	second := h.createBoard(t, user.ID, "second")

	h.createMemo(t, user.ID, first.ID, "a")
	h.createMemo(t, user.ID, first.ID, "b")
	h.createMemo(t, user.ID, second.ID, "c")

	all := decodeBody[dto.ListResponse[dto.MemoResponse]](t, h.do(t, http.MethodGet, "/api/memos", user.ID, nil))
	require.Len(t, all.Data, 3)
	assert.Equal(t, "a", all.Data[0].Content)

	filtered := decodeBody[dto.ListResponse[dto.MemoResponse]](t, h.do(t, http.MethodGet, "/api/memos?board="+second.ID, user.ID, nil))
	require.Len(t, filtered.Data, 1)
	assert.Equal(t, "c", filtered.Data[0].Content)

	theirs := decodeBody[dto.ListResponse[dto.MemoResponse]](t, h.do(t, http.MethodGet, "/api/memos", other.ID, nil))
	assert.Empty(t, theirs.Data)
}

func TestMemoHandler_UpdateAndDelete(t *testing.T) {
	h := newHarness(t)
	user := h.seedUser(t)
	other := h.seedUser(t)
	board := h.createBoard(t, user.ID, "board")
	memo := h.createMemo(t, user.ID, board.ID, "draft")

	rec := h.do(t, http.MethodPatch, "/api/memos/"+memo.ID, user.ID, map[string]any{"content": "final", "is_finished": true, "summary": "done"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[dto.MemoResponse](t, rec)
	assert.Equal(t, "final", updated.Content)
	assert.True(t, updated.IsFinished)
	require.NotNil(t, updated.Summary)
	assert.Equal(t, "done", *updated.Summary)

	assertError(t, h.do(t, http.MethodPatch, "/api/memos/"+memo.ID, other.ID, map[string]any{"content": "x"}),
		http.StatusNotFound, "MEMO_NOT_FOUND", dto.MsgMemoNotFound)
	assertError(t, h.do(t, http.MethodDelete, "/api/memos/"+memo.ID, other.ID, nil),
		http.StatusNotFound, "MEMO_NOT_FOUND", dto.MsgMemoNotFound)

	assert.Equal(t, http.StatusNoContent, h.do(t, http.MethodDelete, "/api/memos/"+memo.ID, user.ID, nil).Code)
	assertError(t, h.do(t, http.MethodGet, "/api/memos/"+memo.ID, user.ID, nil), http.StatusNotFound, "MEMO_NOT_FOUND", "")

	// The board survives its memo.
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/boards/"+board.ID, user.ID, nil).Code)
}
