package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/memore/memore/internal/handler/dto"
	"github.com/memore/memore/internal/service"
)

// MemoHandler handles HTTP requests for memo operations.
type MemoHandler struct {
	memos  *service.MemoService
	logger *slog.Logger
}

// NewMemoHandler creates a new MemoHandler.
func NewMemoHandler(memos *service.MemoService, logger *slog.Logger) *MemoHandler {
	return &MemoHandler{
		memos:  memos,
		logger: logger,
	}
}

// Create handles POST /api/memos.
func (h *MemoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateMemoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	memo, err := h.memos.CreateMemo(r.Context(), userID, service.CreateMemoInput{
		BoardID:    req.Board,
		Content:    req.Content,
		IsFinished: req.IsFinished,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToMemoResponse(memo))
}

// Get handles GET /api/memos/{id}.
func (h *MemoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	memo, err := h.memos.GetMemo(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMemoResponse(memo))
}

// List handles GET /api/memos. ?board= narrows the list to one board.
func (h *MemoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	cursor, limit := pageParams(r)
	result, err := h.memos.ListMemos(r.Context(), userID, service.ListMemosInput{
		BoardID: r.URL.Query().Get("board"),
		Cursor:  cursor,
		Limit:   limit,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.ToMemoList(result.Memos), result.NextCursor, result.HasMore))
}

// Update handles PATCH /api/memos/{id}.
func (h *MemoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateMemoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	memo, err := h.memos.UpdateMemo(r.Context(), userID, chi.URLParam(r, "id"), service.UpdateMemoInput{
		Content:    req.Content,
		IsFinished: req.IsFinished,
		Summary:    req.Summary,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMemoResponse(memo))
}

// Delete handles DELETE /api/memos/{id}.
func (h *MemoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.memos.DeleteMemo(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
