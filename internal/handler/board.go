package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/memore/memore/internal/handler/dto"
	"github.com/memore/memore/internal/service"
)

// BoardHandler handles HTTP requests for board operations.
type BoardHandler struct {
	boards    *service.BoardService
	summaries *service.SummaryService
	logger    *slog.Logger
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boards *service.BoardService, summaries *service.SummaryService, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{
		boards:    boards,
		summaries: summaries,
		logger:    logger,
	}
}

// Create handles POST /api/boards.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateBoardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	board, err := h.boards.CreateBoard(r.Context(), userID, service.CreateBoardInput{
		Title:       req.Title,
		Category:    req.Category,
		Summary:     req.Summary,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToBoardResponse(board))
}

// Get handles GET /api/boards/{id}.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	board, err := h.boards.GetBoard(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBoardResponse(board))
}

// List handles GET /api/boards.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	cursor, limit := pageParams(r)
	result, err := h.boards.ListBoards(r.Context(), userID, service.ListBoardsInput{
		Category: r.URL.Query().Get("category"),
		Cursor:   cursor,
		Limit:    limit,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.ToBoardList(result.Boards), result.NextCursor, result.HasMore))
}

// Update handles PATCH /api/boards/{id}.
func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBoardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	board, err := h.boards.UpdateBoard(r.Context(), userID, chi.URLParam(r, "id"), service.UpdateBoardInput{
		Title:       req.Title,
		Category:    req.Category,
		Summary:     req.Summary,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBoardResponse(board))
}

// Delete handles DELETE /api/boards/{id}.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.boards.DeleteBoard(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summarize handles POST /api/boards/{id}/summarize.
// A failed upstream call answers 500 with the fixed failure text and the reason.
func (h *BoardHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	outcome, err := h.summaries.SummarizeBoard(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	if outcome.Failed() {
		writeJSON(w, http.StatusInternalServerError, dto.SummaryResponse{
			Summary: outcome.Summary,
			Error:   outcome.FailureReason,
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryResponse{Summary: outcome.Summary})
}

// SetAlarm handles POST /api/boards/{id}/set-alarm. The route is reserved.
func (h *BoardHandler) SetAlarm(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", dto.MsgNotImplemented)
}
