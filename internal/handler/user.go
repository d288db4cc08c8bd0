package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/memore/memore/internal/handler/dto"
	"github.com/memore/memore/internal/service"
)

// UserHandler exposes the users collection.
type UserHandler struct {
	svc     *service.AccountService
	account *AccountHandler
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler. Creating a user goes through the
// same path as signup.
func NewUserHandler(svc *service.AccountService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:     svc,
		account: NewAccountHandler(svc, logger),
		logger:  logger,
	}
}

// List handles GET /api/users. Only public profiles are returned.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, limit := pageParams(r)

	result, err := h.svc.ListUsers(r.Context(), cursor, limit)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.ToPublicUserList(result.Users), result.NextCursor, result.HasMore))
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.account.Signup(w, r)
}

// Get handles GET /api/users/{id}. The caller sees their own email; other
// users get the public profile.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.svc.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	if user.ID == userID {
		writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
		return
	}
	writeJSON(w, http.StatusOK, dto.ToPublicUserResponse(user))
}

// Update handles PATCH /api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.UpdateUser(r.Context(), userID, chi.URLParam(r, "id"), service.UpdateProfileInput{
		Nickname: req.Nickname,
		Email:    req.Email,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
