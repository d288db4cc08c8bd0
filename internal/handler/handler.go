// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jellydator/validation"

	"github.com/memore/memore/internal/auth"
	"github.com/memore/memore/internal/handler/dto"
)

// Version is reported by the index endpoint.
const Version = "1.0.0"

// Handler serves the routes that have no domain dependencies.
type Handler struct {
	logger *slog.Logger
}

// New creates a new Handler instance.
func New(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// Index reports the service name and version.
// GET /api
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "memore",
		"version": Version,
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", dto.MsgNotFound)
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", dto.MsgMethodNotAllowed)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure means the client went away.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// decodeJSON reads the request body into dst and validates it. On failure the
// error response has been written and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst validation.Validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", dto.MsgPayloadTooLarge)
		case errors.Is(err, io.EOF):
			// An empty body is treated as an empty object so field rules decide.
			return validateRequest(w, dst)
		default:
			writeError(w, http.StatusBadRequest, "INVALID_JSON", dto.MsgInvalidJSON)
		}
		return false
	}
	return validateRequest(w, dst)
}

func validateRequest(w http.ResponseWriter, v validation.Validatable) bool {
	if err := v.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", dto.FirstError(err))
		return false
	}
	return true
}

// callerID returns the authenticated user. Routes behind the auth middleware
// always have one; the check keeps a misrouted handler from acting anonymously.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", dto.MsgUnauthorized)
		return "", false
	}
	return userID, true
}

// pageParams reads cursor and limit query parameters. Out-of-range limits fall
// back to the service default.
func pageParams(r *http.Request) (string, int) {
	query := r.URL.Query()
	limit := 0
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return query.Get("cursor"), limit
}
