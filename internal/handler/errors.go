package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/memore/memore/internal/handler/dto"
	"github.com/memore/memore/internal/middleware"
	"github.com/memore/memore/internal/service"
)

// errorRule maps a service sentinel onto an HTTP response.
type errorRule struct {
	err     error
	status  int
	code    string
	message string
}

// serviceErrors holds the mappings shared by every handler. Handlers pass
// overrides where an operation needs a different status for the same error.
var serviceErrors = []errorRule{
	{service.ErrMissingFields, http.StatusBadRequest, "MISSING_FIELDS", dto.MsgMissingFields},
	{service.ErrInvalidEmail, http.StatusBadRequest, "INVALID_EMAIL", dto.MsgInvalidEmail},
	{service.ErrInvalidUsername, http.StatusBadRequest, "INVALID_USERNAME", dto.MsgInvalidUsername},
	{service.ErrUsernameTooLong, http.StatusBadRequest, "USERNAME_TOO_LONG", dto.MsgUsernameTooLong},
	{service.ErrEmailTooLong, http.StatusBadRequest, "EMAIL_TOO_LONG", dto.MsgEmailTooLong},
	{service.ErrNicknameTooLong, http.StatusBadRequest, "NICKNAME_TOO_LONG", dto.MsgNicknameTooLong},
	{service.ErrPasswordTooShort, http.StatusBadRequest, "PASSWORD_TOO_SHORT", dto.MsgPasswordTooShort},
	{service.ErrPasswordTooLong, http.StatusBadRequest, "PASSWORD_TOO_LONG", dto.MsgPasswordTooLong},
	{service.ErrUsernameTaken, http.StatusBadRequest, "USERNAME_TAKEN", dto.MsgUsernameTaken},
	{service.ErrEmailTaken, http.StatusBadRequest, "EMAIL_TAKEN", dto.MsgEmailTaken},
	{service.ErrNicknameTaken, http.StatusBadRequest, "NICKNAME_TAKEN", dto.MsgNicknameTaken},
	{service.ErrCredentialsRequired, http.StatusBadRequest, "MISSING_CREDENTIALS", dto.MsgMissingCredentials},
	{service.ErrResetFieldsRequired, http.StatusBadRequest, "MISSING_FIELDS", dto.MsgResetFieldsRequired},
	{service.ErrResetDisabled, http.StatusForbidden, "RESET_DISABLED", dto.MsgResetDisabled},
	{service.ErrNicknameRequired, http.StatusBadRequest, "NICKNAME_REQUIRED", dto.MsgNicknameRequired},
	{service.ErrForbidden, http.StatusForbidden, "FORBIDDEN", dto.MsgForbidden},
	{service.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND", dto.MsgUserNotFound},
	{service.ErrWrongPassword, http.StatusBadRequest, "WRONG_PASSWORD", dto.MsgWrongPassword},

	{service.ErrBoardNotFound, http.StatusNotFound, "BOARD_NOT_FOUND", dto.MsgBoardNotFound},
	{service.ErrMemoNotFound, http.StatusNotFound, "MEMO_NOT_FOUND", dto.MsgMemoNotFound},
	{service.ErrTitleRequired, http.StatusBadRequest, "TITLE_REQUIRED", dto.MsgTitleRequired},
	{service.ErrTitleTooLong, http.StatusBadRequest, "TITLE_TOO_LONG", dto.MsgTitleTooLong},
	{service.ErrCategoryTooLong, http.StatusBadRequest, "CATEGORY_TOO_LONG", dto.MsgCategoryTooLong},
	{service.ErrBoardRequired, http.StatusBadRequest, "BOARD_REQUIRED", dto.MsgBoardRequired},
	{service.ErrContentRequired, http.StatusBadRequest, "CONTENT_REQUIRED", dto.MsgContentRequired},
	{service.ErrInvalidCursor, http.StatusBadRequest, "INVALID_CURSOR", dto.MsgInvalidCursor},
}

// handleServiceError maps service errors to HTTP responses. Unknown errors are
// logged with the request id and answered with a generic 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, overrides ...errorRule) {
	for _, rules := range [][]errorRule{overrides, serviceErrors} {
		for _, rule := range rules {
			if errors.Is(err, rule.err) {
				writeError(w, rule.status, rule.code, rule.message)
				return
			}
		}
	}

	logger.Error("internal_error",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", dto.MsgInternalError)
}
