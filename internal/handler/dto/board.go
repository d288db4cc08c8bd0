package dto

import (
	"time"

	"github.com/jellydator/validation"

	"github.com/memore/memore/internal/model"
)

// CreateBoardRequest represents the request body for creating a board.
// Owner fields are not part of the contract; the caller owns the board.
type CreateBoardRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Summary     string `json:"summary,omitempty"`
	IsCompleted bool   `json:"is_completed,omitempty"`
}

// Validate implements validation.Validatable.
func (r CreateBoardRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error(MsgTitleRequired),
			validation.By(notBlank(MsgTitleRequired)),
			validation.RuneLength(0, model.MaxBoardTitleLength).Error(MsgTitleTooLong),
		),
		validation.Field(&r.Category,
			validation.RuneLength(0, model.MaxBoardCategoryLength).Error(MsgCategoryTooLong),
		),
	)
}

// UpdateBoardRequest represents a partial board update.
type UpdateBoardRequest struct {
	Title       *string `json:"title,omitempty"`
	Category    *string `json:"category,omitempty"`
	Summary     *string `json:"summary,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// Validate implements validation.Validatable.
func (r UpdateBoardRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error(MsgTitleRequired),
			validation.By(notBlank(MsgTitleRequired)),
			validation.RuneLength(0, model.MaxBoardTitleLength).Error(MsgTitleTooLong),
		),
		validation.Field(&r.Category,
			validation.RuneLength(0, model.MaxBoardCategoryLength).Error(MsgCategoryTooLong),
		),
	)
}

// BoardResponse represents a board in API responses.
type BoardResponse struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Summary     string    `json:"summary"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// SummaryResponse is the body of the summarize endpoint.
type SummaryResponse struct {
	Summary string `json:"summary"`
	Error   string `json:"error,omitempty"`
}

// ToBoardResponse converts a Board model to BoardResponse DTO.
func ToBoardResponse(b *model.Board) *BoardResponse {
	return &BoardResponse{
		ID:          b.ID,
		User:        b.UserID,
		Title:       b.Title,
		Category:    b.Category,
		Summary:     b.Summary,
		IsCompleted: b.IsCompleted,
		CreatedAt:   b.CreatedAt,
	}
}

// ToBoardList converts boards for a list response.
func ToBoardList(boards []*model.Board) []BoardResponse {
	out := make([]BoardResponse, 0, len(boards))
	for _, b := range boards {
		out = append(out, *ToBoardResponse(b))
	}
	return out
}
