package dto

import (
	"time"

	"github.com/jellydator/validation"

	"github.com/memore/memore/internal/model"
)

// CreateMemoRequest represents the request body for creating a memo.
type CreateMemoRequest struct {
	Board      string `json:"board"`
	Content    string `json:"content"`
	IsFinished bool   `json:"is_finished,omitempty"`
}

// Validate implements validation.Validatable.
func (r CreateMemoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Board, validation.Required.Error(MsgBoardRequired)),
		validation.Field(&r.Content,
			validation.Required.Error(MsgContentRequired),
			validation.By(notBlank(MsgContentRequired)),
		),
	)
}

// UpdateMemoRequest represents a partial memo update.
type UpdateMemoRequest struct {
	Content    *string `json:"content,omitempty"`
	IsFinished *bool   `json:"is_finished,omitempty"`
	Summary    *string `json:"summary,omitempty"`
}

// Validate implements validation.Validatable.
func (r UpdateMemoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.NilOrNotEmpty.Error(MsgContentRequired),
			validation.By(notBlank(MsgContentRequired)),
		),
	)
}

// MemoResponse represents a memo in API responses.
type MemoResponse struct {
	ID         string    `json:"id"`
	Board      string    `json:"board"`
	User       string    `json:"user"`
	Content    string    `json:"content"`
	IsFinished bool      `json:"is_finished"`
	Summary    *string   `json:"summary"`
	Timestamp  time.Time `json:"timestamp"`
}

// ToMemoResponse converts a Memo model to MemoResponse DTO.
func ToMemoResponse(m *model.Memo) *MemoResponse {
	return &MemoResponse{
		ID:         m.ID,
		Board:      m.BoardID,
		User:       m.UserID,
		Content:    m.Content,
		IsFinished: m.IsFinished,
		Summary:    m.Summary,
		Timestamp:  m.CreatedAt,
	}
}

// ToMemoList converts memos for a list response.
func ToMemoList(memos []*model.Memo) []MemoResponse {
	out := make([]MemoResponse, 0, len(memos))
	for _, m := range memos {
		out = append(out, *ToMemoResponse(m))
	}
	return out
}
