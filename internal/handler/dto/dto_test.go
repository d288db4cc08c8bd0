package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := SignupRequest{Username: "a", Password: "Aa1!aaaa", Nickname: "nick", Email: "a@x.com"}

	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantMsg string
	}{
		{"valid", func(*SignupRequest) {}, ""},
		{"missing nickname", func(r *SignupRequest) { r.Nickname = "" }, MsgMissingFields},
		{"missing everything", func(r *SignupRequest) { *r = SignupRequest{} }, MsgMissingFields},
		{"missing field wins over bad email", func(r *SignupRequest) { r.Username = ""; r.Email = "bad" }, MsgMissingFields},
		{"bad email", func(r *SignupRequest) { r.Email = "not-an-email" }, MsgInvalidEmail},
		{"short password", func(r *SignupRequest) { r.Password = "1234567" }, MsgPasswordTooShort},
		{"long password", func(r *SignupRequest) { r.Password = strings.Repeat("p", 129) }, MsgPasswordTooLong},
		{"multibyte password counts runes", func(r *SignupRequest) { r.Password = "비밀번호비밀번호" }, ""},
		{"at sign in username", func(r *SignupRequest) { r.Username = "kim@home" }, MsgInvalidUsername},
		{"long username", func(r *SignupRequest) { r.Username = strings.Repeat("u", 151) }, MsgUsernameTooLong},
		{"username at the limit", func(r *SignupRequest) { r.Username = strings.Repeat("가", 150) }, ""},
		{"long email", func(r *SignupRequest) { r.Email = strings.Repeat("e", 250) + "@x.com" }, MsgEmailTooLong},
		{"long nickname", func(r *SignupRequest) { r.Nickname = strings.Repeat("닉", 31) }, MsgNicknameTooLong},
		{"nickname at the limit", func(r *SignupRequest) { r.Nickname = strings.Repeat("닉", 30) }, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, FirstError(err))
		})
	}
}

func TestLoginAndResetRequests_Validate(t *testing.T) {
	t.Parallel()

	err := LoginRequest{Username: "a"}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgMissingCredentials, FirstError(err))

	err = ResetPasswordRequest{Email: "a@x.com"}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgResetFieldsRequired, FirstError(err))

	err = ResetPasswordRequest{Email: "a@x.com", NewPassword: "short"}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgPasswordTooShort, FirstError(err))

	assert.NoError(t, ResetPasswordRequest{Email: "a@x.com", NewPassword: "long-enough"}.Validate())
}

func TestBoardRequests_Validate(t *testing.T) {
	t.Parallel()

	blank := "   "
	long := strings.Repeat("가", 101)

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"create ok", CreateBoardRequest{Title: "장보기"}.Validate(), ""},
		{"create missing title", CreateBoardRequest{}.Validate(), MsgTitleRequired},
		{"create blank title", CreateBoardRequest{Title: " \t"}.Validate(), MsgTitleRequired},
		{"create long title", CreateBoardRequest{Title: long}.Validate(), MsgTitleTooLong},
		{"create long category", CreateBoardRequest{Title: "t", Category: long}.Validate(), MsgCategoryTooLong},
		{"update nothing", UpdateBoardRequest{}.Validate(), ""},
		{"update blank title", UpdateBoardRequest{Title: &blank}.Validate(), MsgTitleRequired},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantMsg == "" {
				assert.NoError(t, tt.err)
				return
			}
			require.Error(t, tt.err)
			assert.Equal(t, tt.wantMsg, FirstError(tt.err))
		})
	}
}

func TestMemoRequests_Validate(t *testing.T) {
	t.Parallel()

	err := CreateMemoRequest{Content: "x"}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgBoardRequired, FirstError(err))

	err = CreateMemoRequest{Board: "b", Content: "\n  "}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgContentRequired, FirstError(err))

	empty := ""
	err = UpdateMemoRequest{Content: &empty}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgContentRequired, FirstError(err))

	assert.NoError(t, CreateMemoRequest{Board: "b", Content: "hello"}.Validate())
}

func TestUpdateProfileRequest_Validate(t *testing.T) {
	t.Parallel()

	bad := "nope"
	err := UpdateProfileRequest{Email: &bad}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgInvalidEmail, FirstError(err))

	empty := ""
	err = UpdateProfileRequest{Nickname: &empty}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgNicknameRequired, FirstError(err))

	longNick := strings.Repeat("n", 31)
	err = UpdateProfileRequest{Nickname: &longNick}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgNicknameTooLong, FirstError(err))

	longEmail := strings.Repeat("e", 250) + "@x.com"
	err = UpdateProfileRequest{Email: &longEmail}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgEmailTooLong, FirstError(err))

	assert.NoError(t, UpdateProfileRequest{}.Validate())
}

func TestNewListResponse_NeverNull(t *testing.T) {
	t.Parallel()

	resp := NewListResponse[BoardResponse](nil, "", false)
	assert.NotNil(t, resp.Data)
	assert.False(t, resp.Pagination.HasMore)
}
