package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	"github.com/memore/memore/internal/model"
	"github.com/memore/memore/internal/service"
)

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// Validate checks presence first so a half-empty form always yields the
// generic "fill every field" message.
func (r SignupRequest) Validate() error {
	required := validation.Required.Error(MsgMissingFields)
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Username, required),
		validation.Field(&r.Password, required),
		validation.Field(&r.Nickname, required),
		validation.Field(&r.Email, required),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.RuneLength(0, model.MaxUsernameLength).Error(MsgUsernameTooLong),
			validation.By(noAtSign),
		),
		validation.Field(&r.Nickname, validation.RuneLength(0, model.MaxNicknameLength).Error(MsgNicknameTooLong)),
		validation.Field(&r.Email,
			validation.RuneLength(0, model.MaxEmailLength).Error(MsgEmailTooLong),
			is.EmailFormat.Error(MsgInvalidEmail),
		),
		validation.Field(&r.Password,
			validation.RuneLength(service.MinPasswordLength, 0).Error(MsgPasswordTooShort),
			validation.RuneLength(0, service.MaxPasswordLength).Error(MsgPasswordTooLong),
		),
	)
}

// noAtSign keeps usernames apart from emails at login.
func noAtSign(value any) error {
	if s, _ := value.(string); strings.Contains(s, "@") {
		return errors.New(MsgInvalidUsername)
	}
	return nil
}

// LoginRequest represents the login body. Username may hold an email.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements validation.Validatable.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error(MsgMissingCredentials)),
		validation.Field(&r.Password, validation.Required.Error(MsgMissingCredentials)),
	)
}

// ResetPasswordRequest represents the password reset body.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// Validate implements validation.Validatable.
func (r ResetPasswordRequest) Validate() error {
	required := validation.Required.Error(MsgResetFieldsRequired)
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Email, required),
		validation.Field(&r.NewPassword, required),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewPassword,
			validation.RuneLength(service.MinPasswordLength, 0).Error(MsgPasswordTooShort),
			validation.RuneLength(0, service.MaxPasswordLength).Error(MsgPasswordTooLong),
		),
	)
}

// ChangePasswordRequest represents the authenticated password change body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate implements validation.Validatable.
func (r ChangePasswordRequest) Validate() error {
	required := validation.Required.Error(MsgPasswordFields)
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, required),
		validation.Field(&r.NewPassword, required),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewPassword,
			validation.RuneLength(service.MinPasswordLength, 0).Error(MsgPasswordTooShort),
			validation.RuneLength(0, service.MaxPasswordLength).Error(MsgPasswordTooLong),
		),
	)
}

// UpdateProfileRequest represents a partial profile update.
type UpdateProfileRequest struct {
	Nickname *string `json:"nickname,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Validate implements validation.Validatable.
func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nickname,
			validation.NilOrNotEmpty.Error(MsgNicknameRequired),
			validation.RuneLength(0, model.MaxNicknameLength).Error(MsgNicknameTooLong),
		),
		validation.Field(&r.Email,
			validation.NilOrNotEmpty.Error(MsgInvalidEmail),
			validation.RuneLength(0, model.MaxEmailLength).Error(MsgEmailTooLong),
			is.EmailFormat.Error(MsgInvalidEmail),
		),
	)
}

// UserResponse is the caller's own profile.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicUserResponse is what other users may see.
type PublicUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Nickname:  u.Nickname,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// ToPublicUserResponse strips everything but the public profile.
func ToPublicUserResponse(u *model.User) *PublicUserResponse {
	return &PublicUserResponse{ID: u.ID, Username: u.Username, Nickname: u.Nickname}
}

// ToPublicUserList converts users to their public profiles.
func ToPublicUserList(users []*model.User) []PublicUserResponse {
	out := make([]PublicUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToPublicUserResponse(u))
	}
	return out
}

// ToLoginResponse converts a login result into the response body.
func ToLoginResponse(res *service.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		ID:        res.User.ID,
		Username:  res.User.Username,
		Nickname:  res.User.Nickname,
		Email:     res.User.Email,
	}
}
