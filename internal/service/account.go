// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jellydator/validation/is"

	"github.com/memore/memore/internal/metrics"
	"github.com/memore/memore/internal/model"
)

const (
	// MinPasswordLength is the minimum password length in characters.
	MinPasswordLength = 8
	// MaxPasswordLength keeps hashing cost bounded.
	MaxPasswordLength = 128
)

// AccountConfig configures AccountService.
type AccountConfig struct {
	Users    UserStore
	Hasher   PasswordHasher
	Tokens   TokenIssuer
	Sessions SessionInvalidator // optional
	Metrics  metrics.Recorder   // optional
	Logger   *slog.Logger       // optional

	// AllowUnverifiedReset enables ResetPassword, which changes a password
	// knowing only the account email.
	AllowUnverifiedReset bool
}

// AccountService handles signup, login and profile management.
type AccountService struct {
	users      UserStore
	hasher     PasswordHasher
	tokens     TokenIssuer
	sessions   SessionInvalidator
	metrics    metrics.Recorder
	logger     *slog.Logger
	allowReset bool
	now        func() time.Time
}

// NewAccountService creates a new AccountService.
func NewAccountService(cfg AccountConfig) *AccountService {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AccountService{
		users:      cfg.Users,
		hasher:     cfg.Hasher,
		tokens:     cfg.Tokens,
		sessions:   cfg.Sessions,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		allowReset: cfg.AllowUnverifiedReset,
		now:        time.Now,
	}
}

// SignupInput defines input for creating an account.
type SignupInput struct {
	Username string
	Password string
	Nickname string
	Email    string
}

// Signup registers a new user. Username, email and nickname are checked for
// collisions in that order and the first one found is reported.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Nickname = strings.TrimSpace(input.Nickname)
	input.Email = strings.TrimSpace(input.Email)

	if input.Username == "" || input.Password == "" || input.Nickname == "" || input.Email == "" {
		return nil, ErrMissingFields
	}
	if strings.Contains(input.Username, "@") {
		return nil, ErrInvalidUsername
	}
	if err := validateIdentityLengths(input.Username, input.Email, input.Nickname); err != nil {
		return nil, err
	}
	if err := is.EmailFormat.Validate(input.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.checkAvailable(ctx, "", input.Username, input.Email, input.Nickname); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           generateULID(),
		Username:     input.Username,
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	// A concurrent signup can still win the race; the unique constraints
	// report it as the same field error.
	if err := s.users.CreateUser(ctx, user); err != nil {
		if mapped := translateStoreError(err); errors.Is(mapped, ErrUsernameTaken) ||
			errors.Is(mapped, ErrEmailTaken) || errors.Is(mapped, ErrNicknameTaken) {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncSignup()
	s.logger.Info("user_signed_up", slog.String("user_id", user.ID))

	return user, nil
}

// validateIdentityLengths checks the column widths of the users table.
// Empty values are skipped.
func validateIdentityLengths(username, email, nickname string) error {
	switch {
	case utf8.RuneCountInString(username) > model.MaxUsernameLength:
		return ErrUsernameTooLong
	case utf8.RuneCountInString(email) > model.MaxEmailLength:
		return ErrEmailTooLong
	case utf8.RuneCountInString(nickname) > model.MaxNicknameLength:
		return ErrNicknameTooLong
	}
	return nil
}

// checkAvailable reports the first identity field already held by a user
// other than selfID. Empty values are skipped.
func (s *AccountService) checkAvailable(ctx context.Context, selfID, username, email, nickname string) error {
	checks := []struct {
		value  string
		lookup func(context.Context, string) (*model.User, error)
		taken  error
	}{
		{username, s.users.GetUserByUsername, ErrUsernameTaken},
		{email, s.users.GetUserByEmail, ErrEmailTaken},
		{nickname, s.users.GetUserByNickname, ErrNicknameTaken},
	}

	for _, c := range checks {
		if c.value == "" {
			continue
		}
		existing, err := c.lookup(ctx, c.value)
		if err != nil {
			if errors.Is(translateStoreError(err), ErrUserNotFound) {
				continue
			}
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if existing.ID != selfID {
			return c.taken
		}
	}

	return nil
}

// LoginResult is a freshly issued session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

// Login verifies credentials and issues a session token. The identifier is
// looked up as an email when it contains '@', as a username otherwise.
// Usernames cannot contain '@', so the two never overlap.
func (s *AccountService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	lookup := s.users.GetUserByUsername
	if strings.Contains(identifier, "@") {
		lookup = s.users.GetUserByEmail
	}

	user, err := lookup(ctx, identifier)
	if err != nil {
		if mapped := translateStoreError(err); errors.Is(mapped, ErrUserNotFound) {
			s.metrics.IncLogin(false)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.metrics.IncLogin(false)
		s.logger.Warn("login_failed", slog.String("user_id", user.ID), slog.String("reason", "wrong_password"))
		return nil, ErrWrongPassword
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncLogin(true)

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ResetPassword replaces the password of the account registered with email.
// The old password is not required; the operation can be disabled by config.
func (s *AccountService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if !s.allowReset {
		return ErrResetDisabled
	}

	email = strings.TrimSpace(email)
	if email == "" || newPassword == "" {
		return ErrResetFieldsRequired
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if mapped := translateStoreError(err); errors.Is(mapped, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.setPassword(ctx, user.ID, newPassword); err != nil {
		return err
	}

	s.logger.Info("password_reset", slog.String("user_id", user.ID))
	return nil
}

// ChangePassword replaces the caller's password after verifying the current one.
func (s *AccountService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return ErrResetFieldsRequired
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return ErrWrongPassword
	}

	if err := s.setPassword(ctx, user.ID, newPassword); err != nil {
		return err
	}

	s.logger.Info("password_changed", slog.String("user_id", user.ID))
	return nil
}

// setPassword stores a new hash and stamps the change time, which revokes
// every token issued before it.
func (s *AccountService) setPassword(ctx context.Context, userID, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash, s.now().UTC()); err != nil {
		if mapped := translateStoreError(err); errors.Is(mapped, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.invalidate(ctx, userID)
	s.metrics.IncPasswordChanged()
	return nil
}

// Me returns the caller's own account.
func (s *AccountService) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.getUser(ctx, userID)
}

// GetUser returns any user by ID.
func (s *AccountService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.getUser(ctx, id)
}

// ListUsersOutput is one page of users.
type ListUsersOutput struct {
	Users      []*model.User
	NextCursor string
	HasMore    bool
}

// ListUsers returns a page of users in signup order.
func (s *AccountService) ListUsers(ctx context.Context, cursor string, limit int) (*ListUsersOutput, error) {
	users, next, err := s.users.ListUsers(ctx, cursor, normalizeLimit(limit))
	if err != nil {
		if mapped := translateStoreError(err); errors.Is(mapped, ErrInvalidCursor) {
			return nil, ErrInvalidCursor
		}
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &ListUsersOutput{
		Users:      users,
		NextCursor: next,
		HasMore:    next != "",
	}, nil
}

// UpdateProfileInput defines the editable profile fields. Nil means unchanged.
type UpdateProfileInput struct {
	Nickname *string
	Email    *string
}

// UpdateProfile edits the caller's nickname and email under the same
// uniqueness rules as signup.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*model.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var email, nickname string
	if input.Email != nil {
		email = strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, ErrInvalidEmail
		}
	}
	if input.Nickname != nil {
		nickname = strings.TrimSpace(*input.Nickname)
		if nickname == "" {
			return nil, ErrNicknameRequired
		}
	}
	if err := validateIdentityLengths("", email, nickname); err != nil {
		return nil, err
	}
	if email != "" {
		if err := is.EmailFormat.Validate(email); err != nil {
			return nil, ErrInvalidEmail
		}
	}

	if err := s.checkAvailable(ctx, user.ID, "", email, nickname); err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if nickname != "" {
		user.Nickname = nickname
	}

	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		mapped := translateStoreError(err)
		if errors.Is(mapped, ErrEmailTaken) || errors.Is(mapped, ErrNicknameTaken) || errors.Is(mapped, ErrUserNotFound) {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.invalidate(ctx, user.ID)
	return user, nil
}

// UpdateUser edits the profile of targetID, which must be the caller.
func (s *AccountService) UpdateUser(ctx context.Context, callerID, targetID string, input UpdateProfileInput) (*model.User, error) {
	if callerID != targetID {
		return nil, ErrForbidden
	}
	return s.UpdateProfile(ctx, callerID, input)
}

// DeleteUser removes targetID, which must be the caller, together with
// every board and memo they own.
func (s *AccountService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	if callerID != targetID {
		return ErrForbidden
	}

	if err := s.users.DeleteUser(ctx, targetID); err != nil {
		if mapped := translateStoreError(err); errors.Is(mapped, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx, targetID)
	s.logger.Info("user_deleted", slog.String("user_id", targetID))
	return nil
}

func (s *AccountService) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if mapped := translateStoreError(err); errors.Is(mapped, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// invalidate drops the cached identity. Errors are logged, not returned.
func (s *AccountService) invalidate(ctx context.Context, userID string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.DeleteAuthContext(ctx, userID); err != nil {
		s.logger.Warn("session invalidation failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}

func validatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if n > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
