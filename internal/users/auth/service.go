// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
	"github.com/taibuivan/bookmarks/internal/platform/sec"
	"github.com/taibuivan/bookmarks/internal/platform/validate"
	"github.com/taibuivan/bookmarks/pkg/pointer"
	"github.com/taibuivan/bookmarks/pkg/uuid"
)

// errInvalidCredentials is the single answer to unknown users and wrong passwords.
var errInvalidCredentials = apperr.Unauthorized("Invalid username or password")

// # Service

// Service implements the registration, login and logout use cases.
type Service struct {
	userRepository    UserRepository
	sessionManager    *SessionManager
	logger            *slog.Logger
	skipPasswordCheck bool
}

// NewService constructs a new [Service].
//
// skipPasswordCheck restores username-only login; it must stay false in production.
func NewService(users UserRepository, sessions *SessionManager, logger *slog.Logger, skipPasswordCheck bool) *Service {
	return &Service{
		userRepository:    users,
		sessionManager:    sessions,
		logger:            logger,
		skipPasswordCheck: skipPasswordCheck,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    *string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Registration never logs the user in; the client follows up with
a login.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Validation, Conflict (username/email taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	username := strings.TrimSpace(input.Username)
	email := pointer.TrimmedOrNil(input.Email)

	// 1. Validate
	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		MinLen(FieldUsername, username, UsernameMinLength).
		MaxLen(FieldUsername, username, UsernameMaxLength).
		MaxBytes(FieldPassword, input.Password, sec.MaxPasswordBytes)

	if !service.skipPasswordCheck {
		validator.Required(FieldPassword, input.Password)
	}

	if email != nil {
		validator.Email(FieldEmail, *email).MaxLen(FieldEmail, *email, EmailMaxLength)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 2. Verify username uniqueness. The unique index still guards against races.
	_, err := service.userRepository.FindByUsername(context, username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	// 3. Verify email uniqueness
	if email != nil {
		taken, err := service.userRepository.ExistsByEmail(context, *email)
		if err != nil {
			return nil, fmt.Errorf("auth_service_register_email_lookup_failed: %w", err)
		}
		if taken {
			return nil, apperr.Conflict("Email is already registered")
		}
	}

	// 4. Hash and persist
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string

	// CurrentToken is the session cookie presented with the request, if any.
	CurrentToken string
}

// LoginResult is a successfully established session.
type LoginResult struct {
	Token   string
	Session *Session
	User    *User
}

/*
Login verifies credentials and opens a new session.

Description: A session presented with the request is invalidated before the
new one is created, so a browser never holds two live sessions.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Raw token, session record and user
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 1. Resolve the account. Generic message to prevent enumeration.
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// 2. Verify the password
	if !service.skipPasswordCheck && !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}

	// 3. Drop the session this browser already holds
	if input.CurrentToken != "" {
		if err := service.sessionManager.InvalidateSession(context, sec.HashToken(input.CurrentToken)); err != nil {
			return nil, fmt.Errorf("auth_service_login_invalidate_failed: %w", err)
		}
	}

	// 4. Open the new session
	token, err := sec.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	session, err := service.sessionManager.CreateSession(context, token, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_login_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_logged_in", slog.String("user_id", user.ID))

	return &LoginResult{Token: token, Session: session, User: user}, nil
}

/*
Logout invalidates the given session. Unknown ids succeed.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Store faults
*/
func (service *Service) Logout(context context.Context, sessionID string) error {
	if err := service.sessionManager.InvalidateSession(context, sessionID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}
