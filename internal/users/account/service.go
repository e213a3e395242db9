// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/users/auth"
)

// # Service Layer

// Service orchestrates the account use cases.
//
// Session changes go through the lifecycle manager so it stays the only
// writer of session records.
type Service struct {
	userRepository auth.UserRepository
	sessions       SessionLifecycle
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(users auth.UserRepository, sessions SessionLifecycle, logger *slog.Logger) *Service {
	return &Service{
		userRepository: users,
		sessions:       sessions,
		logger:         logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

/*
DeleteAccount removes the user and everything they own.

Description: Sessions are invalidated explicitly first so backends without
foreign keys (Redis) drop them too; the Postgres cascade then removes the
library.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Storage failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if err := service.sessions.InvalidateUserSessions(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_sessions_failed: %w", err)
	}

	if err := service.userRepository.Delete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(context, "account_deleted", slog.String("user_id", userID))
	return nil
}

// # Session Security

/*
ListSessions enumerates the devices currently signed in to the account.

Parameters:
  - context: context.Context
  - userID: string
  - currentSessionID: string (flagged with IsCurrent)

Returns:
  - []SessionInfo: Active sessions, newest first
  - error: Retrieval failures
*/
func (service *Service) ListSessions(context context.Context, userID, currentSessionID string) ([]SessionInfo, error) {
	sessions, err := service.sessions.ListSessions(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_sessions_failed: %w", err)
	}

	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, newSessionInfo(session, currentSessionID))
	}
	return infos, nil
}

/*
RevokeSession signs out a single device.

Description: The session must belong to the caller; anything else answers
404 so ids of other users cannot be probed.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	sessions, err := service.sessions.ListSessions(context, userID)
	if err != nil {
		return fmt.Errorf("account_service_revoke_lookup_failed: %w", err)
	}

	owned := slices.ContainsFunc(sessions, func(session *auth.Session) bool {
		return session.ID == sessionID
	})
	if !owned {
		return apperr.NotFound("Session")
	}

	if err := service.sessions.InvalidateSession(context, sessionID); err != nil {
		return fmt.Errorf("account_service_revoke_failed: %w", err)
	}

	service.logger.InfoContext(context, "session_revoked", slog.String("user_id", userID))
	return nil
}

// RevokeOtherSessions signs out every device except the current one.
func (service *Service) RevokeOtherSessions(context context.Context, userID, currentSessionID string) error {
	if err := service.sessions.InvalidateOtherSessions(context, userID, currentSessionID); err != nil {
		return fmt.Errorf("account_service_revoke_others_failed: %w", err)
	}

	service.logger.InfoContext(context, "other_sessions_revoked", slog.String("user_id", userID))
	return nil
}
