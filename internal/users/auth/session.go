// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/bookmarks/internal/platform/dberr"
	"github.com/taibuivan/bookmarks/internal/platform/sec"
)

// # Lifecycle Manager

// SessionManager owns the session lifecycle: creation, validation with lazy
// expiry and sliding renewal, and invalidation.
//
// It is the only writer of session records and is safe for concurrent use.
type SessionManager struct {
	sessions SessionRepository
	logger   *slog.Logger
	now      func() time.Time
}

// ManagerOption customizes a [SessionManager].
type ManagerOption func(*SessionManager)

// WithClock replaces the wall clock, used to exercise expiry and renewal boundaries.
func WithClock(now func() time.Time) ManagerOption {
	return func(manager *SessionManager) {
		manager.now = now
	}
}

// NewSessionManager constructs a [SessionManager] over the given store.
func NewSessionManager(sessions SessionRepository, logger *slog.Logger, options ...ManagerOption) *SessionManager {
	manager := &SessionManager{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
	for _, option := range options {
		option(manager)
	}
	return manager
}

/*
CreateSession records a new session for userID keyed by the hash of token.

Parameters:
  - context: context.Context
  - token: string (raw token from [sec.GenerateSessionToken])
  - userID: string

Returns:
  - *Session: The stored record, expiring [SessionTTL] from now
  - error: apperr.Conflict for a duplicate id or unknown user, or store faults
*/
func (manager *SessionManager) CreateSession(context context.Context, token, userID string) (*Session, error) {
	now := manager.now().UTC()

	session := &Session{
		ID:        sec.HashToken(token),
		UserID:    userID,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}

	if err := manager.sessions.Create(context, session); err != nil {
		return nil, fmt.Errorf("session_manager_create_failed: %w", err)
	}

	return session, nil
}

/*
ValidateSessionToken resolves a raw token into its session and user.

Flow:
 1. Unknown token: (nil, nil, nil).
 2. Expired: the record is deleted, then (nil, nil, nil).
 3. Inside the renewal window: expiry moves to now + [SessionTTL].
 4. Otherwise the record is returned unchanged.

Returns:
  - *Session, *User: The live pair, or both nil
  - error: Store faults only
*/
func (manager *SessionManager) ValidateSessionToken(context context.Context, token string) (*Session, *User, error) {
	id := sec.HashToken(token)

	session, user, err := manager.sessions.FindByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("session_manager_find_failed: %w", err)
	}

	now := manager.now().UTC()

	// Lazy expiry
	if session.Expired(now) {
		if err := manager.sessions.Delete(context, id); err != nil {
			return nil, nil, fmt.Errorf("session_manager_expire_failed: %w", err)
		}
		manager.logger.DebugContext(context, "session_expired", slog.String("user_id", session.UserID))
		return nil, nil, nil
	}

	// Sliding renewal
	if session.DueForRenewal(now) {
		session.ExpiresAt = now.Add(SessionTTL)
		if err := manager.sessions.UpdateExpiry(context, id, session.ExpiresAt); err != nil {
			return nil, nil, fmt.Errorf("session_manager_renew_failed: %w", err)
		}
		manager.logger.DebugContext(context, "session_renewed", slog.String("user_id", session.UserID))
	}

	return session, user, nil
}

// Identify adapts [SessionManager.ValidateSessionToken] to the authentication gate.
// An unknown or expired token yields a nil identity.
func (manager *SessionManager) Identify(context context.Context, token string) (*sec.Identity, error) {
	session, user, err := manager.ValidateSessionToken(context, token)
	if err != nil || session == nil {
		return nil, err
	}
	return Identity(session, user), nil
}

// InvalidateSession deletes the session unconditionally. Unknown ids succeed.
func (manager *SessionManager) InvalidateSession(context context.Context, sessionID string) error {
	if err := manager.sessions.Delete(context, sessionID); err != nil {
		return fmt.Errorf("session_manager_invalidate_failed: %w", err)
	}
	return nil
}

// InvalidateOtherSessions signs the user out everywhere except keepID.
func (manager *SessionManager) InvalidateOtherSessions(context context.Context, userID, keepID string) error {
	if err := manager.sessions.DeleteOthers(context, userID, keepID); err != nil {
		return fmt.Errorf("session_manager_invalidate_others_failed: %w", err)
	}
	return nil
}

// InvalidateUserSessions removes every session of the user.
func (manager *SessionManager) InvalidateUserSessions(context context.Context, userID string) error {
	if err := manager.sessions.DeleteByUser(context, userID); err != nil {
		return fmt.Errorf("session_manager_invalidate_user_failed: %w", err)
	}
	return nil
}

// ListSessions returns the user's unexpired sessions, newest first.
func (manager *SessionManager) ListSessions(context context.Context, userID string) ([]*Session, error) {
	sessions, err := manager.sessions.ListByUser(context, userID)
	if err != nil {
		return nil, fmt.Errorf("session_manager_list_failed: %w", err)
	}

	now := manager.now()
	live := make([]*Session, 0, len(sessions))
	for _, session := range sessions {
		if !session.Expired(now) {
			live = append(live, session)
		}
	}

	return live, nil
}

// DeleteExpired purges expired sessions and reports how many were removed.
func (manager *SessionManager) DeleteExpired(context context.Context) (int64, error) {
	removed, err := manager.sessions.DeleteExpired(context, manager.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("session_manager_delete_expired_failed: %w", err)
	}
	return removed, nil
}
