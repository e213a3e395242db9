// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the authenticated user's own profile and devices.

It lets users view their private identity data, see where they are signed in,
revoke other devices, and delete the account altogether.

# Architecture

  - Entities: SessionInfo (DTO over auth.Session).
  - Domain: This package depends on the auth package for the User entity and
    the session lifecycle.
  - Security: Provides session transparency and revocation mechanisms.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/bookmarks/internal/users/auth"
)

// # Domain Entities

// SessionInfo provides a safety-mapped view of an active user session.
type SessionInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsCurrent bool      `json:"is_current"` // True if this session belongs to the current request
}

// newSessionInfo maps a session record, flagging the one presented with the request.
func newSessionInfo(session *auth.Session, currentID string) SessionInfo {
	return SessionInfo{
		ID:        session.ID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
		IsCurrent: session.ID == currentID,
	}
}

// # Collaborator Contracts

// SessionLifecycle is the slice of [auth.SessionManager] the account pages need.
type SessionLifecycle interface {
	/*
		ListSessions lists all valid, non-expired sessions for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*auth.Session: Newest first
		  - error: Retrieval errors
	*/
	ListSessions(context context.Context, userID string) ([]*auth.Session, error)

	// InvalidateSession deletes one session. Unknown ids succeed.
	InvalidateSession(context context.Context, sessionID string) error

	// InvalidateOtherSessions deletes every session of the user except keepID.
	InvalidateOtherSessions(context context.Context, userID, keepID string) error

	// InvalidateUserSessions deletes every session of the user.
	InvalidateUserSessions(context context.Context, userID string) error
}
