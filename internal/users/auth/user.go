// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user identity and session management.

It defines the core entities (User, Session), the session lifecycle
(creation, validation with lazy expiry and sliding renewal, invalidation)
and the register/login/logout use cases exposed over HTTP.

# Architecture

  - SessionManager: the only writer of session records.
  - Repositories: Postgres for accounts; Postgres or Redis for sessions.
  - Service + Handler: registration, login, logout and the current identity.
*/
package auth

import (
	"time"

	"github.com/taibuivan/bookmarks/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
}

// Session is a server-side login record.
//
// ID is the SHA-256 of the bearer token; the token itself only ever lives in
// the client's cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is no longer valid at now.
func (session *Session) Expired(now time.Time) bool {
	return !now.Before(session.ExpiresAt)
}

// DueForRenewal reports whether the session has entered its renewal window at now.
func (session *Session) DueForRenewal(now time.Time) bool {
	return !now.Before(session.ExpiresAt.Add(-SessionRenewalWindow))
}

// Identity converts the pair into the public identity attached to requests.
func Identity(session *Session, user *User) *sec.Identity {
	if session == nil || user == nil {
		return &sec.Identity{}
	}
	return &sec.Identity{
		User:    &sec.AuthUser{ID: user.ID, Username: user.Username},
		Session: &sec.AuthSession{ID: session.ID, ExpiresAt: session.ExpiresAt},
	}
}

// # Field Identifiers

// Field names used in validation errors and payloads.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)
