// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "time"

// AuthUser is the public view of the authenticated user.
type AuthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthSession is the public view of the current session.
type AuthSession struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}

/*
Identity is what the authentication gate attaches to every request.

Both fields are nil for anonymous requests and both are set for
authenticated ones; they are never mixed.
*/
type Identity struct {
	User    *AuthUser    `json:"user"`
	Session *AuthSession `json:"session"`
}

// Authenticated reports whether the identity carries a user.
func (identity *Identity) Authenticated() bool {
	return identity != nil && identity.User != nil
}

// UserID returns the authenticated user's id, or "" for anonymous requests.
func (identity *Identity) UserID() string {
	if !identity.Authenticated() {
		return ""
	}
	return identity.User.ID
}
