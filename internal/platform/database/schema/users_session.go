// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserSessionTable represents the 'users.session' table
type UserSessionTable struct {
	Table     string
	ID        string
	UserID    string
	ExpiresAt string
	CreatedAt string
}

// UserSession is the schema definition for users.session.
// ID holds the SHA-256 of the session token, never the token itself.
var UserSession = UserSessionTable{
	Table:     "users.session",
	ID:        "id",
	UserID:    "userid",
	ExpiresAt: "expiresat",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t UserSessionTable) Columns() []string {
	return []string{t.ID, t.UserID, t.ExpiresAt, t.CreatedAt}
}
