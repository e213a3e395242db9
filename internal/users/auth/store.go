// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		ExistsByEmail reports whether an account already uses the email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - bool: true when taken
		  - error: Database retrieval failures
	*/
	ExistsByEmail(context context.Context, email string) (bool, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate username/email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Delete removes the account. Sessions and library rows cascade.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for session records.
//
// Only the [SessionManager] writes through it.
type SessionRepository interface {

	/*
		Create persists a new session.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: apperr.Conflict when the id exists or the user does not
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByID returns the session joined with its owning user.

		Parameters:
		  - context: context.Context
		  - id: string (hashed token)

		Returns:
		  - *Session, *User: Hydrated pair
		  - error: dberr.ErrNotFound when absent
	*/
	FindByID(context context.Context, id string) (*Session, *User, error)

	/*
		UpdateExpiry moves the expiry of a session. No-op if the session is absent.

		Parameters:
		  - context: context.Context
		  - id: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	UpdateExpiry(context context.Context, id string, expiresAt time.Time) error

	/*
		Delete removes a session. Deleting an absent session succeeds.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		DeleteByUser removes every session of a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteByUser(context context.Context, userID string) error

	/*
		DeleteOthers removes every session of a user except keepID.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - keepID: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteOthers(context context.Context, userID, keepID string) error

	/*
		ListByUser returns the sessions of a user, newest first, expired ones included.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Session: Records
		  - error: Database retrieval failures
	*/
	ListByUser(context context.Context, userID string) ([]*Session, error)

	/*
		DeleteExpired removes sessions whose expiry is at or before now.

		Parameters:
		  - context: context.Context
		  - now: time.Time

		Returns:
		  - int64: Number of removed sessions
		  - error: Persistence failures
	*/
	DeleteExpired(context context.Context, now time.Time) (int64, error)
}
