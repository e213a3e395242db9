// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/database/schema"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userColumns is the projection shared by every account lookup.
var userColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
	schema.UserAccount.Password, schema.UserAccount.CreatedAt,
)

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate username/email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.CreatedAt,
	)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			if dberr.ConstraintName(err) == "account_email_key" {
				return apperr.Conflict("Email is already registered").WithCause(err)
			}
			return apperr.Conflict("Username is already taken").WithCause(err)
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a user record by its ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	return repository.scanOne(context, query, id)
}

/*
FindByUsername retrieves a user record by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Username)

	return repository.scanOne(context, query, username)
}

// ExistsByEmail reports whether an account already uses the email.
func (repository *PostgresUserRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.UserAccount.Table, schema.UserAccount.Email)

	var exists bool
	if err := repository.pool.QueryRow(context, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_by_email_failed: %w", err)
	}

	return exists, nil
}

// Delete removes the account; sessions, categories, tags and sites cascade.
func (repository *PostgresUserRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_user_repo_delete_failed: %w", err)
	}

	return nil
}

// scanOne runs a single-row account query.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_failed: %w", err)
	}

	return user, nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of the SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
Create persists a new session row.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: apperr.Conflict on duplicate id or unknown user
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.UserSession.Table,
		schema.UserSession.ID, schema.UserSession.UserID,
		schema.UserSession.ExpiresAt, schema.UserSession.CreatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		session.ID, session.UserID, session.ExpiresAt, session.CreatedAt)

	if err != nil {
		if dberr.IsConstraintViolation(err) {
			return apperr.Conflict("Session could not be created").WithCause(err)
		}
		return fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID returns the session joined with its owning account.

Parameters:
  - context: context.Context
  - id: string (hashed token)

Returns:
  - *Session, *User: Hydrated pair
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresSessionRepository) FindByID(context context.Context, id string) (*Session, *User, error) {
	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s,
		       a.%s, a.%s, a.%s, a.%s, a.%s
		FROM %s s
		INNER JOIN %s a ON a.%s = s.%s
		WHERE s.%s = $1`,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.ExpiresAt, schema.UserSession.CreatedAt,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.CreatedAt,
		schema.UserSession.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.UserSession.UserID,
		schema.UserSession.ID,
	)

	session := &Session{}
	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt,
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, dberr.ErrNotFound
		}
		return nil, nil, fmt.Errorf("postgres_session_repo_find_failed: %w", err)
	}

	return session, user, nil
}

// UpdateExpiry moves a session's expiry; absent ids are ignored.
func (repository *PostgresSessionRepository) UpdateExpiry(context context.Context, id string, expiresAt time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.UserSession.Table, schema.UserSession.ExpiresAt, schema.UserSession.ID)

	if _, err := repository.pool.Exec(context, query, expiresAt, id); err != nil {
		return fmt.Errorf("postgres_session_repo_update_expiry_failed: %w", err)
	}

	return nil
}

// Delete removes a session by id.
func (repository *PostgresSessionRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_session_repo_delete_failed: %w", err)
	}

	return nil
}

// DeleteByUser removes every session of a user.
func (repository *PostgresSessionRepository) DeleteByUser(context context.Context, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.UserID)

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres_session_repo_delete_by_user_failed: %w", err)
	}

	return nil
}

// DeleteOthers removes every session of a user except keepID.
func (repository *PostgresSessionRepository) DeleteOthers(context context.Context, userID, keepID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s <> $2`,
		schema.UserSession.Table, schema.UserSession.UserID, schema.UserSession.ID)

	if _, err := repository.pool.Exec(context, query, userID, keepID); err != nil {
		return fmt.Errorf("postgres_session_repo_delete_others_failed: %w", err)
	}

	return nil
}

// ListByUser returns the sessions of a user, newest first.
func (repository *PostgresSessionRepository) ListByUser(context context.Context, userID string) ([]*Session, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.ExpiresAt, schema.UserSession.CreatedAt,
		schema.UserSession.Table,
		schema.UserSession.UserID,
		schema.UserSession.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_failed: %w", err)
	}

	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Session, error) {
		session := &Session{}
		err := row.Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
		return session, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_scan_failed: %w", err)
	}

	return sessions, nil
}

// DeleteExpired removes sessions whose expiry is at or before now.
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context, now time.Time) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s <= $1`,
		schema.UserSession.Table, schema.UserSession.ExpiresAt)

	tag, err := repository.pool.Exec(context, query, now)
	if err != nil {
		return 0, fmt.Errorf("postgres_session_repo_delete_expired_failed: %w", err)
	}

	return tag.RowsAffected(), nil
}
