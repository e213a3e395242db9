// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/constants"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
)

// redisSession is the JSON value stored under each session key.
type redisSession struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisSessionRepository implements SessionRepository on Redis.
//
// Each session lives under "auth:session:<id>" with a TTL equal to its
// remaining lifetime; "auth:user_sessions:<userID>" indexes a user's sessions.
// Accounts stay in Postgres, so the user join goes through a UserRepository.
type RedisSessionRepository struct {
	client redis.UniversalClient
	users  UserRepository
	now    func() time.Time
}

// NewRedisSessionRepository creates a Redis-backed SessionRepository.
func NewRedisSessionRepository(client redis.UniversalClient, users UserRepository) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, users: users, now: time.Now}
}

func sessionKey(id string) string {
	return constants.RedisPrefixSession + id
}

func userSessionsKey(userID string) string {
	return constants.RedisPrefixUserSessions + userID
}

/*
Create stores the session with a TTL matching its remaining lifetime.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: apperr.Conflict when the id is taken, the user does not exist or
    the session is already expired
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {

	// Redis has no foreign keys; check the owner explicitly
	if _, err := repository.users.FindByID(context, session.UserID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.Conflict("Session could not be created")
		}
		return fmt.Errorf("redis_session_repo_create_user_lookup_failed: %w", err)
	}

	// A key needs a positive TTL
	ttl := session.ExpiresAt.Sub(repository.now())
	if ttl <= 0 {
		return apperr.Conflict("Session is already expired")
	}

	payload, err := json.Marshal(redisSession{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("redis_session_repo_marshal_failed: %w", err)
	}

	created, err := repository.client.SetNX(context, sessionKey(session.ID), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis_session_repo_create_failed: %w", err)
	}
	if !created {
		return apperr.Conflict("Session could not be created")
	}

	// Keep the index alive at least as long as the newest session
	pipe := repository.client.TxPipeline()
	pipe.SAdd(context, userSessionsKey(session.UserID), session.ID)
	pipe.Expire(context, userSessionsKey(session.UserID), SessionTTL)
	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_repo_index_failed: %w", err)
	}

	return nil
}

/*
FindByID loads the session and resolves its user.

Returns:
  - *Session, *User: Hydrated pair
  - error: dberr.ErrNotFound when the key is gone or the user no longer exists
*/
func (repository *RedisSessionRepository) FindByID(context context.Context, id string) (*Session, *User, error) {
	session, err := repository.load(context, id)
	if err != nil {
		return nil, nil, err
	}

	user, err := repository.users.FindByID(context, session.UserID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, nil, dberr.ErrNotFound
		}
		return nil, nil, fmt.Errorf("redis_session_repo_user_lookup_failed: %w", err)
	}

	return session, user, nil
}

// UpdateExpiry rewrites the record with the new expiry and TTL; absent keys are ignored.
func (repository *RedisSessionRepository) UpdateExpiry(context context.Context, id string, expiresAt time.Time) error {
	session, err := repository.load(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil
		}
		return err
	}

	ttl := expiresAt.Sub(repository.now())
	if ttl <= 0 {
		return repository.Delete(context, id)
	}

	payload, err := json.Marshal(redisSession{
		UserID:    session.UserID,
		ExpiresAt: expiresAt,
		CreatedAt: session.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("redis_session_repo_marshal_failed: %w", err)
	}

	// XX: never resurrect a key deleted concurrently
	if err := repository.client.SetXX(context, sessionKey(id), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_update_expiry_failed: %w", err)
	}

	if err := repository.client.Expire(context, userSessionsKey(session.UserID), SessionTTL).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_index_failed: %w", err)
	}

	return nil
}

// Delete removes a session and its index entry.
func (repository *RedisSessionRepository) Delete(context context.Context, id string) error {
	session, err := repository.load(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil
		}
		return err
	}

	pipe := repository.client.TxPipeline()
	pipe.Del(context, sessionKey(id))
	pipe.SRem(context, userSessionsKey(session.UserID), id)
	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_repo_delete_failed: %w", err)
	}

	return nil
}

// DeleteByUser removes every session of a user along with the index.
func (repository *RedisSessionRepository) DeleteByUser(context context.Context, userID string) error {
	return repository.deleteWhere(context, userID, func(string) bool { return true })
}

// DeleteOthers removes every session of a user except keepID.
func (repository *RedisSessionRepository) DeleteOthers(context context.Context, userID, keepID string) error {
	return repository.deleteWhere(context, userID, func(id string) bool { return id != keepID })
}

// ListByUser returns the live sessions of a user, newest first. Stale index entries are pruned.
func (repository *RedisSessionRepository) ListByUser(context context.Context, userID string) ([]*Session, error) {
	ids, err := repository.client.SMembers(context, userSessionsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_session_repo_list_failed: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = sessionKey(id)
	}

	values, err := repository.client.MGet(context, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_session_repo_list_failed: %w", err)
	}

	var (
		sessions []*Session
		stale    []any
	)
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}

		var record redisSession
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("redis_session_repo_unmarshal_failed: %w", err)
		}
		sessions = append(sessions, &Session{
			ID:        ids[i],
			UserID:    record.UserID,
			ExpiresAt: record.ExpiresAt,
			CreatedAt: record.CreatedAt,
		})
	}

	if len(stale) > 0 {
		_ = repository.client.SRem(context, userSessionsKey(userID), stale...).Err()
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	return sessions, nil
}

// DeleteExpired is a no-op: Redis expires session keys on its own.
func (repository *RedisSessionRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

// load fetches and decodes one session record.
func (repository *RedisSessionRepository) load(context context.Context, id string) (*Session, error) {
	raw, err := repository.client.Get(context, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("redis_session_repo_get_failed: %w", err)
	}

	var record redisSession
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("redis_session_repo_unmarshal_failed: %w", err)
	}

	return &Session{
		ID:        id,
		UserID:    record.UserID,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
	}, nil
}

// deleteWhere removes the indexed sessions of a user accepted by match.
func (repository *RedisSessionRepository) deleteWhere(context context.Context, userID string, match func(id string) bool) error {
	indexKey := userSessionsKey(userID)

	ids, err := repository.client.SMembers(context, indexKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_repo_delete_failed: %w", err)
	}

	pipe := repository.client.TxPipeline()
	for _, id := range ids {
		if match(id) {
			pipe.Del(context, sessionKey(id))
			pipe.SRem(context, indexKey, id)
		}
	}

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_repo_delete_failed: %w", err)
	}

	return nil
}
