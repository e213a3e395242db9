// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
	"github.com/taibuivan/bookmarks/internal/users/auth"
)

// memoryStore is an in-memory UserRepository and SessionRepository with the
// same constraints as the Postgres schema (unique ids, owner must exist,
// cascade on user delete).
type memoryStore struct {
	mu       sync.Mutex
	users    map[string]*auth.User
	sessions map[string]*auth.Session

	updateExpiryCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[string]*auth.User),
		sessions: make(map[string]*auth.Session),
	}
}

func (store *memoryStore) addUser(id, username string) *auth.User {
	store.mu.Lock()
	defer store.mu.Unlock()

	user := &auth.User{ID: id, Username: username, CreatedAt: time.Now()}
	store.users[id] = user
	return user
}

func (store *memoryStore) session(id string) (*auth.Session, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	session, ok := store.sessions[id]
	if !ok {
		return nil, false
	}
	clone := *session
	return &clone, true
}

// # UserRepository

func (store *memoryStore) FindByID(_ context.Context, id string) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (store *memoryStore) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (store *memoryStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if user.Email != nil && *user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (store *memoryStore) Create(_ context.Context, user *auth.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.users {
		if existing.Username == user.Username {
			return apperr.Conflict("Username is already taken")
		}
	}
	clone := *user
	store.users[user.ID] = &clone
	return nil
}

func (store *memoryStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.users, id)
	for sessionID, session := range store.sessions {
		if session.UserID == id {
			delete(store.sessions, sessionID)
		}
	}
	return nil
}

// sessionStore exposes the session half of memoryStore under the SessionRepository method names.
type sessionStore struct{ *memoryStore }

func (store sessionStore) Create(_ context.Context, session *auth.Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.users[session.UserID]; !ok {
		return apperr.Conflict("Session could not be created")
	}
	if _, ok := store.sessions[session.ID]; ok {
		return apperr.Conflict("Session could not be created")
	}
	clone := *session
	store.sessions[session.ID] = &clone
	return nil
}

func (store sessionStore) FindByID(_ context.Context, id string) (*auth.Session, *auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	session, ok := store.sessions[id]
	if !ok {
		return nil, nil, dberr.ErrNotFound
	}
	user := store.users[session.UserID]
	sessionCopy, userCopy := *session, *user
	return &sessionCopy, &userCopy, nil
}

func (store sessionStore) UpdateExpiry(_ context.Context, id string, expiresAt time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.updateExpiryCalls++
	if session, ok := store.sessions[id]; ok {
		session.ExpiresAt = expiresAt
	}
	return nil
}

func (store sessionStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.sessions, id)
	return nil
}

func (store sessionStore) DeleteByUser(_ context.Context, userID string) error {
	return store.DeleteOthers(context.Background(), userID, "")
}

func (store sessionStore) DeleteOthers(_ context.Context, userID, keepID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for id, session := range store.sessions {
		if session.UserID == userID && id != keepID {
			delete(store.sessions, id)
		}
	}
	return nil
}

func (store sessionStore) ListByUser(_ context.Context, userID string) ([]*auth.Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var sessions []*auth.Session
	for _, session := range store.sessions {
		if session.UserID == userID {
			clone := *session
			sessions = append(sessions, &clone)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

func (store sessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var removed int64
	for id, session := range store.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(store.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
