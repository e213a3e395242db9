// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/sec"
	"github.com/taibuivan/bookmarks/internal/users/auth"
)

const day = 24 * time.Hour

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newManager wires a manager over an in-memory store with one registered user.
func newManager(t *testing.T) (*auth.SessionManager, *memoryStore, *clock) {
	t.Helper()

	store := newMemoryStore()
	store.addUser("user-1", "alice")
	clk := newClock()

	manager := auth.NewSessionManager(sessionStore{store}, discardLogger(), auth.WithClock(clk.Now))
	return manager, store, clk
}

func mustToken(t *testing.T) string {
	t.Helper()
	token, err := sec.GenerateSessionToken()
	require.NoError(t, err)
	return token
}

/*
TestCreateSession_StoresHashedID verifies the record is keyed by the token hash and lives 30 days.
*/
func TestCreateSession_StoresHashedID(t *testing.T) {
	manager, store, clk := newManager(t)
	token := mustToken(t)

	session, err := manager.CreateSession(context.Background(), token, "user-1")
	require.NoError(t, err)

	assert.Equal(t, sec.HashToken(token), session.ID)
	assert.NotEqual(t, token, session.ID)
	assert.Equal(t, clk.Now().Add(30*day), session.ExpiresAt)

	stored, ok := store.session(session.ID)
	require.True(t, ok)
	assert.Equal(t, "user-1", stored.UserID)
}

/*
TestCreateSession_Conflicts covers the duplicate-id and unknown-user constraints.
*/
func TestCreateSession_Conflicts(t *testing.T) {
	manager, _, _ := newManager(t)
	ctx := context.Background()
	token := mustToken(t)

	_, err := manager.CreateSession(ctx, token, "user-1")
	require.NoError(t, err)

	_, err = manager.CreateSession(ctx, token, "user-1")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = manager.CreateSession(ctx, mustToken(t), "ghost")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestValidateSessionToken_Lifecycle walks one session across the renewal and expiry boundaries.
*/
func TestValidateSessionToken_Lifecycle(t *testing.T) {
	created := newClock().Now()

	tests := []struct {
		name        string
		at          time.Time
		wantValid   bool
		wantExpires time.Time
		wantUpdate  bool
	}{
		{"fresh", created.Add(time.Hour), true, created.Add(30 * day), false},
		{"just_before_window", created.Add(15*day - time.Nanosecond), true, created.Add(30 * day), false},
		{"window_boundary", created.Add(15 * day), true, created.Add(45 * day), true},
		{"inside_window", created.Add(20 * day), true, created.Add(50 * day), true},
		{"just_before_expiry", created.Add(30*day - time.Nanosecond), true, created.Add(60*day - time.Nanosecond), true},
		{"expiry_boundary", created.Add(30 * day), false, time.Time{}, false},
		{"long_expired", created.Add(90 * day), false, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, store, clk := newManager(t)
			ctx := context.Background()
			token := mustToken(t)

			_, err := manager.CreateSession(ctx, token, "user-1")
			require.NoError(t, err)

			clk.Set(tt.at)
			session, user, err := manager.ValidateSessionToken(ctx, token)
			require.NoError(t, err)

			if !tt.wantValid {
				assert.Nil(t, session)
				assert.Nil(t, user)

				// Lazy deletion
				_, stillStored := store.session(sec.HashToken(token))
				assert.False(t, stillStored)
				return
			}

			require.NotNil(t, session)
			require.NotNil(t, user)
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, tt.wantExpires, session.ExpiresAt)

			stored, ok := store.session(session.ID)
			require.True(t, ok)
			assert.Equal(t, tt.wantExpires, stored.ExpiresAt)
			assert.Equal(t, tt.wantUpdate, store.updateExpiryCalls > 0)
		})
	}
}

/*
TestValidateSessionToken_Unknown returns an empty result without error.
*/
func TestValidateSessionToken_Unknown(t *testing.T) {
	manager, _, _ := newManager(t)

	session, user, err := manager.ValidateSessionToken(context.Background(), mustToken(t))

	assert.NoError(t, err)
	assert.Nil(t, session)
	assert.Nil(t, user)
}

/*
TestValidateSessionToken_RenewalIsSticky validates twice inside the window: only the first renews.
*/
func TestValidateSessionToken_RenewalIsSticky(t *testing.T) {
	manager, store, clk := newManager(t)
	ctx := context.Background()
	token := mustToken(t)
	created := clk.Now()

	_, err := manager.CreateSession(ctx, token, "user-1")
	require.NoError(t, err)

	clk.Set(created.Add(16 * day))
	first, _, err := manager.ValidateSessionToken(ctx, token)
	require.NoError(t, err)

	clk.Set(created.Add(17 * day))
	second, _, err := manager.ValidateSessionToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, created.Add(46*day), first.ExpiresAt)
	assert.Equal(t, first.ExpiresAt, second.ExpiresAt)
	assert.Equal(t, 1, store.updateExpiryCalls)
}

/*
TestInvalidateSession revokes immediately and is idempotent.
*/
func TestInvalidateSession(t *testing.T) {
	manager, _, _ := newManager(t)
	ctx := context.Background()
	token := mustToken(t)

	session, err := manager.CreateSession(ctx, token, "user-1")
	require.NoError(t, err)

	require.NoError(t, manager.InvalidateSession(ctx, session.ID))
	require.NoError(t, manager.InvalidateSession(ctx, session.ID))
	require.NoError(t, manager.InvalidateSession(ctx, "never-existed"))

	got, user, err := manager.ValidateSessionToken(ctx, token)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Nil(t, user)
}

/*
TestSessions_AreIndependent verifies two logins of one user do not affect each other.
*/
func TestSessions_AreIndependent(t *testing.T) {
	manager, _, _ := newManager(t)
	ctx := context.Background()
	laptop, phone := mustToken(t), mustToken(t)

	laptopSession, err := manager.CreateSession(ctx, laptop, "user-1")
	require.NoError(t, err)
	_, err = manager.CreateSession(ctx, phone, "user-1")
	require.NoError(t, err)

	require.NoError(t, manager.InvalidateSession(ctx, laptopSession.ID))

	session, _, err := manager.ValidateSessionToken(ctx, phone)
	require.NoError(t, err)
	assert.NotNil(t, session)
}

/*
TestListAndInvalidateOthers covers the account-page session operations.
*/
func TestListAndInvalidateOthers(t *testing.T) {
	manager, _, clk := newManager(t)
	ctx := context.Background()
	start := clk.Now()

	old, err := manager.CreateSession(ctx, mustToken(t), "user-1")
	require.NoError(t, err)

	clk.Set(start.Add(10 * day))
	current, err := manager.CreateSession(ctx, mustToken(t), "user-1")
	require.NoError(t, err)

	clk.Set(start.Add(11 * day))
	other, err := manager.CreateSession(ctx, mustToken(t), "user-1")
	require.NoError(t, err)

	// The first session has expired by now
	clk.Set(start.Add(31 * day))
	sessions, err := manager.ListSessions(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, other.ID, sessions[0].ID)
	assert.Equal(t, current.ID, sessions[1].ID)

	require.NoError(t, manager.InvalidateOtherSessions(ctx, "user-1", current.ID))

	sessions, err = manager.ListSessions(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, current.ID, sessions[0].ID)
	assert.NotEqual(t, old.ID, sessions[0].ID)
}

/*
TestDeleteExpired purges only sessions past their expiry.
*/
func TestDeleteExpired(t *testing.T) {
	manager, store, clk := newManager(t)
	ctx := context.Background()
	start := clk.Now()

	expired, err := manager.CreateSession(ctx, mustToken(t), "user-1")
	require.NoError(t, err)

	clk.Set(start.Add(5 * day))
	live, err := manager.CreateSession(ctx, mustToken(t), "user-1")
	require.NoError(t, err)

	clk.Set(start.Add(30 * day))
	removed, err := manager.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, ok := store.session(expired.ID)
	assert.False(t, ok)
	_, ok = store.session(live.ID)
	assert.True(t, ok)
}

/*
TestIdentify maps the validated pair into the request identity.
*/
func TestIdentify(t *testing.T) {
	manager, _, _ := newManager(t)
	ctx := context.Background()
	token := mustToken(t)

	session, err := manager.CreateSession(ctx, token, "user-1")
	require.NoError(t, err)

	identity, err := manager.Identify(ctx, token)
	require.NoError(t, err)
	require.True(t, identity.Authenticated())
	assert.Equal(t, "user-1", identity.User.ID)
	assert.Equal(t, "alice", identity.User.Username)
	assert.Equal(t, session.ID, identity.Session.ID)

	anonymous, err := manager.Identify(ctx, mustToken(t))
	require.NoError(t, err)
	assert.Nil(t, anonymous)
}

// # Store faults

// mockSessionRepository fails on demand.
type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *auth.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*auth.Session, *auth.User, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*auth.Session)
	user, _ := args.Get(1).(*auth.User)
	return session, user, args.Error(2)
}

func (m *mockSessionRepository) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	return m.Called(ctx, id, expiresAt).Error(0)
}

func (m *mockSessionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSessionRepository) DeleteOthers(ctx context.Context, userID, keepID string) error {
	return m.Called(ctx, userID, keepID).Error(0)
}

func (m *mockSessionRepository) ListByUser(ctx context.Context, userID string) ([]*auth.Session, error) {
	args := m.Called(ctx, userID)
	sessions, _ := args.Get(0).([]*auth.Session)
	return sessions, args.Error(1)
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

/*
TestValidateSessionToken_StoreFaults surfaces store errors instead of reporting "no session".
*/
func TestValidateSessionToken_StoreFaults(t *testing.T) {
	unavailable := errors.New("connection refused")
	now := newClock().Now()

	t.Run("find_fails", func(t *testing.T) {
		repository := &mockSessionRepository{}
		repository.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil, unavailable)

		manager := auth.NewSessionManager(repository, discardLogger(), auth.WithClock(func() time.Time { return now }))
		_, _, err := manager.ValidateSessionToken(context.Background(), "token")

		assert.ErrorIs(t, err, unavailable)
		repository.AssertExpectations(t)
	})

	t.Run("renewal_fails", func(t *testing.T) {
		session := &auth.Session{ID: sec.HashToken("token"), UserID: "user-1", ExpiresAt: now.Add(day)}
		user := &auth.User{ID: "user-1", Username: "alice"}

		repository := &mockSessionRepository{}
		repository.On("FindByID", mock.Anything, session.ID).Return(session, user, nil)
		repository.On("UpdateExpiry", mock.Anything, session.ID, now.Add(30*day)).Return(unavailable)

		manager := auth.NewSessionManager(repository, discardLogger(), auth.WithClock(func() time.Time { return now }))
		_, _, err := manager.ValidateSessionToken(context.Background(), "token")

		assert.ErrorIs(t, err, unavailable)
		repository.AssertExpectations(t)
	})

	t.Run("lazy_delete_fails", func(t *testing.T) {
		session := &auth.Session{ID: sec.HashToken("token"), UserID: "user-1", ExpiresAt: now}
		user := &auth.User{ID: "user-1", Username: "alice"}

		repository := &mockSessionRepository{}
		repository.On("FindByID", mock.Anything, session.ID).Return(session, user, nil)
		repository.On("Delete", mock.Anything, session.ID).Return(unavailable)

		manager := auth.NewSessionManager(repository, discardLogger(), auth.WithClock(func() time.Time { return now }))
		identity, err := manager.Identify(context.Background(), "token")

		assert.ErrorIs(t, err, unavailable)
		assert.Nil(t, identity)
		repository.AssertExpectations(t)
	})
}
