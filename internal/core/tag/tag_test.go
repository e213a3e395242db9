// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookmarks/internal/core/tag"
	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/ctxutil"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
	"github.com/taibuivan/bookmarks/internal/platform/sec"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListTags(ctx context.Context, userID string, withCounts bool) ([]*tag.Tag, error) {
	args := m.Called(ctx, userID, withCounts)
	tags, _ := args.Get(0).([]*tag.Tag)
	return tags, args.Error(1)
}

func (m *mockRepository) CreateTag(ctx context.Context, t *tag.Tag) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockRepository) RenameTag(ctx context.Context, t *tag.Tag) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockRepository) DeleteTag(ctx context.Context, userID string, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockRepository) OwnerOf(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func newService(repository tag.Repository) *tag.Service {
	return tag.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newRouter(repository tag.Repository) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := &sec.Identity{User: &sec.AuthUser{ID: "alice"}, Session: &sec.AuthSession{ID: "session"}}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(request.Context(), identity)))
		})
	})
	router.Route("/api/tags", tag.NewHandler(newService(repository)).RegisterRoutes)
	return router
}

/*
TestCreateTag_CaseFolds stores names lower-cased and trimmed.
*/
func TestCreateTag_CaseFolds(t *testing.T) {
	repository := &mockRepository{}
	repository.On("CreateTag", mock.Anything, mock.MatchedBy(func(t *tag.Tag) bool {
		return t.Name == "golang" && t.UserID == "alice"
	})).Return(nil)

	err := newService(repository).CreateTag(context.Background(), &tag.Tag{UserID: "alice", Name: "  GoLang "})

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

/*
TestCreateTag_Validation never reaches the store with a blank name.
*/
func TestCreateTag_Validation(t *testing.T) {
	repository := &mockRepository{}

	err := newService(repository).CreateTag(context.Background(), &tag.Tag{UserID: "alice", Name: " "})

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	repository.AssertNotCalled(t, "CreateTag", mock.Anything, mock.Anything)
}

/*
TestRenameTag_NotFound names the resource.
*/
func TestRenameTag_NotFound(t *testing.T) {
	repository := &mockRepository{}
	repository.On("RenameTag", mock.Anything, mock.Anything).Return(dberr.ErrNotFound)

	err := newService(repository).RenameTag(context.Background(), &tag.Tag{ID: 7, UserID: "alice", Name: "x"})

	assert.EqualError(t, err, "Tag not found")
}

/*
TestListTags_Counts forwards the counts flag from the query string.
*/
func TestListTags_Counts(t *testing.T) {
	count := 3
	repository := &mockRepository{}
	repository.On("ListTags", mock.Anything, "alice", true).
		Return([]*tag.Tag{{ID: 1, Name: "go", SiteCount: &count}}, nil)
	repository.On("ListTags", mock.Anything, "alice", false).
		Return([]*tag.Tag{{ID: 1, Name: "go"}}, nil)

	router := newRouter(repository)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/tags?counts=true", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"site_count":3`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/tags", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "site_count")
}

/*
TestMutations_RequireOwnership hides another user's tag behind 404.
*/
func TestMutations_RequireOwnership(t *testing.T) {
	repository := &mockRepository{}
	repository.On("OwnerOf", mock.Anything, int64(5)).Return("bob", nil)
	repository.On("OwnerOf", mock.Anything, int64(6)).Return("alice", nil)
	repository.On("DeleteTag", mock.Anything, "alice", int64(6)).Return(nil)

	router := newRouter(repository)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/api/tags/5", strings.NewReader(`{"name":"mine"}`)))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/api/tags/5", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/api/tags/6", nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	repository.AssertNotCalled(t, "RenameTag", mock.Anything, mock.Anything)
	repository.AssertNotCalled(t, "DeleteTag", mock.Anything, "alice", int64(5))
}
