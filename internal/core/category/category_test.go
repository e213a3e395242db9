// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookmarks/internal/core/category"
	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/ctxutil"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
	"github.com/taibuivan/bookmarks/internal/platform/sec"
)

// memoryRepository mirrors core.category: unique (userid, name) and a
// restrict from bookmarks, modelled by the inUse set.
type memoryRepository struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]*category.Category
	inUse      map[int64]bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{categories: map[int64]*category.Category{}, inUse: map[int64]bool{}}
}

func (repository *memoryRepository) ListCategories(_ context.Context, userID string) ([]*category.Category, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	list := []*category.Category{}
	for id := int64(1); id <= repository.nextID; id++ {
		if c, ok := repository.categories[id]; ok && c.UserID == userID {
			list = append(list, c)
		}
	}
	return list, nil
}

func (repository *memoryRepository) GetCategory(_ context.Context, userID string, id int64) (*category.Category, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	c, ok := repository.categories[id]
	if !ok || c.UserID != userID {
		return nil, dberr.ErrNotFound
	}
	return c, nil
}

func (repository *memoryRepository) duplicate(c *category.Category) bool {
	for _, existing := range repository.categories {
		if existing.ID != c.ID && existing.UserID == c.UserID && existing.Name == c.Name {
			return true
		}
	}
	return false
}

func (repository *memoryRepository) CreateCategory(_ context.Context, c *category.Category) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.duplicate(c) {
		return apperr.Conflict("Category with this name already exists")
	}
	repository.nextID++
	c.ID = repository.nextID
	repository.categories[c.ID] = c
	return nil
}

func (repository *memoryRepository) UpdateCategory(_ context.Context, c *category.Category) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.categories[c.ID]
	if !ok || existing.UserID != c.UserID {
		return dberr.ErrNotFound
	}
	if repository.duplicate(c) {
		return apperr.Conflict("Category with this name already exists")
	}
	repository.categories[c.ID] = c
	return nil
}

func (repository *memoryRepository) DeleteCategory(_ context.Context, userID string, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.categories[id]
	if !ok || existing.UserID != userID {
		return dberr.ErrNotFound
	}
	if repository.inUse[id] {
		return apperr.Conflict("Category still holds bookmarks")
	}
	delete(repository.categories, id)
	return nil
}

func (repository *memoryRepository) OwnerOf(_ context.Context, id int64) (string, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	c, ok := repository.categories[id]
	if !ok {
		return "", dberr.ErrNotFound
	}
	return c.UserID, nil
}

// # HTTP harness

// newRouter authenticates every request as the user named in X-Test-User.
func newRouter(repository *memoryRepository) http.Handler {
	service := category.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := &sec.Identity{
				User:    &sec.AuthUser{ID: request.Header.Get("X-Test-User")},
				Session: &sec.AuthSession{ID: "session"},
			}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(request.Context(), identity)))
		})
	})
	router.Route("/api/categories", category.NewHandler(service).RegisterRoutes)
	return router
}

func do(router http.Handler, user, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("X-Test-User", user)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func createdID(t *testing.T, recorder *httptest.ResponseRecorder) int64 {
	t.Helper()
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var body struct {
		Data category.Category `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body.Data.ID
}

// # Tests

/*
TestCategories_Isolation verifies one user can neither see nor touch another's categories.
*/
func TestCategories_Isolation(t *testing.T) {
	router := newRouter(newMemoryRepository())

	id := createdID(t, do(router, "alice", http.MethodPost, "/api/categories", `{"name":"Reading"}`))
	path := "/api/categories/" + itoa(id)

	// Bob sees nothing and gets the same 404 as for a missing id
	assert.JSONEq(t, `{"data":[]}`, do(router, "bob", http.MethodGet, "/api/categories", "").Body.String())

	foreign := do(router, "bob", http.MethodPut, path, `{"name":"Hijacked"}`)
	missing := do(router, "bob", http.MethodPut, "/api/categories/999", `{"name":"Hijacked"}`)
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String())

	assert.Equal(t, http.StatusNotFound, do(router, "bob", http.MethodDelete, path, "").Code)

	// Alice's category is untouched
	recorder := do(router, "alice", http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"Reading"`)
}

/*
TestCategories_UniquePerUser rejects duplicates for one user only.
*/
func TestCategories_UniquePerUser(t *testing.T) {
	router := newRouter(newMemoryRepository())

	createdID(t, do(router, "alice", http.MethodPost, "/api/categories", `{"name":"News"}`))

	assert.Equal(t, http.StatusConflict, do(router, "alice", http.MethodPost, "/api/categories", `{"name":"  News "}`).Code)
	createdID(t, do(router, "bob", http.MethodPost, "/api/categories", `{"name":"News"}`))
}

/*
TestCategories_Validation rejects a blank name.
*/
func TestCategories_Validation(t *testing.T) {
	router := newRouter(newMemoryRepository())

	recorder := do(router, "alice", http.MethodPost, "/api/categories", `{"name":"   "}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"field":"name"`)
}

/*
TestCategories_UpdateAndDelete covers the owner's mutations including the in-use conflict.
*/
func TestCategories_UpdateAndDelete(t *testing.T) {
	repository := newMemoryRepository()
	router := newRouter(repository)

	id := createdID(t, do(router, "alice", http.MethodPost, "/api/categories", `{"name":"Work","description":"  "}`))
	path := "/api/categories/" + itoa(id)

	recorder := do(router, "alice", http.MethodPut, path, `{"name":"Job","description":"Day job"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"description":"Day job"`)

	repository.inUse[id] = true
	assert.Equal(t, http.StatusConflict, do(router, "alice", http.MethodDelete, path, "").Code)

	repository.inUse[id] = false
	assert.Equal(t, http.StatusNoContent, do(router, "alice", http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, "alice", http.MethodGet, path, "").Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
