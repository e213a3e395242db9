// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookmarks/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookmarks/internal/platform/request"
	"github.com/taibuivan/bookmarks/internal/platform/respond"
	"github.com/taibuivan/bookmarks/pkg/convert"
)

// # Definitions & Constructors

// Handler implements the /api/tags endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the tag endpoints. Callers must already require auth.
//
// # Endpoints
//   - GET    /      : Lists the caller's tags, with usage counts on ?counts=true.
//   - POST   /      : Creates a tag.
//   - PUT    /{id}  : Renames an owned tag.
//   - DELETE /{id}  : Deletes an owned tag and detaches it from bookmarks.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTags)
	router.Post("/", handler.createTag)

	router.With(middleware.RequireOwnership("Tag", "id", handler.service.OwnerOf)).Put("/{id}", handler.renameTag)
	router.With(middleware.RequireOwnership("Tag", "id", handler.service.OwnerOf)).Delete("/{id}", handler.deleteTag)
}

// # Request Payloads

type tagRequest struct {
	Name string `json:"name"`
}

// # Handlers

/*
GET /api/tags

Request:
  - Query: counts (bool) adds the number of bookmarks carrying each tag

Response:
  - 200: []Tag
*/
func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	withCounts := convert.ToBool(request.URL.Query().Get("counts"))

	tags, err := handler.service.ListTags(request.Context(), userID, withCounts)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

/*
POST /api/tags

Description: Names are stored case-folded, so "Go" and "go" collide.

Request:
  - Body: {name}

Response:
  - 201: Tag
  - 400: Validation failure
  - 409: Name already used by this user
*/
func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input tagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag := &Tag{UserID: userID, Name: input.Name}
	if err := handler.service.CreateTag(request.Context(), tag); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, tag)
}

/*
PUT /api/tags/{id}

Response:
  - 200: Tag
  - 404: Tag not found (or not owned)
  - 409: Name already used by this user
*/
func (handler *Handler) renameTag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tagID, err := requestutil.ID(request, "id", "Tag")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input tagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag := &Tag{ID: tagID, UserID: userID, Name: input.Name}
	if err := handler.service.RenameTag(request.Context(), tag); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}

/*
DELETE /api/tags/{id}

Response:
  - 204: Deleted
  - 404: Tag not found (or not owned)
*/
func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tagID, err := requestutil.ID(request, "id", "Tag")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTag(request.Context(), userID, tagID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
