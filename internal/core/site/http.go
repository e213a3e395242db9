// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookmarks/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookmarks/internal/platform/request"
	"github.com/taibuivan/bookmarks/internal/platform/respond"
	"github.com/taibuivan/bookmarks/pkg/convert"
	"github.com/taibuivan/bookmarks/pkg/pagination"
	"github.com/taibuivan/bookmarks/pkg/query"
)

// # Definitions & Constructors

// Handler implements the /api/bookmarks and /api/sites endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /api/bookmarks. Callers must already require auth.
//
// # Endpoints
//   - GET    /      : Bookmarks grouped by category name.
//   - POST   /      : Files a bookmark.
//   - GET    /{id}  : Returns one owned bookmark.
//   - PUT    /{id}  : Rewrites an owned bookmark and its tag set.
//   - DELETE /{id}  : Deletes an owned bookmark.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listGrouped)
	router.Post("/", handler.createSite)

	// Owner only
	router.Group(func(owned chi.Router) {
		owned.Use(middleware.RequireOwnership("Bookmark", "id", handler.service.OwnerOf))

		owned.Get("/{id}", handler.getSite)
		owned.Put("/{id}", handler.updateSite)
		owned.Delete("/{id}", handler.deleteSite)
	})
}

// RegisterSearchRoutes mounts the paginated /api/sites listing.
func (handler *Handler) RegisterSearchRoutes(router chi.Router) {
	router.Get("/", handler.listSites)
}

/*
GET /api/bookmarks

Description: All of the caller's bookmarks grouped by category name.
Categories are alphabetical, bookmarks within a category ordered by name.

Response:
  - 200: map[string][]Site
*/
func (handler *Handler) listGrouped(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	grouped, err := handler.service.ListGrouped(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, grouped)
}

/*
GET /api/sites

Request:
  - Query: page, limit, category_id, tag_ids (comma list), q

Response:
  - 200: Paginated []Site
*/
func (handler *Handler) listSites(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := Filter{
		CategoryID: convert.ToInt64(values.Get("category_id")),
		TagIDs:     query.Int64List(values.Get("tag_ids")),
		Query:      values.Get("q"),
	}

	sites, total, err := handler.service.ListSites(request.Context(), userID, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, sites, pagination.NewMeta(paginationParams, total))
}

/*
GET /api/bookmarks/{id}

Response:
  - 200: Site with language and tags
  - 404: Bookmark not found (or not owned)
*/
func (handler *Handler) getSite(writer http.ResponseWriter, request *http.Request) {
	userID, siteID, err := ownedID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.GetSite(request.Context(), userID, siteID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, site)
}

/*
POST /api/bookmarks

Request:
  - Body: Input (name, url, description?, category_id, language_id?, tag_ids?)

Response:
  - 201: Site
  - 400: Validation failure
  - 404: Category or Language not found
*/
func (handler *Handler) createSite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.CreateSite(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, site)
}

/*
PUT /api/bookmarks/{id}

Description: Same rules as creation; the tag set is replaced, not merged.

Response:
  - 200: Site
  - 400: Validation failure
  - 404: Bookmark, Category or Language not found
*/
func (handler *Handler) updateSite(writer http.ResponseWriter, request *http.Request) {
	userID, siteID, err := ownedID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.UpdateSite(request.Context(), userID, siteID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, site)
}

/*
DELETE /api/bookmarks/{id}

Response:
  - 204: Deleted
  - 404: Bookmark not found (or not owned)
*/
func (handler *Handler) deleteSite(writer http.ResponseWriter, request *http.Request) {
	userID, siteID, err := ownedID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSite(request.Context(), userID, siteID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// ownedID returns the caller and the {id} already checked by the ownership gate.
func ownedID(request *http.Request) (string, int64, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return "", 0, err
	}

	siteID, err := requestutil.ID(request, "id", "Bookmark")
	return userID, siteID, err
}
