// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookmarks/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookmarks/internal/platform/request"
	"github.com/taibuivan/bookmarks/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the /api/categories endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the category endpoints. Callers must already require auth.
//
// # Endpoints
//   - GET    /      : Lists the caller's categories.
//   - POST   /      : Creates a category.
//   - GET    /{id}  : Returns one owned category.
//   - PUT    /{id}  : Updates an owned category.
//   - DELETE /{id}  : Deletes an empty owned category.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCategories)
	router.Post("/", handler.createCategory)

	// Owner only
	router.Group(func(owned chi.Router) {
		owned.Use(middleware.RequireOwnership("Category", "id", handler.service.OwnerOf))

		owned.Get("/{id}", handler.getCategory)
		owned.Put("/{id}", handler.updateCategory)
		owned.Delete("/{id}", handler.deleteCategory)
	})
}

// # Request Payloads

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// # Handlers

/*
GET /api/categories

Description: The caller's categories ordered by name.

Response:
  - 200: []Category
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categories, err := handler.service.ListCategories(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

/*
GET /api/categories/{id}

Response:
  - 200: Category
  - 404: Category not found (or not owned)
*/
func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	userID, categoryID, err := ownedID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.GetCategory(request.Context(), userID, categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

/*
POST /api/categories

Request:
  - Body: {name, description?}

Response:
  - 201: Category
  - 400: Validation failure
  - 409: Name already used by this user
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := &Category{UserID: userID, Name: input.Name, Description: input.Description}
	if err := handler.service.CreateCategory(request.Context(), category); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

/*
PUT /api/categories/{id}

Description: Rewrites name and description of an owned category.

Response:
  - 200: Category
  - 400: Validation failure
  - 404: Category not found (or not owned)
  - 409: Name already used by this user
*/
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	userID, categoryID, err := ownedID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := &Category{ID: categoryID, UserID: userID, Name: input.Name, Description: input.Description}
	if err := handler.service.UpdateCategory(request.Context(), category); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

/*
DELETE /api/categories/{id}

Response:
  - 204: Deleted
  - 404: Category not found (or not owned)
  - 409: Category still holds bookmarks
*/
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	userID, categoryID, err := ownedID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), userID, categoryID); err != nil {
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

	categoryID, err := requestutil.ID(request, "id", "Category")
	return userID, categoryID, err
}
