// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/bookmarks/internal/platform/request"
	"github.com/taibuivan/bookmarks/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the /api/languages endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the language endpoints. Callers must already require auth.
//
// # Endpoints
//   - GET  /      : Lists every language.
//   - POST /      : Registers a language.
//   - GET  /{id}  : Returns one language.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listLanguages)
	router.Post("/", handler.createLanguage)
	router.Get("/{id}", handler.getLanguage)
}

// # Handlers

/*
GET /api/languages

Description: The global language list ordered by name.

Response:
  - 200: []Language
*/
func (handler *Handler) listLanguages(writer http.ResponseWriter, request *http.Request) {
	langs, err := handler.service.ListLanguages(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, langs)
}

/*
GET /api/languages/{id}

Response:
  - 200: Language
  - 404: Language not found
*/
func (handler *Handler) getLanguage(writer http.ResponseWriter, request *http.Request) {
	languageID, err := requestutil.ID(request, "id", "Language")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lang, err := handler.service.GetLanguage(request.Context(), int(languageID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lang)
}

// # Request Payloads

type createLanguageRequest struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

/*
POST /api/languages

Request:
  - Body: {name, short_name}

Response:
  - 201: Language
  - 400: Validation failure
  - 409: Name or short name already exists
*/
func (handler *Handler) createLanguage(writer http.ResponseWriter, request *http.Request) {
	var input createLanguageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lang := &Language{Name: input.Name, ShortName: input.ShortName}
	if err := handler.service.CreateLanguage(request.Context(), lang); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, lang)
}
