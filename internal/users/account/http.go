// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookmarks/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookmarks/internal/platform/request"
	"github.com/taibuivan/bookmarks/internal/platform/respond"
	"github.com/taibuivan/bookmarks/internal/platform/sec"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
	cookies        *sec.CookieIssuer
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, cookies *sec.CookieIssuer) *Handler {
	return &Handler{accountService: service, cookies: cookies}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
//
// All endpoints require an active session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// Account Management
	router.Get("/", handler.getMe)
	router.Delete("/", handler.deleteMe)

	// Session Security
	router.Get("/sessions", handler.listSessions)
	router.Delete("/sessions", handler.revokeOtherSessions)
	router.Delete("/sessions/{id}", handler.revokeSession)

	return router
}

// # User Profile Endpoints

/*
GET /api/account

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/account

Description: Deletes the account with its sessions and library, then clears
the session cookie.

Response:
  - 204: No Content: Account deleted successfully
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.Clear(writer)
	respond.NoContent(writer)
}

// # Session Security Endpoints

/*
GET /api/account/sessions

Description: Enumerates all devices currently authenticated into the user's account.

Response:
  - 200: []SessionInfo: List of active device sessions
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	sessions, err := handler.accountService.ListSessions(request.Context(), identity.User.ID, identity.Session.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

/*
DELETE /api/account/sessions/{id}

Description: Forces a sign-out on a specific device identified by its session ID.

Response:
  - 204: No Content: Session terminated successfully
  - 401: ErrUnauthorized: Authentication required
  - 404: Session not found (or not owned)
*/
func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)
	sessionID := chi.URLParam(request, "id")

	if err := handler.accountService.RevokeSession(request.Context(), identity.User.ID, sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Revoking the current device is a logout
	if sessionID == identity.Session.ID {
		handler.cookies.Clear(writer)
	}

	respond.NoContent(writer)
}

/*
DELETE /api/account/sessions

Description: Forces a sign-out on all devices except the one making the request.

Response:
  - 204: No Content: All other sessions terminated
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) revokeOtherSessions(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	if err := handler.accountService.RevokeOtherSessions(request.Context(), identity.User.ID, identity.Session.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
