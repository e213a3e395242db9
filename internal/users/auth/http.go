// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookmarks/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookmarks/internal/platform/request"
	"github.com/taibuivan/bookmarks/internal/platform/respond"
	"github.com/taibuivan/bookmarks/internal/platform/sec"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
	cookies     *sec.CookieIssuer
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, cookies *sec.CookieIssuer) *Handler {
	return &Handler{authService: service, cookies: cookies}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Opens a session and sets the cookie.
//   - POST /logout   : Closes the current session.
//   - GET  /session  : Returns the current identity.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Get("/session", handler.session)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Password string  `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User    *User            `json:"user"`
	Session *sec.AuthSession `json:"session"`
}

/*
POST /api/auth/register

Description: Creates an account. Does not log the user in.

Request:
  - Body: registerRequest (Username, Email?, Password)

Response:
  - 201: User: Created account
  - 400: Validation failure
  - 409: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
POST /api/auth/login

Description: Verifies credentials, replaces any session the browser already
holds and sets the session cookie.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: loginResponse: User and session expiry
  - 401: Invalid username or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Username:     input.Username,
		Password:     input.Password,
		CurrentToken: handler.cookies.Read(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.Set(writer, result.Token, result.Session.ExpiresAt)

	respond.OK(writer, loginResponse{
		User:    result.User,
		Session: &sec.AuthSession{ID: result.Session.ID, ExpiresAt: result.Session.ExpiresAt},
	})
}

/*
POST /api/auth/logout

Description: Invalidates the current session and clears the cookie.

Response:
  - 204: Session terminated
  - 401: Not authenticated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	if err := handler.authService.Logout(request.Context(), identity.Session.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.Clear(writer)
	respond.NoContent(writer)
}

/*
GET /api/auth/session

Description: Returns the identity resolved by the authentication gate.
Both fields are null for anonymous callers.

Response:
  - 200: sec.Identity
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, requestutil.Identity(request))
}
