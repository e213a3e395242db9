// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/ctxutil"
	"github.com/taibuivan/bookmarks/internal/platform/respond"
	"github.com/taibuivan/bookmarks/internal/platform/sec"
)

// SessionValidator resolves a raw session token into an identity.
//
// A nil identity with a nil error means the token does not name a live session.
// A non-nil error is reserved for store faults.
type SessionValidator interface {
	Identify(ctx context.Context, token string) (*sec.Identity, error)
}

// # Authentication

/*
Authenticate resolves the session cookie into a [sec.Identity] for every request.

Flow:
 1. No cookie: the request proceeds anonymous.
 2. Cookie names a live session: the cookie is re-issued with the (possibly
    renewed) expiry and the identity is attached.
 3. Cookie names nothing: the cookie is cleared and the request proceeds anonymous.
 4. Store fault: logged, the request proceeds anonymous, the cookie is left alone.

Parameters:
  - validator: SessionValidator (usually the session manager)
  - cookies: *sec.CookieIssuer

Returns:
  - An [http.Handler] middleware.
*/
func Authenticate(validator SessionValidator, cookies *sec.CookieIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			anonymous := &sec.Identity{}

			// 1. Anonymous access
			token := cookies.Read(request)
			if token == "" {
				next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(ctx, anonymous)))
				return
			}

			// 2. Resolve the session
			identity, err := validator.Identify(ctx, token)
			if err != nil {
				ctxutil.GetLogger(ctx).ErrorContext(ctx, "session_validation_failed", slog.Any("error", err))
				next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(ctx, anonymous)))
				return
			}

			// 3. Stale or unknown token
			if !identity.Authenticated() {
				cookies.Clear(writer)
				next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(ctx, anonymous)))
				return
			}

			// 4. Live session: refresh the cookie and enrich the request logger
			cookies.Set(writer, token, identity.Session.ExpiresAt)

			if tagger, ok := writer.(userTagger); ok {
				tagger.tagUser(identity.User.ID)
			}

			logger := ctxutil.GetLogger(ctx).With(slog.String("user_id", identity.User.ID))
			ctx = ctxutil.WithLogger(ctxutil.WithIdentity(ctx, identity), logger)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

/*
RequireAuth blocks requests that are not authenticated.

Must be registered in the router AFTER [Authenticate].
*/
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !ctxutil.GetIdentity(request.Context()).Authenticated() {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Ownership

// OwnerLookup returns the user id owning the row with the given id.
// A missing row is reported as an error (typically dberr.ErrNotFound).
type OwnerLookup func(ctx context.Context, id int64) (ownerID string, err error)

/*
RequireOwnership admits a request only when the authenticated user owns the
resource named by the URL parameter.

A malformed id, a missing row and a row owned by someone else all answer the
same 404 so the response never reveals whether the id exists. Infrastructure
faults from the lookup surface as 500.

Parameters:
  - resource: string (display name used in the 404 message, e.g. "Category")
  - param: string (chi URL parameter holding the numeric id)
  - lookup: OwnerLookup

Returns:
  - An [http.Handler] middleware. Must be mounted after [RequireAuth].
*/
func RequireOwnership(resource, param string, lookup OwnerLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			id, err := strconv.ParseInt(chi.URLParam(request, param), 10, 64)
			if err != nil || id <= 0 {
				respond.Error(writer, request, apperr.NotFound(resource))
				return
			}

			if err := CheckOwnership(ctx, resource, id, lookup); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

/*
CheckOwnership applies the ownership rule outside of routing, for
cross-references such as the category a bookmark is filed under.

Returns:
  - nil when the caller owns the row
  - apperr.NotFound(resource) when the row is missing or foreign, or the caller is anonymous
  - the lookup error for any other failure
*/
func CheckOwnership(ctx context.Context, resource string, id int64, lookup OwnerLookup) error {
	userID := ctxutil.GetIdentity(ctx).UserID()
	if userID == "" {
		return apperr.NotFound(resource)
	}

	ownerID, err := lookup(ctx, id)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.NotFound(resource)
		}
		return err
	}

	if ownerID != userID {
		return apperr.NotFound(resource)
	}

	return nil
}
