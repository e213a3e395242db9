// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"net/http"
	"strings"
	"time"
)

// CookieIssuer writes and clears the session cookie.
type CookieIssuer struct {
	name   string
	secure bool
}

// NewCookieIssuer builds an issuer for the named cookie. secure should be true in production.
func NewCookieIssuer(name string, secure bool) *CookieIssuer {
	return &CookieIssuer{name: name, secure: secure}
}

// Set writes the session cookie carrying the raw token until expiresAt.
// It replaces any session cookie already queued on the response.
func (issuer *CookieIssuer) Set(writer http.ResponseWriter, token string, expiresAt time.Time) {
	issuer.write(writer, &http.Cookie{
		Name:     issuer.name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   issuer.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear instructs the client to drop the session cookie.
func (issuer *CookieIssuer) Clear(writer http.ResponseWriter) {
	issuer.write(writer, &http.Cookie{
		Name:     issuer.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   issuer.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the raw token from the request, or "" when the cookie is absent or empty.
func (issuer *CookieIssuer) Read(request *http.Request) string {
	cookie, err := request.Cookie(issuer.name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// write queues cookie, dropping an earlier Set-Cookie of the same name so the
// response carries one session cookie even when the gate already refreshed it.
func (issuer *CookieIssuer) write(writer http.ResponseWriter, cookie *http.Cookie) {
	header := writer.Header()
	prefix := issuer.name + "="

	var kept []string
	for _, line := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(line, prefix) {
			kept = append(kept, line)
		}
	}

	header.Del("Set-Cookie")
	for _, line := range kept {
		header.Add("Set-Cookie", line)
	}

	http.SetCookie(writer, cookie)
}
