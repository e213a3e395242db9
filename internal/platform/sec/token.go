// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sec holds the security primitives of the API: password hashing,
session token generation and hashing, the session cookie and the
authenticated identity carried through the request context.
*/
package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
)

// SessionTokenBytes is the entropy of a session token (160 bits).
const SessionTokenBytes = 20

// tokenEncoding is RFC 4648 base32 without padding; lower-cased on output.
var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

/*
GenerateSessionToken returns a fresh bearer secret for a session cookie.

Returns:
  - string: 32 lower-case base32 characters, safe in cookies and URLs
  - error: Only when the OS entropy source fails
*/
func GenerateSessionToken() (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: read random bytes: %w", err)
	}
	return strings.ToLower(tokenEncoding.EncodeToString(buf)), nil
}

// HashToken derives the storage identifier of a session from its raw token.
// The raw token never reaches the store.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
