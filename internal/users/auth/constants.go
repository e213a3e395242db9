// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "github.com/taibuivan/bookmarks/internal/platform/constants"

// # Session Lifetime

const (
	// SessionTTL is the validity granted at login and restored on every renewal.
	SessionTTL = constants.SessionTTL

	// SessionRenewalWindow is the remaining lifetime under which a validated session is extended.
	SessionRenewalWindow = constants.SessionRenewalWindow
)

// # Account Constraints

const (
	// UsernameMinLength is the shortest accepted username.
	UsernameMinLength = 3

	// UsernameMaxLength bounds usernames to something displayable.
	UsernameMaxLength = 64

	// EmailMaxLength follows the RFC 5321 path limit.
	EmailMaxLength = 254
)
