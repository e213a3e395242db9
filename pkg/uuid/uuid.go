// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the google/uuid library to generate Version 7 values, used for
account primary keys and request correlation ids.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Friendly: Prevents index fragmentation in PostgreSQL (B-tree optimal).
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// Fall back to a random v4 if the monotonic source is unavailable
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

// # Validation

// Valid reports whether s is a canonical UUID string of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil && len(s) == 36
}
