// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tag manages the per-user labels attached to bookmarks.
package tag

import "time"

// Tag is a case-folded label, unique per user.
type Tag struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// SiteCount is only filled when counts are requested.
	SiteCount *int `json:"site_count,omitempty"`
}

// Global field names for validation
const (
	FieldName = "name"
)

const nameMaxLength = 64
