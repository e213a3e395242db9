// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package category manages the per-user folders bookmarks are filed under.
package category

import "time"

// Category groups a user's bookmarks. Names are unique per user.
type Category struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
)

const (
	nameMaxLength        = 100
	descriptionMaxLength = 500
)
