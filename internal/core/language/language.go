// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package language manages the global catalogue of bookmark languages.
package language

// Language is a spoken/written language a bookmark can be filed under.
type Language struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// Global field names for validation
const (
	FieldName      = "name"
	FieldShortName = "short_name"
)

const (
	nameMaxLength      = 64
	shortNameMaxLength = 16
)
