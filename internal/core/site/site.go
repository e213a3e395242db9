// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package site manages bookmarks: URLs a user files under one of their
categories, optionally labelled with a language and tags.

# Isolation

Every read and write is scoped to the calling user. Cross-references are
checked the same way as routes: a category, or a bookmark, owned by
someone else is reported as not found, and foreign tag ids are dropped.
*/
package site

import (
	"time"

	"github.com/taibuivan/bookmarks/internal/core/language"
	"github.com/taibuivan/bookmarks/internal/core/tag"
)

// Site is a bookmark hydrated with its category name, language and tags.
type Site struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"-"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	LanguageID   *int      `json:"language_id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Language *language.Language `json:"language"`
	Tags     []*tag.Tag         `json:"tags"`
}

// Filter narrows the flat bookmark listing.
type Filter struct {
	CategoryID int64   // 0 means any category
	TagIDs     []int64 // bookmarks carrying at least one of these tags
	Query      string  // substring of name, url or description
}

// Grouped maps category names to their bookmarks. encoding/json writes map
// keys sorted, which gives the alphabetical category order.
type Grouped map[string][]*Site

// Input carries the writable fields of a bookmark.
type Input struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	CategoryID  int64   `json:"category_id"`
	LanguageID  *int    `json:"language_id"`
	TagIDs      []int64 `json:"tag_ids"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldURL         = "url"
	FieldDescription = "description"
	FieldCategoryID  = "category_id"
)

const (
	nameMaxLength        = 200
	urlMaxLength         = 2048
	descriptionMaxLength = 1000
)
