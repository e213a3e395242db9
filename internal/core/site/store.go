// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import "context"

// Repository defines the data access contract. Reads and writes are scoped to
// the owning user; OwnerOf is the only unscoped lookup.
type Repository interface {
	// ListAllSites returns every bookmark of the user ordered by category name, then name.
	ListAllSites(context context.Context, userID string) ([]*Site, error)
	ListSites(context context.Context, userID string, filter Filter, limit, offset int) ([]*Site, int, error)
	GetSite(context context.Context, userID string, id int64) (*Site, error)

	// CreateSite and UpdateSite attach only the tagIDs owned by site.UserID.
	// UpdateSite replaces the previous tag set.
	CreateSite(context context.Context, site *Site, tagIDs []int64) error
	UpdateSite(context context.Context, site *Site, tagIDs []int64) error
	DeleteSite(context context.Context, userID string, id int64) error

	OwnerOf(context context.Context, id int64) (string, error)
}
