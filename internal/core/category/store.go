// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

// Repository defines the data access contract. Every method except OwnerOf is
// scoped to userID.
type Repository interface {
	ListCategories(context context.Context, userID string) ([]*Category, error)
	GetCategory(context context.Context, userID string, id int64) (*Category, error)
	CreateCategory(context context.Context, category *Category) error
	UpdateCategory(context context.Context, category *Category) error
	DeleteCategory(context context.Context, userID string, id int64) error

	// OwnerOf returns the owning user id, or dberr.ErrNotFound.
	OwnerOf(context context.Context, id int64) (string, error)
}
