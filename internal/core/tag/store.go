// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListTags(context context.Context, userID string, withCounts bool) ([]*Tag, error)
	CreateTag(context context.Context, tag *Tag) error
	RenameTag(context context.Context, tag *Tag) error
	DeleteTag(context context.Context, userID string, id int64) error
	OwnerOf(context context.Context, id int64) (string, error)
}
