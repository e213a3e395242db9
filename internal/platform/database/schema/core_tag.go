// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTagTable represents the 'core.tag' table
type CoreTagTable struct {
	Table     string
	ID        string
	UserID    string
	Name      string
	CreatedAt string
}

// CoreTag is the schema definition for core.tag. Names are stored lower-cased.
var CoreTag = CoreTagTable{
	Table:     "core.tag",
	ID:        "id",
	UserID:    "userid",
	Name:      "name",
	CreatedAt: "createdat",
}

func (t CoreTagTable) Columns() []string { return []string{t.ID, t.UserID, t.Name, t.CreatedAt} }
