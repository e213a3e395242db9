// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreCategoryTable represents the 'core.category' table
type CoreCategoryTable struct {
	Table       string
	ID          string
	UserID      string
	Name        string
	Description string
	CreatedAt   string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CoreCategoryTable{
	Table:       "core.category",
	ID:          "id",
	UserID:      "userid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t CoreCategoryTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Name, t.Description, t.CreatedAt}
}
