// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreSiteTable represents the 'core.site' table (a bookmark)
type CoreSiteTable struct {
	Table       string
	ID          string
	UserID      string
	CategoryID  string
	LanguageID  string
	Name        string
	URL         string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// CoreSite is the schema definition for core.site
var CoreSite = CoreSiteTable{
	Table:       "core.site",
	ID:          "id",
	UserID:      "userid",
	CategoryID:  "categoryid",
	LanguageID:  "languageid",
	Name:        "name",
	URL:         "url",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CoreSiteTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.CategoryID, t.LanguageID, t.Name,
		t.URL, t.Description, t.CreatedAt, t.UpdatedAt,
	}
}

// CoreSiteTagTable represents the 'core.sitetag' join table
type CoreSiteTagTable struct {
	Table  string
	SiteID string
	TagID  string
}

// CoreSiteTag is the schema definition for core.sitetag
var CoreSiteTag = CoreSiteTagTable{
	Table:  "core.sitetag",
	SiteID: "siteid",
	TagID:  "tagid",
}
