// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreLanguageTable represents the 'core.language' table
type CoreLanguageTable struct {
	Table     string
	ID        string
	Name      string
	ShortName string
}

// CoreLanguage is the schema definition for core.language
var CoreLanguage = CoreLanguageTable{
	Table:     "core.language",
	ID:        "id",
	Name:      "name",
	ShortName: "shortname",
}

func (t CoreLanguageTable) Columns() []string { return []string{t.ID, t.Name, t.ShortName} }
