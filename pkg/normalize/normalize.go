// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize canonicalizes user-supplied names before they are stored or compared.
//
// # Usage
//
// Category and bookmark names keep their casing; tag names and language short
// names are case-folded so "Go" and "go" collide on the unique index.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Name trims, collapses inner whitespace and applies NFC so visually equal names are byte-equal.
func Name(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// Key returns the lower-cased form of [Name], used for names that are unique regardless of case.
// A cases.Caser holds state, so one is built per call.
func Key(s string) string {
	return cases.Lower(language.Und).String(Name(s))
}
