// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListLanguages(context context.Context) ([]*Language, error)
	GetLanguage(context context.Context, id int) (*Language, error)
	CreateLanguage(context context.Context, language *Language) error
}
