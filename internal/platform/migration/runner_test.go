// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/bookmarks":   "pgx5://u:p@db:5432/bookmarks",
		"postgresql://u:p@db:5432/bookmarks": "pgx5://u:p@db:5432/bookmarks",
		"pgx5://u:p@db:5432/bookmarks":       "pgx5://u:p@db:5432/bookmarks",
		"host=db user=u":                     "host=db user=u",
	}

	for in, want := range tests {
		assert.Equal(t, want, pgx5DSN(in), in)
	}
}
