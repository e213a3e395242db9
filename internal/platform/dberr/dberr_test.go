// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "category_userid_name_key"}
	foreign := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	syntax := &pgconn.PgError{Code: pgerrcode.SyntaxError}

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"unique", fmt.Errorf("insert: %w", unique), apperr.CodeConflict},
		{"foreign_key", foreign, apperr.CodeConflict},
		{"syntax", syntax, apperr.CodeInternal},
		{"plain", errors.New("connection reset"), apperr.CodeInternal},
		{"already_classified", apperr.NotFound("Tag"), apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "Already exists")
			assert.True(t, apperr.HasCode(wrapped, tt.code))
		})
	}

	assert.Nil(t, dberr.Wrap(nil, "unused"))
}

func TestConstraintHelpers(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "account_username_key"}

	assert.True(t, dberr.IsUniqueViolation(unique))
	assert.Equal(t, "account_username_key", dberr.ConstraintName(fmt.Errorf("wrapped: %w", unique)))
	assert.Empty(t, dberr.ConstraintName(errors.New("plain")))
	assert.False(t, dberr.IsConstraintViolation(errors.New("plain")))
}
