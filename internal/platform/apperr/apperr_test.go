// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
)

/*
TestConstructors_StatusMapping checks every constructor maps to the expected status and code.
*/
func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Category"), http.StatusNotFound, apperr.CodeNotFound},
		{"unauthorized", apperr.Unauthorized("nope"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"conflict", apperr.Conflict("dup"), http.StatusConflict, apperr.CodeConflict},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, apperr.CodeValidation},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

/*
TestNotFound_Message verifies the resource name is embedded in the message.
*/
func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "Bookmark not found", apperr.NotFound("Bookmark").Error())
}

/*
TestAs_TraversesWrappedChain verifies AppErrors survive fmt.Errorf wrapping.
*/
func TestAs_TraversesWrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.Conflict("Tag with this name already exists"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeConflict, ae.Code)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeConflict))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeConflict))
}

/*
TestWithCause keeps the original untouched and exposes the cause through Unwrap.
*/
func TestWithCause(t *testing.T) {
	base := apperr.Conflict("dup")
	cause := errors.New("23505")

	withCause := base.WithCause(cause)

	assert.Nil(t, base.Cause)
	assert.ErrorIs(t, withCause, cause)
}
