// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookmarks/pkg/uuid"
)

func TestNew(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
	assert.Equal(t, byte('7'), first[14], "version nibble")
}

func TestValid(t *testing.T) {
	assert.True(t, uuid.Valid("0192f6a4-8c1e-7b8a-9d2e-3f4a5b6c7d8e"))
	assert.False(t, uuid.Valid("not-a-uuid"))
	assert.False(t, uuid.Valid("{0192f6a4-8c1e-7b8a-9d2e-3f4a5b6c7d8e}"))
	assert.False(t, uuid.Valid(""))
}
