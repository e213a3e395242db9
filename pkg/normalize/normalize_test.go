// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookmarks/pkg/normalize"
)

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Reading  List ", "Reading List"},
		{"News\tand\nBlogs", "News and Blogs"},
		{"Café", "Café"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.Name(tt.in), "input %q", tt.in)
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "golang", normalize.Key("  GoLang "))
	assert.Equal(t, "dev tools", normalize.Key("Dev   TOOLS"))
}
