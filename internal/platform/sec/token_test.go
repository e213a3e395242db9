// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookmarks/internal/platform/sec"
)

var (
	tokenPattern = regexp.MustCompile(`^[a-z2-7]{32}$`)
	hashPattern  = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

/*
TestGenerateSessionToken_Format verifies the token alphabet, length and the absence of padding.
*/
func TestGenerateSessionToken_Format(t *testing.T) {
	token, err := sec.GenerateSessionToken()

	require.NoError(t, err)
	assert.Regexp(t, tokenPattern, token)
	assert.NotContains(t, token, "=")
}

/*
TestGenerateSessionToken_Unique draws 10,000 tokens and expects 10,000 distinct
tokens and 10,000 distinct session ids.
*/
func TestGenerateSessionToken_Unique(t *testing.T) {
	const draws = 10_000

	tokens := make(map[string]struct{}, draws)
	hashes := make(map[string]struct{}, draws)

	for i := 0; i < draws; i++ {
		token, err := sec.GenerateSessionToken()
		require.NoError(t, err)

		tokens[token] = struct{}{}
		hashes[sec.HashToken(token)] = struct{}{}
	}

	assert.Len(t, tokens, draws)
	assert.Len(t, hashes, draws)
}

/*
TestHashToken_Deterministic verifies the session id is a stable hex SHA-256 of the token.
*/
func TestHashToken_Deterministic(t *testing.T) {
	token, err := sec.GenerateSessionToken()
	require.NoError(t, err)

	first := sec.HashToken(token)
	second := sec.HashToken(token)

	assert.Equal(t, first, second)
	assert.Regexp(t, hashPattern, first)
	assert.NotEqual(t, token, first)
}

/*
TestHashToken_KnownVector pins the digest of a fixed input.
*/
func TestHashToken_KnownVector(t *testing.T) {
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		sec.HashToken("hello"),
	)
}
