// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookmarks/internal/users/auth"
)

type countingDeleter struct {
	calls atomic.Int32
}

func (deleter *countingDeleter) DeleteExpired(context.Context) (int64, error) {
	deleter.calls.Add(1)
	return 1, nil
}

/*
TestSessionReaper_Disabled returns a nil reaper whose lifecycle methods are no-ops.
*/
func TestSessionReaper_Disabled(t *testing.T) {
	reaper, err := auth.NewSessionReaper(&countingDeleter{}, 0, discardLogger())
	require.NoError(t, err)
	assert.Nil(t, reaper)

	reaper.Start()
	reaper.Stop(context.Background())
}

/*
TestSessionReaper_Runs purges on schedule until stopped.
*/
func TestSessionReaper_Runs(t *testing.T) {
	deleter := &countingDeleter{}

	reaper, err := auth.NewSessionReaper(deleter, time.Second, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, reaper)

	reaper.Start()
	assert.Eventually(t, func() bool { return deleter.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	reaper.Stop(ctx)
}
