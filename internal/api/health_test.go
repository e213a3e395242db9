// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLiveness(t *testing.T) {
	liveness, _ := NewHealthHandlers(HealthDependencies{}, discard())

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

/*
TestReadiness covers the healthy, degraded and Redis-less reports.
*/
func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name     string
		deps     HealthDependencies
		status   int
		contains []string
		absent   string
	}{
		{
			name:     "all_ready",
			deps:     HealthDependencies{CheckDatabase: healthy, CheckCache: healthy},
			status:   http.StatusOK,
			contains: []string{`"status":"ready"`, `"name":"redis"`},
		},
		{
			name:     "cache_down",
			deps:     HealthDependencies{CheckDatabase: healthy, CheckCache: broken},
			status:   http.StatusServiceUnavailable,
			contains: []string{`"status":"degraded"`, `"error":"connection refused"`},
		},
		{
			name:     "redis_not_configured",
			deps:     HealthDependencies{CheckDatabase: healthy},
			status:   http.StatusOK,
			contains: []string{`"name":"postgres"`},
			absent:   `"redis"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := NewHealthHandlers(tt.deps, discard())

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.status, recorder.Code)
			for _, fragment := range tt.contains {
				assert.Contains(t, recorder.Body.String(), fragment)
			}
			if tt.absent != "" {
				assert.NotContains(t, recorder.Body.String(), tt.absent)
			}
		})
	}
}
