// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// reapTimeout bounds a single purge run.
const reapTimeout = 30 * time.Second

// ExpiredSessionDeleter is the slice of [SessionManager] the reaper needs.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionReaper periodically purges expired sessions.
//
// Lazy deletion at validation time stays the primary mechanism; the reaper
// only keeps the table from accumulating sessions nobody presents again.
type SessionReaper struct {
	sessions ExpiredSessionDeleter
	logger   *slog.Logger
	cron     *cron.Cron
}

// NewSessionReaper schedules a purge every interval. A zero interval returns nil (disabled).
func NewSessionReaper(sessions ExpiredSessionDeleter, interval time.Duration, logger *slog.Logger) (*SessionReaper, error) {
	if interval <= 0 {
		return nil, nil
	}

	reaper := &SessionReaper{
		sessions: sessions,
		logger:   logger,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", max(int(interval.Seconds()), 1))
	if _, err := reaper.cron.AddFunc(schedule, reaper.run); err != nil {
		return nil, fmt.Errorf("session_reaper_schedule_failed: %w", err)
	}

	return reaper, nil
}

// Start launches the scheduler. Safe on a nil (disabled) reaper.
func (reaper *SessionReaper) Start() {
	if reaper == nil {
		return
	}
	reaper.cron.Start()
	reaper.logger.Info("session_reaper_started")
}

// Stop waits for a running purge to finish or ctx to expire.
func (reaper *SessionReaper) Stop(ctx context.Context) {
	if reaper == nil {
		return
	}

	stopCtx := reaper.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	reaper.logger.Info("session_reaper_stopped")
}

// run is one scheduled purge.
func (reaper *SessionReaper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), reapTimeout)
	defer cancel()

	removed, err := reaper.sessions.DeleteExpired(ctx)
	if err != nil {
		reaper.logger.Error("session_reap_failed", slog.Any("error", err))
		return
	}

	if removed > 0 {
		reaper.logger.Info("session_reaped", slog.Int64("removed", removed))
	}
}
