package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/logging"
)

type idleSweeper interface {
	SweepIdle(ctx context.Context, ttl time.Duration) (int, error)
}

// startIdleSweeper drops sessions idle for longer than ttl on the given
// cron schedule. The returned cron must be stopped on shutdown.
func startIdleSweeper(svc idleSweeper, schedule string, ttl time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := svc.SweepIdle(ctx, ttl); err != nil {
			logging.Error("idle session sweep failed", err, nil)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	logging.Info("idle session sweeper started", logging.Fields{"schedule": schedule, "idle_ttl": ttl.String()})
	return c, nil
}
