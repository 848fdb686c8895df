package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct{ calls chan time.Duration }

func (s *countingSweeper) SweepIdle(_ context.Context, ttl time.Duration) (int, error) {
	s.calls <- ttl
	return 0, nil
}

func TestStartIdleSweeper_RejectsBadSchedule(t *testing.T) {
	_, err := startIdleSweeper(&countingSweeper{calls: make(chan time.Duration, 1)}, "every now and then", time.Minute)
	assert.Error(t, err)
}

func TestStartIdleSweeper_RunsOnSchedule(t *testing.T) {
	s := &countingSweeper{calls: make(chan time.Duration, 4)}
	c, err := startIdleSweeper(s, "@every 1s", 30*time.Minute)
	require.NoError(t, err)
	defer c.Stop()

	select {
	case ttl := <-s.calls:
		assert.Equal(t, 30*time.Minute, ttl)
	case <-time.After(3 * time.Second):
		t.Fatal("sweeper did not run")
	}
}
