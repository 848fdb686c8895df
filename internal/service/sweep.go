package service

import (
	"context"
	"time"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/logging"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/metrics"
)

// SweepIdle drops sessions that have not been touched for ttl. Battles still
// in progress are counted as abandoned. It returns the number removed.
func (b *Battles) SweepIdle(ctx context.Context, ttl time.Duration) (int, error) {
	swept, err := b.sessions.SweepIdle(ctx, b.now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	for _, s := range swept {
		if !s.Battle.Phase.Terminal() {
			b.metrics.RecordFinish(s.Skin, metrics.OutcomeAbandoned, s.Turns)
		}
	}
	if n := len(swept); n > 0 {
		b.metrics.ActiveSessions.Sub(float64(n))
		logging.Info("idle battle sessions swept", logging.Fields{constants.LogFieldCount: n})
	}
	return len(swept), nil
}
