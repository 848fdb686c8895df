package service

import (
	"context"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/logging"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/metrics"
)

// StartBattle opens a new session with a fresh battle of the given skin.
// An empty skin selects the default one.
func (b *Battles) StartBattle(ctx context.Context, skin string) (*game.Session, error) {
	se, err := b.skin(skin)
	if err != nil {
		return nil, err
	}
	now := b.now()
	s := &game.Session{
		ID:        b.newID(),
		Skin:      se.info.Name,
		Round:     1,
		Battle:    se.engine.NewBattle(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.sessions.Create(ctx, s); err != nil {
		return nil, err
	}
	b.metrics.RecordStart(s.Skin)
	b.metrics.ActiveSessions.Inc()
	logging.Info("battle started", logging.Fields{constants.LogFieldBattleID: s.ID, constants.LogFieldSkin: s.Skin})
	return s, nil
}

// GetBattle returns the session with the given ID.
func (b *Battles) GetBattle(ctx context.Context, id string) (*game.Session, error) {
	s, err := b.sessions.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

// RestartBattle replaces the session's battle with a fresh one. Nothing of
// the previous battle carries over except the session identity.
func (b *Battles) RestartBattle(ctx context.Context, id string) (*game.Session, error) {
	var abandoned *game.Session
	s, err := b.sessions.Update(ctx, id, func(s *game.Session) error {
		se, err := b.skin(s.Skin)
		if err != nil {
			return err
		}
		if !s.Battle.Phase.Terminal() {
			prev := *s
			abandoned = &prev
		}
		s.Round++
		s.Battle = se.engine.NewBattle()
		s.Turns = 0
		s.HealsUsed = 0
		s.UpdatedAt = b.now()
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	if abandoned != nil {
		b.metrics.RecordFinish(abandoned.Skin, metrics.OutcomeAbandoned, abandoned.Turns)
	}
	b.metrics.RecordStart(s.Skin)
	logging.Info("battle restarted", logging.Fields{constants.LogFieldBattleID: s.ID, constants.LogFieldSkin: s.Skin, "round": s.Round})
	return s, nil
}

// EndSession discards a session. Unfinished battles count as abandoned.
func (b *Battles) EndSession(ctx context.Context, id string) error {
	s, err := b.sessions.Get(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := b.sessions.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	if !s.Battle.Phase.Terminal() {
		b.metrics.RecordFinish(s.Skin, metrics.OutcomeAbandoned, s.Turns)
	}
	b.metrics.ActiveSessions.Dec()
	logging.Info("battle session ended", logging.Fields{constants.LogFieldBattleID: id})
	return nil
}
