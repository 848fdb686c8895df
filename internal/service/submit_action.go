package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/logging"
)

// ActionResult is the session after an action together with the battle as
// it was before, so callers can derive what just happened.
type ActionResult struct {
	Session  *game.Session
	Previous game.Battle
}

// Finished reports whether this action ended the battle.
func (r *ActionResult) Finished() bool {
	return !r.Previous.Phase.Terminal() && r.Session.Battle.Phase.Terminal()
}

// SubmitAction resolves one player action for the session. When the engine
// ignores the action (battle already over, no heals left) the unchanged
// session is returned along with ErrBattleOver or ErrNoHealsLeft.
func (b *Battles) SubmitAction(ctx context.Context, id string, action game.Action) (*ActionResult, error) {
	switch action {
	case game.ActionAttack, game.ActionHeal, game.ActionRetreat:
	default:
		return nil, ErrUnknownAction
	}

	var (
		res     ActionResult
		ignored error
	)
	s, err := b.sessions.Update(ctx, id, func(s *game.Session) error {
		ignored = nil
		se, err := b.skin(s.Skin)
		if err != nil {
			return err
		}
		res.Previous = s.Battle
		next := se.engine.Resolve(s.Battle, action)

		switch {
		case s.Battle.Phase.Terminal():
			ignored = ErrBattleOver
		case action == game.ActionHeal && s.Battle.Player.HealsRemaining <= 0:
			ignored = ErrNoHealsLeft
		}
		if ignored != nil {
			res.Session = &game.Session{}
			*res.Session = *s
			return ignored
		}

		s.Battle = next
		s.Turns++
		if action == game.ActionHeal {
			s.HealsUsed++
		}
		s.UpdatedAt = b.now()
		return nil
	})
	if ignored != nil && errors.Is(err, ignored) {
		return &res, ignored
	}
	if err != nil {
		return nil, notFound(err)
	}
	res.Session = s

	b.metrics.RecordAction(s.Skin, string(action))
	logging.Debug("battle action resolved", logging.Fields{
		constants.LogFieldBattleID: s.ID,
		constants.LogFieldAction:   action,
		constants.LogFieldPhase:    s.Battle.Phase,
	})
	if res.Finished() {
		b.finish(s)
	}
	return &res, nil
}

// finish stores the outcome of a battle that just ended. A storage failure
// is logged; the battle result itself stands.
func (b *Battles) finish(s *game.Session) {
	bt := s.Battle
	rec := &game.BattleRecord{
		SessionID:      s.ID,
		Round:          s.Round,
		Skin:           s.Skin,
		Outcome:        string(bt.Phase),
		Turns:          s.Turns,
		HealsUsed:      s.HealsUsed,
		PlayerHealth:   bt.Player.CurrentHealth,
		OpponentHealth: bt.Opponent.CurrentHealth,
		Log:            strings.Join(bt.Log, "\n"),
	}
	b.metrics.RecordFinish(s.Skin, rec.Outcome, s.Turns)
	fields := logging.Fields{
		constants.LogFieldBattleID: s.ID,
		constants.LogFieldSkin:     s.Skin,
		constants.LogFieldPhase:    bt.Phase,
		constants.LogFieldTurns:    s.Turns,
	}
	if err := b.records.SaveBattleRecord(rec); err != nil {
		logging.Error("failed to store battle record", err, fields)
		return
	}
	logging.Info("battle finished", fields)
}
