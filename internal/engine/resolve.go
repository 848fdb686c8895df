package engine

import (
	"fmt"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
)

// Engine resolves battle turns for one configuration. It keeps no battle
// state between calls, so a single Engine serves any number of battles.
type Engine struct {
	cfg  Config
	roll Roller
}

// New validates cfg and returns an Engine drawing randomness from roll.
// A nil roll uses a clock-seeded math/rand source.
func New(cfg Config, roll Roller) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid battle configuration: %w", err)
	}
	if roll == nil {
		roll = NewRNG()
	}
	return &Engine{cfg: cfg, roll: roll}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// NewBattle returns a fresh battle: full health, all heals and the intro
// lines in the log.
func (e *Engine) NewBattle() game.Battle {
	b := game.Battle{
		Player: game.Player{
			Combatant: game.Combatant{
				Name:          e.cfg.PlayerName,
				CurrentHealth: e.cfg.PlayerMaxHealth,
				MaxHealth:     e.cfg.PlayerMaxHealth,
				MinDamage:     e.cfg.PlayerDamage.Min,
				MaxDamage:     e.cfg.PlayerDamage.Max,
			},
			HealsRemaining: e.cfg.HealUses,
			HealAmount:     e.cfg.HealAmount,
		},
		Opponent: game.Combatant{
			Name:          e.cfg.OpponentName,
			CurrentHealth: e.cfg.OpponentMaxHealth,
			MaxHealth:     e.cfg.OpponentMaxHealth,
			MinDamage:     e.cfg.OpponentDamage.Min,
			MaxDamage:     e.cfg.OpponentDamage.Max,
		},
		Phase: game.PhaseInProgress,
	}
	tc := &turnContext{b: b, n: &e.cfg.Narrative}
	tc.add(tc.sayAll(e.cfg.Narrative.Intro)...)
	return tc.b
}

// Resolve applies action to b and returns the resulting battle. b itself is
// never modified. Finished battles, unknown actions and heals with none
// left return b unchanged.
func (e *Engine) Resolve(b game.Battle, action game.Action) game.Battle {
	if b.Phase.Terminal() {
		return b
	}
	switch action {
	case game.ActionAttack:
		return e.attack(b)
	case game.ActionHeal:
		if b.Player.HealsRemaining <= 0 {
			return b
		}
		return e.heal(b)
	case game.ActionRetreat:
		return e.retreat(b)
	default:
		return b
	}
}

func (e *Engine) attack(b game.Battle) game.Battle {
	tc := e.newTurn(b)
	p := &tc.b.Player
	dmg := tc.roll.Roll(p.MinDamage, p.MaxDamage)
	hit(&tc.b.Opponent, dmg)
	tc.add(tc.say(tc.n.PlayerAttack, "{{damage}}", itoa(dmg)))

	// A killing blow ends the battle before the opponent can answer.
	if tc.b.Opponent.Defeated() {
		tc.b.Phase = game.PhaseWon
		tc.add(tc.sayAll(tc.n.Victory)...)
		return tc.b
	}
	tc.opponentTurn(tc.n.Counter)
	return tc.b
}

func (e *Engine) heal(b game.Battle) game.Battle {
	tc := e.newTurn(b)
	p := &tc.b.Player
	healed := clamp(p.CurrentHealth+p.HealAmount, 0, p.MaxHealth)
	actual := healed - p.CurrentHealth
	p.CurrentHealth = healed
	p.HealsRemaining--
	tc.add(tc.say(tc.n.Heal, "{{healed}}", itoa(actual), "{{heals_left}}", itoa(p.HealsRemaining)))

	tc.opponentTurn(tc.n.strikeLines())
	return tc.b
}

func (e *Engine) retreat(b game.Battle) game.Battle {
	tc := e.newTurn(b)
	if tc.roll.Roll(0, 1) == 1 {
		tc.b.Phase = game.PhaseEscaped
		tc.add(tc.say(tc.n.RetreatSuccess))
		return tc.b
	}
	tc.add(tc.say(tc.n.RetreatBlocked))
	tc.opponentTurn(tc.n.strikeLines())
	return tc.b
}

// opponentTurn rolls the opponent's damage, applies it to the player and
// ends the battle if the player falls.
func (tc *turnContext) opponentTurn(lines []string) {
	o := &tc.b.Opponent
	dmg := tc.roll.Roll(o.MinDamage, o.MaxDamage)
	line := tc.pick(lines)
	hit(&tc.b.Player.Combatant, dmg)
	tc.add(tc.say(line, "{{damage}}", itoa(dmg)))

	if tc.b.Player.Defeated() {
		tc.b.Phase = game.PhaseLost
		tc.add(tc.sayAll(tc.n.Defeat)...)
	}
}
