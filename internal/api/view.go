package api

import (
	"time"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
)

type combatantView struct {
	Name          string  `json:"name"`
	CurrentHealth int     `json:"current_health"`
	MaxHealth     int     `json:"max_health"`
	HealthRatio   float64 `json:"health_ratio"`
	MinDamage     int     `json:"min_damage"`
	MaxDamage     int     `json:"max_damage"`
}

type playerView struct {
	combatantView
	HealsRemaining int `json:"heals_remaining"`
	HealAmount     int `json:"heal_amount"`
}

// effectsView tells the client which transient animations to play for the
// action just taken. It is derived from the before and after states only.
// The opponent answers every resolved action unless it won or escaped the
// battle, so PlayerHit holds even when a heal outweighed the strike.
type effectsView struct {
	PlayerHit     bool `json:"player_hit"`
	OpponentHit   bool `json:"opponent_hit"`
	PlayerHealed  bool `json:"player_healed"`
	BattleEnded   bool `json:"battle_ended"`
	NewLogEntries int  `json:"new_log_entries"`
}

type battleView struct {
	ID         string        `json:"id"`
	Skin       string        `json:"skin"`
	Round      int           `json:"round"`
	Phase      game.Phase    `json:"phase"`
	Player     playerView    `json:"player"`
	Opponent   combatantView `json:"opponent"`
	Log        []string      `json:"log"`
	Turns      int           `json:"turns"`
	HealsUsed  int           `json:"heals_used"`
	CanAct     bool          `json:"can_act"`
	CanHeal    bool          `json:"can_heal"`
	CanRestart bool          `json:"can_restart"`
	Effects    *effectsView  `json:"effects,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func newCombatantView(c game.Combatant) combatantView {
	return combatantView{
		Name:          c.Name,
		CurrentHealth: c.CurrentHealth,
		MaxHealth:     c.MaxHealth,
		HealthRatio:   c.HealthRatio(),
		MinDamage:     c.MinDamage,
		MaxDamage:     c.MaxDamage,
	}
}

func newBattleView(s *game.Session) battleView {
	b := s.Battle
	running := !b.Phase.Terminal()
	log := b.Log
	if log == nil {
		log = []string{}
	}
	return battleView{
		ID:    s.ID,
		Skin:  s.Skin,
		Round: s.Round,
		Phase: b.Phase,
		Player: playerView{
			combatantView:  newCombatantView(b.Player.Combatant),
			HealsRemaining: b.Player.HealsRemaining,
			HealAmount:     b.Player.HealAmount,
		},
		Opponent:   newCombatantView(b.Opponent),
		Log:        log,
		Turns:      s.Turns,
		HealsUsed:  s.HealsUsed,
		CanAct:     running,
		CanHeal:    running && b.Player.HealsRemaining > 0,
		CanRestart: true,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func newEffects(prev, next game.Battle) *effectsView {
	return &effectsView{
		PlayerHit:     next.Phase != game.PhaseWon && next.Phase != game.PhaseEscaped,
		OpponentHit:   next.Opponent.CurrentHealth < prev.Opponent.CurrentHealth,
		PlayerHealed:  next.Player.HealsRemaining < prev.Player.HealsRemaining,
		BattleEnded:   !prev.Phase.Terminal() && next.Phase.Terminal(),
		NewLogEntries: len(next.Log) - len(prev.Log),
	}
}
