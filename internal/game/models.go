package game

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Phase classifies a battle as running or finished. Every value other than
// PhaseInProgress is terminal.
type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseWon        Phase = "won"
	PhaseLost       Phase = "lost"
	PhaseEscaped    Phase = "escaped"
)

// Terminal reports whether no further action can change the battle.
func (p Phase) Terminal() bool { return p != PhaseInProgress }

// Action is the move chosen by the player for one turn.
type Action string

const (
	ActionAttack  Action = "attack"
	ActionHeal    Action = "heal"
	ActionRetreat Action = "retreat"
)

// ParseAction normalizes a client supplied action name. The second return
// value is false for anything that is not a known action.
func ParseAction(s string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionAttack, ActionHeal, ActionRetreat:
		return a, true
	}
	return "", false
}

// Combatant is one side of the fight.
type Combatant struct {
	Name          string `json:"name"`
	CurrentHealth int    `json:"current_health"`
	MaxHealth     int    `json:"max_health"`
	MinDamage     int    `json:"min_damage"`
	MaxDamage     int    `json:"max_damage"`
}

// HealthRatio is CurrentHealth / MaxHealth, in [0, 1].
func (c Combatant) HealthRatio() float64 {
	if c.MaxHealth <= 0 {
		return 0
	}
	return float64(c.CurrentHealth) / float64(c.MaxHealth)
}

// Defeated reports whether the combatant has no health left.
func (c Combatant) Defeated() bool { return c.CurrentHealth <= 0 }

// Player is the human controlled combatant plus its healing resources.
type Player struct {
	Combatant
	HealsRemaining int `json:"heals_remaining"`
	HealAmount     int `json:"heal_amount"`
}

// Battle is the full state of a single fight. Log is append-only for the
// lifetime of the battle; its order is the narrative order.
type Battle struct {
	Player   Player    `json:"player"`
	Opponent Combatant `json:"opponent"`
	Log      []string  `json:"log"`
	Phase    Phase     `json:"phase"`
}

// Clone returns a copy that shares no memory with b.
func (b Battle) Clone() Battle {
	out := b
	out.Log = append(make([]string, 0, len(b.Log)+4), b.Log...)
	return out
}

// Session is an active battle owned by one client. The battle inside is
// replaced wholesale on restart.
type Session struct {
	ID   string `json:"id"`
	Skin string `json:"skin"`
	// Round counts the battles fought in this session, starting at 1.
	Round     int       `json:"round"`
	Battle    Battle    `json:"battle"`
	Turns     int       `json:"turns"`
	HealsUsed int       `json:"heals_used"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BattleRecord is the stored outcome of a finished battle. It is a result
// summary and cannot be resumed.
type BattleRecord struct {
	gorm.Model
	SessionID      string `json:"session_id" gorm:"size:36;uniqueIndex:idx_battle_records_session_round"`
	Round          int    `json:"round" gorm:"uniqueIndex:idx_battle_records_session_round"`
	Skin           string `json:"skin" gorm:"size:32;index"`
	Outcome        string `json:"outcome" gorm:"size:16;index"`
	Turns          int    `json:"turns"`
	HealsUsed      int    `json:"heals_used"`
	PlayerHealth   int    `json:"player_health"`
	OpponentHealth int    `json:"opponent_health"`
	// Log holds the narrative lines joined by "\n".
	Log string `json:"log" gorm:"type:text"`
}

// TableName keeps the table name stable regardless of GORM's pluralizer.
func (BattleRecord) TableName() string { return "battle_records" }

// Lines splits the stored log back into its narrative lines.
func (r BattleRecord) Lines() []string {
	if r.Log == "" {
		return nil
	}
	return strings.Split(r.Log, "\n")
}

// OutcomeStats aggregates finished battles by outcome.
type OutcomeStats struct {
	Skin    string `json:"skin,omitempty"`
	Won     int64  `json:"won"`
	Lost    int64  `json:"lost"`
	Escaped int64  `json:"escaped"`
	Total   int64  `json:"total"`
}
