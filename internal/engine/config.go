package engine

import (
	"fmt"
	"strings"
)

// DamageRange is an inclusive damage interval.
type DamageRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (d DamageRange) String() string { return fmt.Sprintf("%d-%d", d.Min, d.Max) }

// Narrative holds the flavour text of a skin. Lines may use the tokens
// {{player}}, {{opponent}}, {{damage}}, {{healed}} and {{heals_left}}.
type Narrative struct {
	Intro        []string `json:"intro"`
	PlayerAttack string   `json:"player_attack"`
	// Counter lines follow a non-lethal attack. One is picked at random
	// when more than one is configured.
	Counter []string `json:"counter"`
	// Strike lines follow a heal or a blocked retreat. Empty means Counter.
	Strike         []string `json:"strike"`
	Heal           string   `json:"heal"`
	RetreatSuccess string   `json:"retreat_success"`
	RetreatBlocked string   `json:"retreat_blocked"`
	Victory        []string `json:"victory"`
	Defeat         []string `json:"defeat"`
}

func (n Narrative) strikeLines() []string {
	if len(n.Strike) > 0 {
		return n.Strike
	}
	return n.Counter
}

// Config describes one battle setup. The same Config is used for the first
// battle and for every restart.
type Config struct {
	PlayerName        string      `json:"player_name"`
	OpponentName      string      `json:"opponent_name"`
	PlayerMaxHealth   int         `json:"player_max_health"`
	OpponentMaxHealth int         `json:"opponent_max_health"`
	PlayerDamage      DamageRange `json:"player_damage"`
	OpponentDamage    DamageRange `json:"opponent_damage"`
	HealAmount        int         `json:"heal_amount"`
	HealUses          int         `json:"heal_uses"`
	Narrative         Narrative   `json:"narrative"`
}

// Validate reports the first problem that would make a battle unplayable.
func (c Config) Validate() error {
	if c.PlayerMaxHealth <= 0 {
		return fmt.Errorf("player max health must be > 0, got %d", c.PlayerMaxHealth)
	}
	if c.OpponentMaxHealth <= 0 {
		return fmt.Errorf("opponent max health must be > 0, got %d", c.OpponentMaxHealth)
	}
	if err := validateRange("player damage", c.PlayerDamage); err != nil {
		return err
	}
	if err := validateRange("opponent damage", c.OpponentDamage); err != nil {
		return err
	}
	if c.HealAmount <= 0 {
		return fmt.Errorf("heal amount must be > 0, got %d", c.HealAmount)
	}
	if c.HealUses < 0 {
		return fmt.Errorf("heal uses must be >= 0, got %d", c.HealUses)
	}
	return c.Narrative.validate()
}

func validateRange(what string, d DamageRange) error {
	if d.Min <= 0 {
		return fmt.Errorf("%s min must be > 0, got %d", what, d.Min)
	}
	if d.Min > d.Max {
		return fmt.Errorf("%s min %d exceeds max %d", what, d.Min, d.Max)
	}
	return nil
}

func (n Narrative) validate() error {
	if len(n.Intro) == 0 {
		return fmt.Errorf("narrative: at least one intro line is required")
	}
	required := map[string]string{
		"player_attack":   n.PlayerAttack,
		"heal":            n.Heal,
		"retreat_success": n.RetreatSuccess,
		"retreat_blocked": n.RetreatBlocked,
	}
	for _, key := range []string{"player_attack", "heal", "retreat_success", "retreat_blocked"} {
		if strings.TrimSpace(required[key]) == "" {
			return fmt.Errorf("narrative: %s is required", key)
		}
	}
	if len(n.Counter) == 0 {
		return fmt.Errorf("narrative: at least one counter line is required")
	}
	if len(n.Victory) == 0 || len(n.Defeat) == 0 {
		return fmt.Errorf("narrative: victory and defeat lines are required")
	}
	return nil
}
