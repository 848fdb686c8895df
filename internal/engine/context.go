package engine

import (
	"strconv"
	"strings"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
)

// --- Turn context and helpers -----------------------------------------
type turnContext struct {
	b    game.Battle
	n    *Narrative
	roll Roller
}

func (e *Engine) newTurn(b game.Battle) *turnContext {
	return &turnContext{b: b.Clone(), n: &e.cfg.Narrative, roll: e.roll}
}

func (tc *turnContext) add(lines ...string) { tc.b.Log = append(tc.b.Log, lines...) }

// say expands the narrative tokens in tmpl. kv holds extra token/value pairs.
func (tc *turnContext) say(tmpl string, kv ...string) string {
	pairs := append([]string{
		"{{player}}", tc.b.Player.Name,
		"{{opponent}}", tc.b.Opponent.Name,
	}, kv...)
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func (tc *turnContext) sayAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = tc.say(l)
	}
	return out
}

// pick chooses one of lines, spending a roll only when there is a choice.
func (tc *turnContext) pick(lines []string) string {
	if len(lines) == 1 {
		return lines[0]
	}
	i := clamp(tc.roll.Roll(0, len(lines)-1), 0, len(lines)-1)
	return lines[i]
}

// hit subtracts dmg from c, keeping health within [0, MaxHealth].
func hit(c *game.Combatant, dmg int) {
	c.CurrentHealth = clamp(c.CurrentHealth-dmg, 0, c.MaxHealth)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func itoa(n int) string { return strconv.Itoa(n) }
