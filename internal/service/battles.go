package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/config"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/engine"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/metrics"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/storage"
)

var (
	ErrUnknownSkin    = errors.New("unknown skin")
	ErrBattleNotFound = errors.New("battle not found")
	ErrBattleOver     = errors.New("battle is over")
	ErrNoHealsLeft    = errors.New("no heals left")
	ErrUnknownAction  = errors.New("unknown action")
)

// RecordRepo is the subset of storage.Repository the service needs.
type RecordRepo interface {
	SaveBattleRecord(r *game.BattleRecord) error
	GetOutcomeStats(skin string) (*game.OutcomeStats, error)
	GetRecentRecords(limit int) ([]game.BattleRecord, error)
}

// SkinInfo describes a playable skin and the rules it runs with.
type SkinInfo struct {
	Name              string             `json:"name"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Default           bool               `json:"default"`
	PlayerName        string             `json:"player_name"`
	OpponentName      string             `json:"opponent_name"`
	PlayerMaxHealth   int                `json:"player_max_health"`
	OpponentMaxHealth int                `json:"opponent_max_health"`
	PlayerDamage      engine.DamageRange `json:"player_damage"`
	OpponentDamage    engine.DamageRange `json:"opponent_damage"`
	HealAmount        int                `json:"heal_amount"`
	HealUses          int                `json:"heal_uses"`
	EscapeChance      float64            `json:"escape_chance"`
}

type skinEngine struct {
	info   SkinInfo
	engine *engine.Engine
}

// Options wires a Battles service.
type Options struct {
	Skins       []config.Skin
	DefaultSkin string
	// Roller is shared by every skin; nil means a clock-seeded source.
	Roller   engine.Roller
	Sessions storage.SessionStore
	Records  RecordRepo
	// Metrics may be nil, in which case collectors go to a private registry.
	Metrics *metrics.BattleMetrics
}

// Battles runs battle sessions: it owns the session store and is the only
// caller of the resolution engine.
type Battles struct {
	skins       map[string]*skinEngine
	order       []string
	defaultSkin string
	sessions    storage.SessionStore
	records     RecordRepo
	metrics     *metrics.BattleMetrics
	now         func() time.Time
	newID       func() string
}

// NewBattles compiles one engine per skin.
func NewBattles(opts Options) (*Battles, error) {
	if len(opts.Skins) == 0 {
		return nil, errors.New("at least one skin is required")
	}
	if opts.Sessions == nil || opts.Records == nil {
		return nil, errors.New("sessions and records are required")
	}
	roll := opts.Roller
	if roll == nil {
		roll = engine.NewRNG()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.NewBattleMetrics(prometheus.NewRegistry())
	}

	svc := &Battles{
		skins:    make(map[string]*skinEngine, len(opts.Skins)),
		sessions: opts.Sessions,
		records:  opts.Records,
		metrics:  m,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, s := range opts.Skins {
		name := strings.ToLower(s.Name)
		eng, err := engine.New(s.Battle, roll)
		if err != nil {
			return nil, fmt.Errorf("skin %s: %w", s.Name, err)
		}
		cfg := eng.Config()
		svc.skins[name] = &skinEngine{
			engine: eng,
			info: SkinInfo{
				Name:              name,
				Title:             s.Title,
				Description:       s.Description,
				PlayerName:        cfg.PlayerName,
				OpponentName:      cfg.OpponentName,
				PlayerMaxHealth:   cfg.PlayerMaxHealth,
				OpponentMaxHealth: cfg.OpponentMaxHealth,
				PlayerDamage:      cfg.PlayerDamage,
				OpponentDamage:    cfg.OpponentDamage,
				HealAmount:        cfg.HealAmount,
				HealUses:          cfg.HealUses,
				EscapeChance:      0.5,
			},
		}
		svc.order = append(svc.order, name)
	}

	svc.defaultSkin = svc.order[0]
	if d := strings.ToLower(opts.DefaultSkin); d != "" {
		if _, ok := svc.skins[d]; !ok {
			return nil, fmt.Errorf("default skin %s: %w", opts.DefaultSkin, ErrUnknownSkin)
		}
		svc.defaultSkin = d
	}
	svc.skins[svc.defaultSkin].info.Default = true
	return svc, nil
}

// Skins lists the configured skins in configuration order.
func (b *Battles) Skins() []SkinInfo {
	out := make([]SkinInfo, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.skins[name].info)
	}
	return out
}

func (b *Battles) skin(name string) (*skinEngine, error) {
	if name == "" {
		name = b.defaultSkin
	}
	se, ok := b.skins[strings.ToLower(name)]
	if !ok {
		return nil, ErrUnknownSkin
	}
	return se, nil
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrSessionNotFound) {
		return ErrBattleNotFound
	}
	return err
}
