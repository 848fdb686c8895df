package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/engine"
)

type skinEntry struct {
	Name        string `json:"name" validate:"required,max=32,alphanumunicode"`
	Title       string `json:"title"`
	Description string `json:"description"`
	engine.Config
}

type rawConfig struct {
	SkinList    []skinEntry `json:"skins" validate:"required,min=1,dive"`
	DefaultSkin string      `json:"default_skin"`
	Server      *struct {
		Address string `json:"address"`
	} `json:"server"`
	Session *struct {
		IdleTTL       string `json:"idle_ttl"`
		SweepSchedule string `json:"sweep_schedule"`
		Store         string `json:"store" validate:"omitempty,oneof=memory redis"`
		RedisAddr     string `json:"redis_addr"`
		RedisPassword string `json:"redis_password"`
		RedisDB       int    `json:"redis_db" validate:"gte=0"`
	} `json:"session"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
}

// Skin is a named battle setup, e.g. the minimal "learning" version or the
// "polished" one.
type Skin struct {
	Name        string
	Title       string
	Description string
	Battle      engine.Config
}

// SessionConfig controls where active battles live and how long an idle
// one is kept.
type SessionConfig struct {
	Store         string
	IdleTTL       time.Duration
	SweepSchedule string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// LoadedConfig is the validated configuration used by the server.
type LoadedConfig struct {
	Skins         []Skin
	DefaultSkin   string
	ServerAddress string
	DBPath        string
	Session       SessionConfig
}

// Skin returns the named skin.
func (c *LoadedConfig) Skin(name string) (Skin, bool) {
	for _, s := range c.Skins {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Skin{}, false
}

var validate = validator.New()

// LoadConfig reads the configuration file at path. It requires at least
// one entry in `skins`; every skin must be a playable battle setup.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	applyEnv(cfg)
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(b []byte) (*LoadedConfig, error) {
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate.Struct(rc); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	out := &LoadedConfig{
		Skins:         make([]Skin, 0, len(rc.SkinList)),
		ServerAddress: constants.DefaultAddr,
		DBPath:        constants.DefaultDBPath,
		Session: SessionConfig{
			Store:         constants.StoreMemory,
			IdleTTL:       30 * time.Minute,
			SweepSchedule: "@every 1m",
		},
	}

	// Skin names are unique (case-insensitive) and each must compile into
	// an engine, so a bad damage range stops the server at startup.
	seen := make(map[string]struct{}, len(rc.SkinList))
	for _, s := range rc.SkinList {
		ln := strings.ToLower(strings.TrimSpace(s.Name))
		if _, dup := seen[ln]; dup {
			return nil, fmt.Errorf("duplicate skin name '%s'", s.Name)
		}
		seen[ln] = struct{}{}
		if _, err := engine.New(s.Config, engine.RollerFunc(func(min, _ int) int { return min })); err != nil {
			return nil, fmt.Errorf("skin '%s': %w", s.Name, err)
		}
		out.Skins = append(out.Skins, Skin{Name: ln, Title: s.Title, Description: s.Description, Battle: s.Config})
	}

	out.DefaultSkin = out.Skins[0].Name
	if d := strings.ToLower(strings.TrimSpace(rc.DefaultSkin)); d != "" {
		if _, ok := seen[d]; !ok {
			return nil, fmt.Errorf("default_skin '%s' is not a configured skin", rc.DefaultSkin)
		}
		out.DefaultSkin = d
	}

	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		out.DBPath = rc.Database.Path
	}
	if s := rc.Session; s != nil {
		if s.Store != "" {
			out.Session.Store = s.Store
		}
		if s.IdleTTL != "" {
			ttl, err := time.ParseDuration(s.IdleTTL)
			if err != nil || ttl <= 0 {
				return nil, fmt.Errorf("session.idle_ttl '%s' is not a positive duration", s.IdleTTL)
			}
			out.Session.IdleTTL = ttl
		}
		if s.SweepSchedule != "" {
			out.Session.SweepSchedule = s.SweepSchedule
		}
		out.Session.RedisAddr = s.RedisAddr
		out.Session.RedisPassword = s.RedisPassword
		out.Session.RedisDB = s.RedisDB
	}
	if out.Session.Store == constants.StoreRedis && out.Session.RedisAddr == "" && os.Getenv(constants.EnvRedisAddr) == "" {
		return nil, fmt.Errorf("session.store is redis but session.redis_addr is empty")
	}
	return out, nil
}

// applyEnv lets deployment environments override file values.
func applyEnv(cfg *LoadedConfig) {
	if v := os.Getenv(constants.EnvAddr); v != "" {
		cfg.ServerAddress = v
	}
	if v := os.Getenv(constants.EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(constants.EnvRedisAddr); v != "" {
		cfg.Session.RedisAddr = v
	}
}
