package main

import (
	"context"
	"time"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/config"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/logging"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{
			constants.LogFieldPath: path,
			"hint":                 "create a slayer_config.json with a 'skins' array of battle setups (name, player_max_health, opponent_max_health, player_damage{min,max}, opponent_damage{min,max}, heal_amount, heal_uses, narrative)",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldPath: dbPath})
	}
	return storage.NewSQLiteRepository(db)
}

func createSessionStoreOrExit(cfg config.SessionConfig) storage.SessionStore {
	if cfg.Store != constants.StoreRedis {
		return storage.NewMemorySessionStore()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := storage.NewRedisSessionStore(ctx, storage.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.IdleTTL)
	if err != nil {
		logging.Fatal("Failed to connect to redis session store", err, logging.Fields{constants.LogFieldAddr: cfg.RedisAddr})
	}
	return store
}
