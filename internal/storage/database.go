package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB opens (creating when needed) the SQLite database at dataSourceName
// and migrates the battle record schema.
func OpenDB(dataSourceName string) (*gorm.DB, error) {
	if !strings.HasPrefix(dataSourceName, "file:") && dataSourceName != ":memory:" {
		if dir := filepath.Dir(dataSourceName); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dir, err)
			}
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.BattleRecord{}); err != nil {
		return nil, err
	}
	logging.Info("database ready", logging.Fields{constants.LogFieldPath: dataSourceName})
	return db, nil
}
