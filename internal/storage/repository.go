package storage

import (
	"errors"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
)

// ErrRecordNotFound is returned when no battle record matches a lookup.
var ErrRecordNotFound = errors.New("battle record not found")

// Repository stores the outcomes of finished battles.
type Repository interface {
	// SaveBattleRecord inserts r. Saving the same session round twice is a
	// no-op so retries are harmless.
	SaveBattleRecord(r *game.BattleRecord) error
	GetBattleRecord(sessionID string, round int) (*game.BattleRecord, error)
	// GetOutcomeStats counts records by outcome. An empty skin counts all.
	GetOutcomeStats(skin string) (*game.OutcomeStats, error)
	// GetRecentRecords returns the newest records first.
	GetRecentRecords(limit int) ([]game.BattleRecord, error)
}
